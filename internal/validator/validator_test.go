package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validate(t *testing.T, content string) ValidationResults {
	t.Helper()
	path := filepath.Join(t.TempDir(), "save.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	results, err := NewValidator(path).Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return results
}

func hasMessage(messages []string, substr string) bool {
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidateCleanFile(t *testing.T) {
	results := validate(t, `{"ObjectStates":[{"Name":"Bag","GUID":"b11111","ContainedObjects":[
		{"Name":"Card","Nickname":"Ancient One","GUID":"abc123","CardID":100}
	]}]}`)

	if len(results.Errors) != 0 || len(results.Warnings) != 0 {
		t.Fatalf("errors = %v, warnings = %v", results.Errors, results.Warnings)
	}
	if results.BagGUID != "b11111" {
		t.Fatalf("BagGUID = %q", results.BagGUID)
	}
	if len(results.Cards) != 1 || results.Cards[0] != "AncientOne.abc123" {
		t.Fatalf("cards = %v", results.Cards)
	}
}

func TestValidateMissingBag(t *testing.T) {
	results := validate(t, `{"ObjectStates":[{"Name":"Deck"}]}`)
	if !hasMessage(results.Errors, "no Bag") {
		t.Fatalf("errors = %v", results.Errors)
	}
}

func TestValidateStructuralErrors(t *testing.T) {
	results := validate(t, `{"ObjectStates":[{"Name":"Bag","GUID":"","ContainedObjects":[]}]}`)
	if !hasMessage(results.Errors, "GUID is empty") || !hasMessage(results.Errors, "no contained objects") {
		t.Fatalf("errors = %v", results.Errors)
	}
}

func TestValidateWarnings(t *testing.T) {
	results := validate(t, `{"ObjectStates":[
		{"Name":"Bag","GUID":"b11111","ContainedObjects":[
			{"Name":"Card","Nickname":"","GUID":"","CardID":1},
			{"Name":"Deck","GUID":"d11111"},
			{"Name":"Card","Nickname":"!!!","GUID":"abc123"},
			{"Name":"Card","Nickname":"Dup","GUID":"abc123","CardID":3}
		]},
		{"Name":"Bag","GUID":"b22222"}
	]}`)

	if len(results.Errors) != 0 {
		t.Fatalf("errors = %v", results.Errors)
	}
	for _, want := range []string{
		"2 Bag objects",
		"card 1 has no GUID",
		"file will be named Card_1",
		"object 2 (Deck) is not a card",
		"card 3 nickname",
		"card 3 has no CardID",
		"GUID abc123 is used more than once",
	} {
		if !hasMessage(results.Warnings, want) {
			t.Errorf("missing warning %q in %v", want, results.Warnings)
		}
	}
	if strings.Join(results.Cards, ",") != "Card_1.?,Unknown.abc123,Dup.abc123" {
		t.Fatalf("cards = %v", results.Cards)
	}
}

func TestValidateUnreadable(t *testing.T) {
	if _, err := NewValidator(filepath.Join(t.TempDir(), "missing.json")).Validate(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
