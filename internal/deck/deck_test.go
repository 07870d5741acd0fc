package deck

import (
	"errors"
	"testing"

	"github.com/arcanaland/deckhand/internal/save"
)

func parse(t *testing.T, s string) *save.Document {
	t.Helper()
	doc, err := save.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestLocateFirstBag(t *testing.T) {
	doc := parse(t, `{"ObjectStates":[
		{"Name":"Deck","GUID":"d1"},
		{"Name":"Bag","GUID":"first","ContainedObjects":[{"Name":"Card"}]},
		{"Name":"Bag","GUID":"second"}
	]}`)

	bag, err := Locate(doc)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if bag.GUID != "first" {
		t.Fatalf("GUID = %q, want first", bag.GUID)
	}
	if len(bag.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(bag.Children))
	}
}

func TestLocateIgnoresNestedBags(t *testing.T) {
	doc := parse(t, `{"ObjectStates":[
		{"Name":"Deck","ContainedObjects":[{"Name":"Bag","GUID":"nested"}]}
	]}`)

	if _, err := Locate(doc); !errors.Is(err, ErrBagNotFound) {
		t.Fatalf("err = %v, want ErrBagNotFound", err)
	}
}

func TestLocateMissingStates(t *testing.T) {
	if _, err := Locate(parse(t, `{"SaveName":"x"}`)); !errors.Is(err, ErrBagNotFound) {
		t.Fatalf("err = %v, want ErrBagNotFound", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"ok", `{"ObjectStates":[{"Name":"Bag","GUID":"b","ContainedObjects":[{"Name":"Card"}]}]}`, nil},
		{"empty guid", `{"ObjectStates":[{"Name":"Bag","GUID":"","ContainedObjects":[{"Name":"Card"}]}]}`, ErrBagGUIDEmpty},
		{"missing guid", `{"ObjectStates":[{"Name":"Bag","ContainedObjects":[{"Name":"Card"}]}]}`, ErrBagGUIDEmpty},
		{"no children", `{"ObjectStates":[{"Name":"Bag","GUID":"b","ContainedObjects":[]}]}`, ErrNoContainedObjects},
		{"missing children", `{"ObjectStates":[{"Name":"Bag","GUID":"b"}]}`, ErrNoContainedObjects},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, err := Locate(parse(t, tt.doc))
			if err != nil {
				t.Fatalf("Locate: %v", err)
			}
			if err := bag.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCardsKeepsPositions(t *testing.T) {
	doc := parse(t, `{"ObjectStates":[{"Name":"Bag","GUID":"b","ContainedObjects":[
		{"Name":"Card","GUID":"c1"},
		{"Name":"Deck","GUID":"d1"},
		{"Name":"Card","GUID":""}
	]}]}`)
	bag, err := Locate(doc)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	cards := bag.Cards()
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}
	if cards[0].Index != 1 || cards[1].Index != 3 {
		t.Fatalf("indexes = %d,%d, want 1,3", cards[0].Index, cards[1].Index)
	}
	if bag.Others() != 1 {
		t.Fatalf("others = %d, want 1", bag.Others())
	}

	ids := bag.IDs()
	if len(ids) != 3 || ids[0] != "b" || ids[1] != "c1" || ids[2] != "d1" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestRetainIsVisibleInDocument(t *testing.T) {
	doc := parse(t, `{"ObjectStates":[{"Name":"Bag","GUID":"b","ContainedObjects":[
		{"Name":"Card","GUID":"c1"},
		{"Name":"Deck","GUID":"d1"}
	]}]}`)
	bag, err := Locate(doc)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	kept := bag.Cards()[0].Object
	if err := kept.Set("Nickname", "mutated"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := bag.Retain([]*save.Object{kept}); err != nil {
		t.Fatalf("Retain: %v", err)
	}

	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := Locate(parse(t, string(out)))
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if len(again.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(again.Children))
	}
	if name, _ := again.Children[0].String("Nickname"); name != "mutated" {
		t.Fatalf("Nickname = %q, want mutated", name)
	}
}
