package card

import (
	"encoding/json"

	"github.com/arcanaland/deckhand/internal/save"
)

// Fields copied from a source card onto the card template
const (
	FieldCardID       = "CardID"
	FieldCustomDeck   = "CustomDeck"
	FieldGMNotes      = "GMNotes"
	FieldGUID         = "GUID"
	FieldNickname     = "Nickname"
	FieldSidewaysCard = "SidewaysCard"
)

// templated lists the copied fields with the value used when the source card
// does not carry them.
var templated = []struct {
	name     string
	fallback json.RawMessage
}{
	{FieldCardID, json.RawMessage(`0`)},
	{FieldCustomDeck, json.RawMessage(`{}`)},
	{FieldGMNotes, json.RawMessage(`""`)},
	{FieldGUID, json.RawMessage(`""`)},
	{FieldNickname, json.RawMessage(`""`)},
	{FieldSidewaysCard, json.RawMessage(`false`)},
}

// Card is a typed view of the fields this tool reads from a card object
type Card struct {
	CardID     int64
	CustomDeck map[string]json.RawMessage
	GMNotes    string
	GUID       string
	Nickname   string
	Sideways   bool
}

// FromObject reads the templated fields of obj. Fields of the wrong type are
// left at their zero value.
func FromObject(obj *save.Object) Card {
	var c Card
	_, _ = obj.Decode(FieldCardID, &c.CardID)
	_, _ = obj.Decode(FieldCustomDeck, &c.CustomDeck)
	c.GMNotes, _ = obj.String(FieldGMNotes)
	c.GUID, _ = obj.String(FieldGUID)
	c.Nickname, _ = obj.String(FieldNickname)
	_, _ = obj.Decode(FieldSidewaysCard, &c.Sideways)
	return c
}

// GUID returns the card's identifier. Absent, null and empty identifiers are
// all reported as missing.
func GUID(obj *save.Object) (string, bool) {
	id, ok := obj.String(FieldGUID)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Transform projects a source card onto a copy of schema. The source card is
// expected to have its GUID assigned already. Neither argument is modified.
func Transform(raw, schema *save.Object) *save.Object {
	out := schema.Clone()
	for _, f := range templated {
		if value, ok := raw.Raw(f.name); ok {
			out.SetRaw(f.name, value)
			continue
		}
		out.SetRaw(f.name, f.fallback)
	}
	return out
}
