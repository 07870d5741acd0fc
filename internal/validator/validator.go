package validator

import (
	"errors"
	"fmt"

	"github.com/arcanaland/deckhand/internal/card"
	"github.com/arcanaland/deckhand/internal/deck"
	"github.com/arcanaland/deckhand/internal/guid"
	"github.com/arcanaland/deckhand/internal/naming"
	"github.com/arcanaland/deckhand/internal/save"
)

type ValidationResults struct {
	BagGUID  string
	Cards    []string // file stems a split would produce, unknown GUIDs shown as "?"
	Errors   []string
	Warnings []string
}

type Validator struct {
	Path    string
	Results ValidationResults
}

func NewValidator(path string) *Validator {
	return &Validator{
		Path:    path,
		Results: ValidationResults{},
	}
}

// Validate reports what a split of the file would do without writing
// anything. Errors are conditions that make the pipeline skip the file.
func (v *Validator) Validate() (ValidationResults, error) {
	doc, err := save.ReadFile(v.Path)
	if err != nil {
		return v.Results, err
	}

	bag, err := deck.Locate(doc)
	if errors.Is(err, deck.ErrBagNotFound) {
		v.Results.Errors = append(v.Results.Errors, "no Bag object found in ObjectStates")
		return v.Results, nil
	}
	if err != nil {
		return v.Results, err
	}
	v.Results.BagGUID = bag.GUID

	if bag.GUID == "" {
		v.Results.Errors = append(v.Results.Errors, "Bag GUID is empty")
	}
	if len(bag.Children) == 0 {
		v.Results.Errors = append(v.Results.Errors, "Bag has no contained objects")
		return v.Results, nil
	}

	v.validateStates(doc)
	v.validateChildren(bag)
	v.validateIdentifiers(bag)

	return v.Results, nil
}

// validateStates warns about Bags that will be ignored
func (v *Validator) validateStates(doc *save.Document) {
	bags := 0
	for _, state := range doc.States {
		if state.Kind() == save.KindContainer {
			bags++
		}
	}
	if bags > 1 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%d Bag objects found, only the first is split", bags))
	}
}

// validateChildren checks the contained objects one by one
func (v *Validator) validateChildren(bag *deck.Bag) {
	for i, child := range bag.Children {
		position := i + 1

		if child.Kind() != save.KindCard {
			name, _ := child.String("Name")
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("object %d (%s) is not a card and will be removed", position, name))
			continue
		}

		id, ok := card.GUID(child)
		if !ok {
			id = "?"
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d has no GUID, one will be assigned", position))
		} else if !guid.Valid(id) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d GUID %q is not in the generated format", position, id))
		}

		nickname, _ := child.String(card.FieldNickname)
		if nickname == "" {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d has no nickname, file will be named Card_%d", position, position))
		} else if naming.Sanitize(nickname) == naming.Fallback {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d nickname %q has no usable characters", position, nickname))
		}

		if !child.Has(card.FieldCardID) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("card %d has no CardID", position))
		}

		v.Results.Cards = append(v.Results.Cards, naming.CardStem(nickname, position, id))
	}

	if len(v.Results.Cards) == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "Bag contains no cards")
	}
}

// validateIdentifiers reports GUIDs used more than once in the Bag
func (v *Validator) validateIdentifiers(bag *deck.Bag) {
	seen := make(map[string]int)
	for _, id := range bag.IDs() {
		seen[id]++
		if seen[id] == 2 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("GUID %s is used more than once", id))
		}
	}
}
