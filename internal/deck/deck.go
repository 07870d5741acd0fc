package deck

import (
	"errors"
	"fmt"

	"github.com/arcanaland/deckhand/internal/card"
	"github.com/arcanaland/deckhand/internal/save"
)

// ContainedField holds the children of a container object.
const ContainedField = "ContainedObjects"

var (
	ErrBagNotFound        = errors.New("no Bag object in ObjectStates")
	ErrBagGUIDEmpty       = errors.New("Bag object has an empty GUID")
	ErrNoContainedObjects = errors.New("Bag object has no contained objects")
)

// Bag is the container object of a save document together with its decoded
// children. The Bag refers to the document's own object state, so anything
// written back through Retain shows up when the document is encoded.
type Bag struct {
	GUID     string
	Children []*save.Object

	obj *save.Object
}

// Entry is a card child with its 1-based position among all children.
type Entry struct {
	Index  int
	Object *save.Object
}

// Locate returns the first container among the document's top-level object
// states. Nested objects are not searched.
func Locate(doc *save.Document) (*Bag, error) {
	for _, state := range doc.States {
		if state.Kind() != save.KindContainer {
			continue
		}

		children, err := state.Objects(ContainedField)
		if err != nil {
			return nil, fmt.Errorf("error reading Bag contents: %v", err)
		}
		id, _ := state.String(card.FieldGUID)
		return &Bag{GUID: id, Children: children, obj: state}, nil
	}
	return nil, ErrBagNotFound
}

// Validate checks that the bag can be split
func (b *Bag) Validate() error {
	if b.GUID == "" {
		return ErrBagGUIDEmpty
	}
	if len(b.Children) == 0 {
		return ErrNoContainedObjects
	}
	return nil
}

// Cards returns the card children in their original order
func (b *Bag) Cards() []Entry {
	var entries []Entry
	for i, child := range b.Children {
		if child.Kind() == save.KindCard {
			entries = append(entries, Entry{Index: i + 1, Object: child})
		}
	}
	return entries
}

// Others returns the number of children that are not cards
func (b *Bag) Others() int {
	return len(b.Children) - len(b.Cards())
}

// IDs returns every non-empty GUID in the bag, the bag's own included.
func (b *Bag) IDs() []string {
	ids := []string{}
	if b.GUID != "" {
		ids = append(ids, b.GUID)
	}
	for _, child := range b.Children {
		if id, ok := card.GUID(child); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Retain replaces the bag's children with the given objects, in order.
func (b *Bag) Retain(children []*save.Object) error {
	if err := b.obj.SetObjects(ContainedField, children); err != nil {
		return fmt.Errorf("error writing Bag contents: %v", err)
	}
	b.Children = children
	return nil
}
