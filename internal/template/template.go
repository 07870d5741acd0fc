package template

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/deckhand/internal/save"
)

// Store holds the card and list templates. Both are loaded once and must not
// be modified afterwards; callers copy them before filling them in.
type Store struct {
	card *save.Object
	list *save.Object
}

// Load reads one JSON template from disk
func Load(path string) (*save.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read template %s", filepath.Base(path))
	}
	obj := save.NewObject()
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, errors.Wrapf(err, "parse template %s", filepath.Base(path))
	}
	return obj, nil
}

// NewStore loads the card and list templates from dir. A template that cannot
// be loaded is reported and replaced by an empty object, so output built from
// it carries only the fields the pipeline sets explicitly.
func NewStore(dir, cardName, listName string, log logrus.FieldLogger) *Store {
	return &Store{
		card: loadOrEmpty(filepath.Join(dir, cardName), log),
		list: loadOrEmpty(filepath.Join(dir, listName), log),
	}
}

// NewStoreFrom builds a store from templates that are already in memory.
func NewStoreFrom(card, list *save.Object) *Store {
	if card == nil {
		card = save.NewObject()
	}
	if list == nil {
		list = save.NewObject()
	}
	return &Store{card: card, list: list}
}

func loadOrEmpty(path string, log logrus.FieldLogger) *save.Object {
	obj, err := Load(path)
	if err != nil {
		log.WithField("template", filepath.Base(path)).WithError(err).
			Warn("template could not be loaded, continuing with an empty template")
		return save.NewObject()
	}
	log.WithField("template", filepath.Base(path)).Debug("template loaded")
	return obj
}

// Card returns the single card template
func (s *Store) Card() *save.Object {
	return s.card
}

// List returns the manifest template
func (s *Store) List() *save.Object {
	return s.list
}
