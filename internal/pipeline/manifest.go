package pipeline

import (
	"github.com/arcanaland/deckhand/internal/save"
)

// Manifest fields filled in on a copy of the list template
const (
	ManifestOrderField = "ContainedObjects_order"
	ManifestPathField  = "ContainedObjects_path"
	ManifestGUIDField  = "GUID"
)

// BuildManifest fills a copy of the list template with the card order, the
// directory holding the card files and the Bag's GUID.
func BuildManifest(list *save.Object, dir, bagGUID string, stems []string) (*save.Object, error) {
	if stems == nil {
		stems = []string{}
	}

	manifest := list.Clone()
	if err := manifest.Set(ManifestOrderField, stems); err != nil {
		return nil, err
	}
	if err := manifest.Set(ManifestPathField, dir); err != nil {
		return nil, err
	}
	if err := manifest.Set(ManifestGUIDField, bagGUID); err != nil {
		return nil, err
	}
	return manifest, nil
}
