// Package pipeline splits tabletop save files into one file per card plus a
// manifest that lists the cards in the order they appeared in the Bag.
//
// For a source file "deck.json" whose Bag has GUID "xyz999" a run produces
//
//	{output}/deck.xyz999/{name}.{guid}.json   one file per card
//	{output}/deck.xyz999.json                 the manifest
//
// and rewrites deck.json in place with any newly assigned card GUIDs and with
// non-card children removed from the Bag.
package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/arcanaland/deckhand/internal/card"
	"github.com/arcanaland/deckhand/internal/deck"
	"github.com/arcanaland/deckhand/internal/fileutil"
	"github.com/arcanaland/deckhand/internal/guid"
	"github.com/arcanaland/deckhand/internal/naming"
	"github.com/arcanaland/deckhand/internal/save"
	"github.com/arcanaland/deckhand/internal/template"
)

// Options controls a run
type Options struct {
	SourceDir string
	OutputDir string
	Pattern   string
	// Passes repeats the whole batch. Later passes only rewrite what the first
	// one wrote since identifiers are never reassigned.
	Passes int
	// DryRun does everything except touching the filesystem.
	DryRun bool
}

// Pipeline processes every matching source file, one after another.
type Pipeline struct {
	opts      Options
	templates *template.Store
	log       logrus.FieldLogger
}

// New creates a pipeline
func New(opts Options, templates *template.Store, log logrus.FieldLogger) *Pipeline {
	if opts.Pattern == "" {
		opts.Pattern = "*.json"
	}
	if opts.Passes < 1 {
		opts.Passes = 1
	}
	return &Pipeline{opts: opts, templates: templates, log: log}
}

// Run processes the source directory. Problems with individual files are
// reported and recorded in the summary; an error is only returned when the
// run cannot produce output at all.
func (p *Pipeline) Run() (*Summary, error) {
	if !p.opts.DryRun {
		if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
			return nil, errors.Wrapf(err, "create output directory %s", p.opts.OutputDir)
		}
		unlock, err := fileutil.LockDir(p.opts.OutputDir)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := unlock(); err != nil {
				p.log.WithError(err).Warn("failed to release output lock")
			}
		}()
	}

	sources, err := p.sources()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		p.log.WithField("dir", p.opts.SourceDir).Warn("no source files found")
	}

	summary := &Summary{Passes: p.opts.Passes}
	for pass := 1; pass <= p.opts.Passes; pass++ {
		for _, source := range sources {
			summary.Results = append(summary.Results, p.ProcessFile(pass, source))
		}
	}
	return summary, nil
}

func (p *Pipeline) sources() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(p.opts.SourceDir, p.opts.Pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "match source pattern %s", p.opts.Pattern)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}
	return files, nil
}

// ProcessFile splits one source file. It never panics on bad input and never
// returns early without filling in the result's status.
func (p *Pipeline) ProcessFile(pass int, source string) FileResult {
	name := filepath.Base(source)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	res := FileResult{Pass: pass, Source: source}
	log := p.log.WithFields(logrus.Fields{"file": name, "pass": pass})

	fail := func(status Status, err error) FileResult {
		res.Status = status
		res.Err = err
		if status == StatusSkipped {
			log.WithError(err).Warn("skipping file")
		} else {
			log.WithError(err).Error("failed to process file")
		}
		return res
	}

	log.Info("processing file")

	data, err := os.ReadFile(source)
	if err != nil {
		return fail(StatusFailed, errors.Wrapf(err, "read %s", name))
	}
	doc, err := save.Parse(data)
	if err != nil {
		return fail(StatusFailed, errors.Wrapf(err, "parse %s", name))
	}

	bag, err := deck.Locate(doc)
	if err != nil {
		return fail(StatusSkipped, errors.Wrap(err, name))
	}
	res.BagGUID = bag.GUID
	if err := bag.Validate(); err != nil {
		return fail(StatusSkipped, errors.Wrap(err, name))
	}

	subdirName := stem + "." + bag.GUID
	subdir := filepath.Join(p.opts.OutputDir, subdirName)
	res.OutputDir = subdir
	log = log.WithField("bag", bag.GUID)
	log.WithField("children", len(bag.Children)).Info("found Bag")

	if !p.opts.DryRun {
		if err := os.MkdirAll(subdir, 0755); err != nil {
			return fail(StatusFailed, errors.Wrapf(err, "create %s", subdirName))
		}
	}

	gen := guid.NewGenerator(bag.IDs()...)
	entries := bag.Cards()
	res.Dropped = len(bag.Children) - len(entries)
	retained := make([]*save.Object, 0, len(entries))

	for _, entry := range entries {
		obj := entry.Object

		id, ok := card.GUID(obj)
		if !ok {
			id, err = gen.Next()
			if err != nil {
				return fail(StatusFailed, errors.Wrapf(err, "card %d", entry.Index))
			}
			if err := obj.Set(card.FieldGUID, id); err != nil {
				return fail(StatusFailed, errors.Wrapf(err, "card %d", entry.Index))
			}
			res.Generated = append(res.Generated, id)
			log.WithFields(logrus.Fields{"card": entry.Index, "guid": id}).Info("assigned GUID")
		}

		nickname, _ := obj.String(card.FieldNickname)
		fileStem := naming.CardStem(nickname, entry.Index, id)

		if !p.opts.DryRun {
			out := card.Transform(obj, p.templates.Card())
			if err := fileutil.WriteJSON(filepath.Join(subdir, fileStem+".json"), out); err != nil {
				return fail(StatusFailed, errors.Wrapf(err, "write card %s", fileStem))
			}
		}
		log.WithField("card", fileStem).Debug("wrote card")

		retained = append(retained, obj)
		res.Cards = append(res.Cards, fileStem)
	}

	if res.Dropped > 0 {
		log.WithField("dropped", res.Dropped).Info("removed non-card objects from Bag")
	}

	if err := bag.Retain(retained); err != nil {
		return fail(StatusFailed, errors.Wrap(err, name))
	}

	if !p.opts.DryRun {
		if err := writeDocument(source, doc); err != nil {
			return fail(StatusFailed, errors.Wrapf(err, "rewrite %s", name))
		}

		manifest, err := BuildManifest(p.templates.List(), subdirName, bag.GUID, res.Cards)
		if err != nil {
			return fail(StatusFailed, errors.Wrapf(err, "build manifest for %s", name))
		}
		manifestPath := filepath.Join(p.opts.OutputDir, subdirName+".json")
		if err := fileutil.WriteJSON(manifestPath, manifest); err != nil {
			return fail(StatusFailed, errors.Wrapf(err, "write manifest %s", subdirName))
		}
	}

	res.Status = StatusProcessed
	log.WithField("cards", len(res.Cards)).Info("file processed")
	return res
}

func writeDocument(path string, doc *save.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data)
}
