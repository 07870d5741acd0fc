// Package guid generates the short object identifiers used in save files.
//
// Identifiers are six characters drawn uniformly from "123456789abcdef".
// The space holds 15^6 (about 11.4 million) values, so collisions between
// independent draws become likely once a save holds a few thousand objects.
// Generator guards against that within a single document by rejecting draws
// that are already in use; nothing checks uniqueness across documents.
package guid

import (
	"errors"
	"math/rand"
)

const (
	// Alphabet is the set of characters an identifier is drawn from.
	Alphabet = "123456789abcdef"
	// Length is the number of characters in an identifier.
	Length = 6

	maxAttempts = 64
)

// ErrExhausted is returned when no unused identifier was found.
var ErrExhausted = errors.New("guid: no unused identifier after retries")

// New returns a random identifier. It is safe for concurrent use.
func New() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = Alphabet[rand.Intn(len(Alphabet))]
	}
	return string(b)
}

// Valid reports whether s has the shape of a generated identifier.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) {
			return false
		}
	}
	return true
}

func isAlphabet(c byte) bool {
	return (c >= '1' && c <= '9') || (c >= 'a' && c <= 'f')
}

// Generator hands out identifiers that are unique within one document.
// It is not safe for concurrent use; each document gets its own.
type Generator struct {
	taken map[string]struct{}
	draw  func() string
}

// NewGenerator returns a generator that will never return any of the given
// identifiers.
func NewGenerator(existing ...string) *Generator {
	g := &Generator{
		taken: make(map[string]struct{}, len(existing)),
		draw:  New,
	}
	for _, id := range existing {
		g.Reserve(id)
	}
	return g
}

// Reserve marks id as in use. Empty identifiers are ignored.
func (g *Generator) Reserve(id string) {
	if id == "" {
		return
	}
	g.taken[id] = struct{}{}
}

// Next draws a fresh identifier and reserves it.
func (g *Generator) Next() (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := g.draw()
		if _, ok := g.taken[id]; ok {
			continue
		}
		g.taken[id] = struct{}{}
		return id, nil
	}
	return "", ErrExhausted
}
