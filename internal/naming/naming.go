package naming

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// Fallback is returned when nothing of a name survives sanitizing.
const Fallback = "Unknown"

// Sanitize reduces a display name to characters that are safe in a file name
// on every platform: CJK unified ideographs (U+4E00 to U+9FA5), ASCII letters
// and ASCII digits. Full-width Latin letters and digits are folded to their
// ASCII forms first so "Ｃａｒｄ１" keeps its letters.
func Sanitize(name string) string {
	name = width.Narrow.String(name)

	var b strings.Builder
	for _, r := range name {
		if keep(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

func keep(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x4e00 && r <= 0x9fa5:
		return true
	}
	return false
}

// CardStem builds the file name (without extension) for a card. Cards with no
// nickname are named after their 1-based position in the container.
func CardStem(nickname string, index int, guid string) string {
	if nickname == "" {
		return fmt.Sprintf("Card_%d.%s", index, guid)
	}
	return Sanitize(nickname) + "." + guid
}
