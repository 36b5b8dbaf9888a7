// phrase.go centralises how announcements are worded. Keep phrases
// short and front-loaded; screen reader users hear the first words.
package announce

import (
	"fmt"
	"regexp"
	"strings"
)

// markupRegex matches rich-text tags the host embeds in UI strings,
// e.g. <color=#ff0000>, </color>, <sprite name="coin">.
var markupRegex = regexp.MustCompile(`<[^<>]*>`)

// placeholderLabels are strings the host uses for empty or locked
// slots. Announcing them verbatim is noise, so they are filtered and
// replaced with a positional fallback.
var placeholderLabels = map[string]struct{}{
	"":     {},
	"-":    {},
	"--":   {},
	"—":    {},
	"???":  {},
	"????": {},
}

// Position phrases a labeled list position: "Potion, 2 of 8".
// Indexes are zero-based on the way in, one-based on the way out.
func Position(label string, index, count int) string {
	if count <= 0 {
		return label
	}
	return fmt.Sprintf("%s, %d of %d", label, index+1, count)
}

// StripMarkup removes rich-text tags and collapses the whitespace left
// behind, returning text safe to hand to a speech backend.
func StripMarkup(text string) string {
	text = markupRegex.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.Join(strings.Fields(text), " ")
}

// IsPlaceholder reports whether a host-supplied label is a filler
// string that should not be spoken as-is.
func IsPlaceholder(label string) bool {
	_, ok := placeholderLabels[strings.TrimSpace(label)]
	return ok
}

// FallbackOption is the neutral label used when an item's text cannot
// be read from the host: "Option 3". Index is zero-based.
func FallbackOption(index int) string {
	return fmt.Sprintf("Option %d", index+1)
}

// Label cleans a host-supplied item label, falling back to a neutral
// positional name when the label is missing or filler.
func Label(raw string, index int) string {
	clean := StripMarkup(raw)
	if IsPlaceholder(clean) {
		return FallbackOption(index)
	}
	return clean
}

// Join composes announcement fragments with ", " separators, skipping
// empty fragments so optional parts never leave dangling commas.
func Join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
