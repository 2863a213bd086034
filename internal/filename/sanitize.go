package filename

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/runenames"
)

// emojiRanges lists the pictographic Unicode blocks stripped from titles.
// Letters, digits, punctuation, and non-emoji symbols (the degree sign,
// currency signs, math operators) are outside these ranges and survive, so
// multilingual content is preserved.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1}, // miscellaneous symbols
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1}, // dingbats
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // variation selectors
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1}, // mahjong / dominoes / playing cards
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1}, // regional indicators
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map symbols
		{Lo: 0x1F700, Hi: 0x1F77F, Stride: 1}, // alchemical symbols
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols and pictographs
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // symbols and pictographs extended-A
	},
}

// decorativeKeywords match the Unicode names of decorative symbols that sit
// outside the block ranges above (stylistic hearts, stars, sparkles, ...).
// Only characters in the Symbol categories are checked against this list, so
// ordinary words in titles are never affected.
var decorativeKeywords = []string{
	"face",
	"heart",
	"star",
	"fire",
	"balloon",
	"sparkle",
	"snowman",
	"ornament",
}

var sanitizeTransform = transform.Chain(
	runes.Remove(runes.In(emojiRanges)),
	runes.Remove(runes.Predicate(isDecorativeSymbol)),
)

// Sanitize strips emoji and decorative symbols from text and normalizes
// whitespace runs to single spaces. Empty input yields empty output; the
// caller is responsible for fallback naming.
func Sanitize(text string) string {
	cleaned, _, err := transform.String(sanitizeTransform, text)
	if err != nil {
		// Rune removal cannot fail on valid UTF-8; fall back to the input.
		cleaned = text
	}
	return strings.Join(strings.Fields(cleaned), " ")
}

// isDecorativeSymbol reports whether r is a symbol whose Unicode name
// matches the decorative keyword list.
func isDecorativeSymbol(r rune) bool {
	if !unicode.In(r, unicode.So, unicode.Sk) {
		return false
	}
	name := strings.ToLower(runenames.Name(r))
	for _, kw := range decorativeKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
