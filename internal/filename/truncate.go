package filename

import (
	"strings"
	"unicode/utf8"
)

// ellipsis terminates text that was cut mid-thought. It costs 3 bytes of
// budget, which Truncate accounts for before choosing a cut point.
const ellipsis = "…"

const ellipsisBytes = len(ellipsis)

// sentenceEnders close a complete sentence. A cut here keeps the mark and
// needs no ellipsis.
const sentenceEnders = ".!?。！？"

// clauseSeparators mark natural pause points. A cut here drops the mark and
// appends an ellipsis.
const clauseSeparators = ",;:，；：、"

// Truncate shortens text to at most maxBytes of UTF-8, preferring cut points
// in descending order of quality: a sentence boundary in the upper half of
// the budget, a clause boundary past 60% of it, a word boundary, and finally
// a hard cut at the last complete codepoint. It never splits a codepoint.
func Truncate(text string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(text) <= maxBytes {
		return text
	}
	if maxBytes <= ellipsisBytes {
		return truncByteBoundary(text, maxBytes)
	}

	if cut := lastBoundary(text, sentenceEnders, maxBytes/2, maxBytes); cut > 0 {
		return text[:cut]
	}
	if cut := lastBoundary(text, clauseSeparators, maxBytes*6/10, maxBytes-ellipsisBytes); cut > 0 {
		// Drop the separator itself; the ellipsis takes its place.
		_, size := utf8.DecodeLastRuneInString(text[:cut])
		return strings.TrimRight(text[:cut-size], " ") + ellipsis
	}
	if cut := lastSpace(text, maxBytes-ellipsisBytes); cut > 0 {
		return strings.TrimRight(text[:cut], " ") + ellipsis
	}
	return truncByteBoundary(text, maxBytes-ellipsisBytes) + ellipsis
}

// lastBoundary returns the byte offset just past the last rune from set that
// ends within (lo, hi] bytes of text, or 0 when no such boundary exists.
func lastBoundary(text, set string, lo, hi int) int {
	best := 0
	for i, r := range text {
		end := i + utf8.RuneLen(r)
		if end > hi {
			break
		}
		if end > lo && strings.ContainsRune(set, r) {
			best = end
		}
	}
	return best
}

// lastSpace returns the offset of the last space at or before limit bytes,
// or 0 when the prefix contains none.
func lastSpace(text string, limit int) int {
	if limit > len(text) {
		limit = len(text)
	}
	idx := strings.LastIndexByte(text[:limit], ' ')
	if idx <= 0 {
		return 0
	}
	return idx
}

// truncByteBoundary cuts text at maxBytes, walking back to the start of the
// last complete codepoint so no rune is ever split.
func truncByteBoundary(text string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(text) <= maxBytes {
		return text
	}
	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
