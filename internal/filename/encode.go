package filename

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// unsafeChars are the characters forbidden or hazardous in filenames across
// the filesystems archives land on. Runs collapse to a single underscore.
var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)

// whitespaceRuns folds any whitespace run into one underscore so stems never
// carry spaces.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// Encode maps a stem onto the filesystem-safe character set and enforces the
// hard byte ceiling (extension bytes reserved). A stem cut at the ceiling
// gets an 8-hex-digit hash of its pre-cut form appended so distinct inputs
// stay distinct. Encode is idempotent on its own output when the output fits.
func Encode(stem string, b Budget) string {
	b = b.normalized()

	safe := unsafeChars.ReplaceAllString(stem, "_")
	safe = whitespaceRuns.ReplaceAllString(safe, "_")
	safe = strings.Trim(safe, "_.")
	if safe == "" {
		safe = untitledToken
	}

	ceiling := b.CeilingBytes - b.ExtBytes
	if len(safe) <= ceiling {
		return safe
	}

	h := fnv.New32a()
	h.Write([]byte(safe))
	tag := fmt.Sprintf("%08x", h.Sum32())
	keep := ceiling - len(tag) - 1
	return truncByteBoundary(safe, keep) + "_" + tag
}
