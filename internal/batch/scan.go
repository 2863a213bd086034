// Package batch drives multi-page operations over an archive directory:
// capturing URL lists, rescanning existing files, and renaming them onto
// synthesized filenames.
package batch

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pagevault/pagevault/internal/filename"
)

// Archive is one stored capture inside the archive directory.
type Archive struct {
	Dir  string
	Name string // filename with extension
	Stem string // filename without extension
}

// Path returns the absolute path of the archive file.
func (a Archive) Path() string {
	return filepath.Join(a.Dir, a.Name)
}

// legacyTitleRe matches the old "(title) [URL] encoded-url" filename shape;
// the capture is the original page title.
var legacyTitleRe = regexp.MustCompile(`^\(([^)]+)\)`)

// Scan lists the archive files in dir carrying the given extension.
// Subdirectories are not descended into.
func Scan(dir, ext string) ([]Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	var archives []Archive
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext != "" && !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		archives = append(archives, Archive{
			Dir:  dir,
			Name: name,
			Stem: strings.TrimSuffix(name, filepath.Ext(name)),
		})
	}
	return archives, nil
}

// LoadRegistry builds a filename registry seeded with the stems already
// present in dir, so newly synthesized names cannot collide with them.
func LoadRegistry(dir, ext string) (*filename.Registry, error) {
	archives, err := Scan(dir, ext)
	if err != nil {
		return nil, err
	}
	stems := make([]string, len(archives))
	for i, a := range archives {
		stems[i] = a.Stem
	}
	return filename.NewRegistry(stems...), nil
}

// legacyURLRe matches the encoded-URL tail of legacy filenames.
var legacyURLRe = regexp.MustCompile(`\[URL\][ _]?(\S+)$`)

// TitleFromStem recovers the best available page title from an existing
// filename stem. Legacy "(title) ..." names yield the parenthesized title
// with the encoded-URL tail carried along, so a resynthesized name keeps the
// URL-bearing format; anything else is returned as-is, since the synthesis
// pipeline understands underscore-joined domain blobs directly.
func TitleFromStem(stem string) string {
	m := legacyTitleRe.FindStringSubmatch(stem)
	if m == nil {
		return stem
	}
	title := strings.TrimSpace(m[1])
	if tail := legacyURLRe.FindString(stem); tail != "" {
		return title + " " + tail
	}
	return title
}

// URLFromStem recovers the source URL embedded in a stem, decoding the
// percent-encoded tail of legacy and URL-bearing names. Returns "" when the
// stem carries none or the tail does not decode.
func URLFromStem(stem string) string {
	m := legacyURLRe.FindStringSubmatch(stem)
	if m == nil {
		return ""
	}
	decoded, err := url.QueryUnescape(m[1])
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(decoded, "http://") && !strings.HasPrefix(decoded, "https://") {
		return ""
	}
	return decoded
}
