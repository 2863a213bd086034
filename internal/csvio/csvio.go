// Package csvio reads and writes the URL list CSVs that drive batch
// archiving. Files carry a "url" column and optional "title" and "notes"
// columns; headerless single-column files are accepted for convenience.
package csvio

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pagevault/pagevault/internal/clierr"
)

const fileMode = 0o600

// Record is one row of a URL list.
type Record struct {
	URL   string
	Title string
	Notes string
}

// Load reads a URL list from path. The first row is treated as a header
// when it contains a "url" column; otherwise every row's first field is
// taken as the URL.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path) //nolint:gosec // path from user invocation
	if err != nil {
		if os.IsNotExist(err) {
			return nil, clierr.Newf(clierr.CSVNotFound, "csv file not found: %s", path)
		}
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, clierr.Newf(clierr.CSVInvalid, "parsing %s: %v", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	urlCol, titleCol, notesCol := 0, -1, -1
	start := 0
	if cols, ok := headerColumns(rows[0]); ok {
		urlCol, titleCol, notesCol = cols.url, cols.title, cols.notes
		start = 1
	}

	records := make([]Record, 0, len(rows)-start)
	for _, row := range rows[start:] {
		if urlCol >= len(row) {
			continue
		}
		rec := Record{URL: strings.TrimSpace(row[urlCol])}
		if rec.URL == "" {
			continue
		}
		if titleCol >= 0 && titleCol < len(row) {
			rec.Title = strings.TrimSpace(row[titleCol])
		}
		if notesCol >= 0 && notesCol < len(row) {
			rec.Notes = strings.TrimSpace(row[notesCol])
		}
		records = append(records, rec)
	}
	return records, nil
}

type columns struct {
	url, title, notes int
}

func headerColumns(row []string) (columns, bool) {
	cols := columns{url: -1, title: -1, notes: -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "url", "link":
			cols.url = i
		case "title":
			cols.title = i
		case "notes", "note":
			cols.notes = i
		}
	}
	return cols, cols.url >= 0
}

// Save writes records to path with a header row.
func Save(path string, records []Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode) //nolint:gosec // path from user invocation
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url", "title", "notes"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write([]string{rec.URL, rec.Title, rec.Notes}); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ValidateURL checks that raw is an absolute http(s) URL with a host.
func ValidateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return clierr.Newf(clierr.URLInvalid, "invalid url %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return clierr.Newf(clierr.URLInvalid, "invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return clierr.Newf(clierr.URLInvalid, "invalid url %q: missing host", raw)
	}
	return nil
}

// NormalizeURL canonicalizes a URL for dedup comparison: the host is
// lowercased (twitter.com folded into x.com), tracking parameters and the
// fragment are dropped, and a trailing slash is trimmed.
func NormalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return strings.TrimSpace(raw)
	}
	u.Host = strings.ToLower(u.Host)
	u.Host = strings.TrimPrefix(u.Host, "www.")
	if u.Host == "twitter.com" {
		u.Host = "x.com"
	}
	u.Fragment = ""

	q := u.Query()
	for key := range q {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u.String()
}

// Merge combines two record lists, keeping the first occurrence of each
// normalized URL. Order is preserved: all of a, then the new rows of b.
func Merge(a, b []Record) []Record {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]Record, 0, len(a)+len(b))
	for _, rec := range append(append([]Record{}, a...), b...) {
		key := NormalizeURL(rec.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

// Split partitions records into valid and invalid by URL syntax.
func Split(records []Record) (valid, invalid []Record) {
	for _, rec := range records {
		if ValidateURL(rec.URL) == nil {
			valid = append(valid, rec)
		} else {
			invalid = append(invalid, rec)
		}
	}
	return valid, invalid
}

// FilterHost returns the records whose normalized host matches host
// (case-insensitive, "www." ignored).
func FilterHost(records []Record, host string) []Record {
	want := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	var out []Record
	for _, rec := range records {
		u, err := url.Parse(NormalizeURL(rec.URL))
		if err != nil {
			continue
		}
		if strings.TrimPrefix(strings.ToLower(u.Host), "www.") == want {
			out = append(out, rec)
		}
	}
	return out
}
