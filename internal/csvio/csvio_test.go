package csvio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagevault/pagevault/internal/clierr"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWithHeader(t *testing.T) {
	path := writeFile(t, "url,title,notes\nhttps://example.org,Example,first\nhttps://x.com/a/status/1,,\n")
	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].URL != "https://example.org" || records[0].Title != "Example" || records[0].Notes != "first" {
		t.Errorf("record[0] = %+v", records[0])
	}
}

func TestLoadHeaderless(t *testing.T) {
	path := writeFile(t, "https://example.org\nhttps://example.net\n")
	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 || records[0].URL != "https://example.org" {
		t.Errorf("records = %+v", records)
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := writeFile(t, "url\nhttps://example.org\n\"\"\n")
	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len = %d, want 1", len(records))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var cerr *clierr.Error
	if !errors.As(err, &cerr) || cerr.Code != clierr.CSVNotFound {
		t.Errorf("Load missing file = %v, want CSV_NOT_FOUND", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	in := []Record{
		{URL: "https://example.org", Title: "标题, 带逗号"},
		{URL: "https://x.com/a/status/1"},
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 || out[0].Title != "标题, 带逗号" {
		t.Errorf("round trip = %+v", out)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"https://example.org/page", true},
		{"http://example.org", true},
		{"ftp://example.org", false},
		{"example.org", false},
		{"https://", false},
		{"not a url", false},
	}
	for _, tt := range tests {
		err := ValidateURL(tt.in)
		if tt.ok && err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", tt.in)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://Twitter.com/User/status/1", "https://x.com/User/status/1"},
		{"https://www.example.org/page/", "https://example.org/page"},
		{"https://example.org/a?utm_source=feed&q=1", "https://example.org/a?q=1"},
		{"https://example.org/a#section", "https://example.org/a"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	a := []Record{{URL: "https://example.org", Title: "kept"}}
	b := []Record{
		{URL: "https://www.example.org/", Title: "duplicate"},
		{URL: "https://example.net", Title: "new"},
	}
	got := Merge(a, b)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "kept" || got[1].Title != "new" {
		t.Errorf("merged = %+v", got)
	}
}

func TestSplit(t *testing.T) {
	records := []Record{
		{URL: "https://example.org"},
		{URL: "nonsense"},
	}
	valid, invalid := Split(records)
	if len(valid) != 1 || len(invalid) != 1 {
		t.Errorf("Split = %d valid, %d invalid", len(valid), len(invalid))
	}
}

func TestFilterHost(t *testing.T) {
	records := []Record{
		{URL: "https://x.com/a/status/1"},
		{URL: "https://twitter.com/b/status/2"},
		{URL: "https://example.org"},
	}
	got := FilterHost(records, "x.com")
	if len(got) != 2 {
		t.Errorf("FilterHost = %d records, want 2 (twitter folded into x)", len(got))
	}
}
