package filename

import (
	"regexp"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"safe stem untouched", "X_上的_宝玉_分析", "X_上的_宝玉_分析"},
		{"forbidden characters folded", `a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"run folds to one underscore", "a<>:b", "a_b"},
		{"spaces become underscores", "hello world  again", "hello_world_again"},
		{"control characters removed", "tab\there", "tab_here"},
		{"edges trimmed", "_.hello._", "hello"},
		{"all unsafe falls back", `\/\/`, untitledToken},
		{"empty falls back", "", untitledToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Encode(tt.in, DefaultBudget); got != tt.want {
				t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeCeiling(t *testing.T) {
	b := DefaultBudget
	in := strings.Repeat("a", 300)
	got := Encode(in, b)
	ceiling := b.CeilingBytes - b.ExtBytes
	if len(got) != ceiling {
		t.Fatalf("len = %d, want %d", len(got), ceiling)
	}
	if !regexp.MustCompile(`_[0-9a-f]{8}$`).MatchString(got) {
		t.Errorf("clamped stem missing hash tag: %q", got)
	}

	other := Encode(strings.Repeat("a", 299)+"b", b)
	if got == other {
		t.Error("distinct oversized stems encoded identically")
	}
}

func TestEncodeIdempotent(t *testing.T) {
	inputs := []string{
		"X_上的_宝玉_OpenAI_新功能分析",
		"hello world / slash",
		"Web_[URL]_https%3A%2F%2Fexample.org",
	}
	for _, in := range inputs {
		once := Encode(in, DefaultBudget)
		twice := Encode(once, DefaultBudget)
		if once != twice {
			t.Errorf("Encode not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestEncodeCeilingPreservesCodepoints(t *testing.T) {
	in := strings.Repeat("中", 120)
	got := Encode(in, DefaultBudget)
	if len(got) > DefaultBudget.CeilingBytes-DefaultBudget.ExtBytes {
		t.Fatalf("clamped stem %d bytes over ceiling", len(got))
	}
	if strings.ContainsRune(got, '�') {
		t.Errorf("clamped stem contains replacement character: %q", got)
	}
}
