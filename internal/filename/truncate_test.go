package filename

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits untouched", "short title", 100, "short title"},
		{"exact fit", "12345", 5, "12345"},
		{"zero budget", "anything", 0, ""},
		{"negative budget", "anything", -3, ""},
		{
			name: "sentence boundary kept without ellipsis",
			in:   "First sentence. Second part that goes on and on",
			max:  28,
			want: "First sentence.",
		},
		{
			name: "clause boundary replaced by ellipsis",
			in:   "one, two, three, four, five, six, seven",
			max:  25,
			want: "one, two, three, four…",
		},
		{
			name: "word boundary with ellipsis",
			in:   "alpha beta gamma delta epsilon",
			max:  20,
			want: "alpha beta gamma…",
		},
		{
			name: "cjk hard cut at codepoint boundary",
			in:   "中文标题测试",
			max:  10,
			want: "中文…",
		},
		{
			name: "budget below ellipsis cost",
			in:   "abcdefgh",
			max:  3,
			want: "abc",
		},
		{
			name: "cjk sentence boundary",
			in:   "第一句话。第二句话继续延伸下去",
			max:  24,
			want: "第一句话。",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if len(got) > tt.max && tt.max > 0 {
				t.Errorf("Truncate(%q, %d) = %q: %d bytes over budget", tt.in, tt.max, got, len(got))
			}
		})
	}
}

func TestTruncateNeverSplitsCodepoints(t *testing.T) {
	inputs := []string{
		"中文标题测试内容延伸",
		"日本語のタイトルです",
		"mixed 中英文 content here",
		strings.Repeat("héllo wörld ", 10),
	}
	for _, in := range inputs {
		for max := 1; max <= len(in); max++ {
			got := Truncate(in, max)
			if !utf8.ValidString(got) {
				t.Fatalf("Truncate(%q, %d) = %q: invalid UTF-8", in, max, got)
			}
			if len(got) > max {
				t.Fatalf("Truncate(%q, %d) = %q: %d bytes over budget", in, max, got, len(got))
			}
		}
	}
}

func TestTruncByteBoundary(t *testing.T) {
	if got := truncByteBoundary("中文", 4); got != "中" {
		t.Errorf("truncByteBoundary(中文, 4) = %q, want 中", got)
	}
	if got := truncByteBoundary("abc", 10); got != "abc" {
		t.Errorf("truncByteBoundary(abc, 10) = %q, want abc", got)
	}
	if got := truncByteBoundary("abc", 0); got != "" {
		t.Errorf("truncByteBoundary(abc, 0) = %q, want empty", got)
	}
}
