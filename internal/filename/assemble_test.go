package filename

import (
	"strings"
	"testing"
)

func TestAssembleContentStem(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "platform user content",
			in:   "X 上的 宝玉：OpenAI 新功能分析",
			want: "X_上的_宝玉_OpenAI 新功能分析",
		},
		{
			name: "no platform keeps content alone",
			in:   "深入理解数据库索引原理",
			want: "深入理解数据库索引原理",
		},
		{
			name: "empty title falls back to placeholder",
			in:   "",
			want: untitledToken,
		},
		{
			name: "youtube suffix becomes prefix",
			in:   "Go Concurrency Patterns - YouTube",
			want: "YouTube_上的_Go Concurrency Patterns",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assemble(Extract(tt.in), "", DefaultBudget)
			if got != tt.want {
				t.Errorf("Assemble(Extract(%q)) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAssembleURLStem(t *testing.T) {
	st := Extract("twitter.com_dotey_status_123")
	got := Assemble(st, "https://x.com/dotey/status/999", DefaultBudget)
	want := "X_上的_dotey_[URL]_https%3A%2F%2Fx.com%2Fdotey%2Fstatus%2F999"
	if got != want {
		t.Errorf("Assemble with source URL = %q, want %q", got, want)
	}
}

func TestAssembleDescriptiveTitleIgnoresSourceURL(t *testing.T) {
	st := Extract("X 上的 宝玉：新功能分析")
	got := Assemble(st, "https://x.com/dotey/status/123", DefaultBudget)
	want := "X_上的_宝玉_新功能分析"
	if got != want {
		t.Errorf("Assemble = %q, want content-preserving %q", got, want)
	}
}

func TestAssembleReconstructsLegacyURL(t *testing.T) {
	st := Extract("twitter.com_dotey_status_123")
	got := Assemble(st, "", DefaultBudget)
	want := "X_上的_dotey_[URL]_https%3A%2F%2Fx.com%2Fdotey%2Fstatus%2F123"
	if got != want {
		t.Errorf("Assemble legacy blob = %q, want %q", got, want)
	}
}

func TestAssembleURLShrinksTail(t *testing.T) {
	long := "https://x.com/someuser/status/123?" + strings.Repeat("q=verylongquery&", 20)
	st := Extract("X 上的 someuser：内容 [URL]")
	b := Budget{TotalBytes: 80, CeilingBytes: 255, MinContent: 12, ExtBytes: 5}
	got := Assemble(st, long, b)
	if len(got) > b.stemBudget() {
		t.Fatalf("stem %d bytes, budget %d", len(got), b.stemBudget())
	}
	if !strings.HasPrefix(got, "X_上的_someuser_[URL]_") {
		t.Errorf("stem lost its prefix: %q", got)
	}
	if strings.Contains(got[len(got)-2:], "%") {
		t.Errorf("stem ends mid-escape: %q", got)
	}
}

func TestAssembleCollapsesToPrefix(t *testing.T) {
	st := Extract("X 上的 宝玉：非常长的内容描述文本继续延长下去")
	b := Budget{TotalBytes: 30, CeilingBytes: 255, MinContent: 12, ExtBytes: 5}
	got := Assemble(st, "", b)
	if got != "X_上的_宝玉" {
		t.Errorf("Assemble under tight budget = %q, want X_上的_宝玉", got)
	}
}

func TestHasURLIndicators(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"plain descriptive title", false},
		{"see https://example.org/page", true},
		{"twitter.com_user_status_1", true},
		{"encoded https%3A%2F%2Fx.com", true},
		{"saved as (title) [URL] x.com", true},
		{"x dot com spelled out", false},
	}
	for _, tt := range tests {
		if got := hasURLIndicators(tt.in); got != tt.want {
			t.Errorf("hasURLIndicators(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReconstructURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"twitter.com_dotey_status_123", "https://x.com/dotey/status/123"},
		{"x.com_karpathy_status_99", "https://x.com/karpathy/status/99"},
		{"instagram.com_p_AbC123", "https://instagram.com/p/AbC123"},
		{"no url here", ""},
	}
	for _, tt := range tests {
		if got := reconstructURL(tt.in); got != tt.want {
			t.Errorf("reconstructURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTrimEncoded(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"abc%2Fdef", 20, "abc%2Fdef"},
		{"abc%2Fdef", 5, "abc"},
		{"abc%2Fdef", 6, "abc%2F"},
		{"abc%2Fdef", 4, "abc"},
		{"abcdef", 4, "abcd"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := trimEncoded(tt.in, tt.max); got != tt.want {
			t.Errorf("trimEncoded(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestBudgetNormalized(t *testing.T) {
	b := Budget{}.normalized()
	if b.TotalBytes != DefaultBudget.TotalBytes || b.CeilingBytes != DefaultBudget.CeilingBytes {
		t.Errorf("zero budget normalized to %+v", b)
	}
	over := Budget{TotalBytes: 400, CeilingBytes: 255}.normalized()
	if over.TotalBytes != 255 {
		t.Errorf("TotalBytes not clamped to ceiling: %d", over.TotalBytes)
	}
	tiny := Budget{TotalBytes: 5, CeilingBytes: 255, ExtBytes: 5}.normalized()
	if tiny.stemBudget() < minTotalBytes {
		t.Errorf("stem budget %d below floor", tiny.stemBudget())
	}
}
