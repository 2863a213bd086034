package filename

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestResolveFirstUse(t *testing.T) {
	r := NewResolver(DefaultBudget, nil)
	reg := NewRegistry()
	got := r.Resolve("X_上的_宝玉_分析", reg)
	if got != "X_上的_宝玉_分析" {
		t.Errorf("Resolve on empty registry = %q, want candidate unchanged", got)
	}
	if !reg.Has(got) {
		t.Error("resolved stem was not claimed in the registry")
	}
}

func TestResolveNumberedSuffix(t *testing.T) {
	r := NewResolver(DefaultBudget, nil)
	reg := NewRegistry("X_上的_宝玉_分析")
	got := r.Resolve("X_上的_宝玉_分析", reg)
	if got != "X_上的_宝玉_分析_001" {
		t.Errorf("first collision = %q, want _001 suffix", got)
	}
	got = r.Resolve("X_上的_宝玉_分析", reg)
	if got != "X_上的_宝玉_分析_002" {
		t.Errorf("second collision = %q, want _002 suffix", got)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := NewResolver(DefaultBudget, nil)
	reg := NewRegistry("Saved_Page")
	got := r.Resolve("saved_page", reg)
	if got != "saved_page_001" {
		t.Errorf("case-insensitive collision = %q, want saved_page_001", got)
	}
}

func TestResolveTimestampFallback(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewResolver(DefaultBudget, fixedClock(now))
	reg := NewRegistry("page")
	for n := 1; n <= counterMax; n++ {
		reg.Add(fmt.Sprintf("page_%03d", n))
	}
	got := r.Resolve("page", reg)
	want := "page_20240102_030405"
	if got != want {
		t.Errorf("saturated counter chain = %q, want %q", got, want)
	}
}

func TestResolveTerminatesWithFrozenClock(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)
	r := NewResolver(DefaultBudget, fixedClock(now))
	reg := NewRegistry("page", "page_20240102_030405")
	for n := 1; n <= counterMax; n++ {
		reg.Add(fmt.Sprintf("page_%03d", n))
	}
	first := r.Resolve("page", reg)
	second := r.Resolve("page", reg)
	if first == second {
		t.Errorf("fallback stems collide: %q", first)
	}
	if !strings.HasPrefix(first, "archive_") {
		t.Errorf("terminal fallback = %q, want archive_ prefix", first)
	}
}

func TestResolveClampsOversizedCandidate(t *testing.T) {
	r := NewResolver(DefaultBudget, nil)
	reg := NewRegistry()
	got := r.Resolve(strings.Repeat("a", 400), reg)
	if len(got) > DefaultBudget.stemBudget() {
		t.Errorf("resolved stem %d bytes, budget %d", len(got), DefaultBudget.stemBudget())
	}
}

func TestResolveNumberedFitsBudget(t *testing.T) {
	b := Budget{TotalBytes: 40, CeilingBytes: 255, MinContent: 12, ExtBytes: 5}
	r := NewResolver(b, nil)
	candidate := strings.Repeat("中", 20) // well over the stem budget
	reg := NewRegistry()
	first := r.Resolve(candidate, reg)
	second := r.Resolve(candidate, reg)
	if len(second) > b.normalized().stemBudget() {
		t.Errorf("numbered stem %d bytes, budget %d", len(second), b.normalized().stemBudget())
	}
	if !strings.HasSuffix(second, "_001") {
		t.Errorf("second resolution = %q, want _001 suffix", second)
	}
	if first == second {
		t.Error("collision not resolved")
	}
}

func TestRegistryClaim(t *testing.T) {
	reg := NewRegistry()
	if !reg.Claim("stem") {
		t.Error("first Claim = false, want true")
	}
	if reg.Claim("STEM") {
		t.Error("case-variant Claim = true, want false")
	}
	if reg.Len() != 1 {
		t.Errorf("Len = %d, want 1", reg.Len())
	}
}
