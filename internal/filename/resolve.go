package filename

import (
	"fmt"
	"strconv"
	"time"
)

// counterMax bounds the numbered-suffix chain. Past it the resolver falls
// back to a timestamp suffix, which is effectively collision-free.
const counterMax = 999

// timestampLayout is the fallback suffix format, second resolution.
const timestampLayout = "20060102_150405"

// Resolver deduplicates candidate stems against a registry. The zero value
// is not usable; construct with NewResolver.
type Resolver struct {
	budget Budget
	now    func() time.Time
}

// NewResolver returns a resolver for the given budget. now supplies the
// clock for timestamp fallbacks; nil means time.Now.
func NewResolver(b Budget, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{budget: b.normalized(), now: now}
}

// Resolve returns a stem derived from candidate that is unique within reg,
// and claims it there. The chain is: the candidate itself, numbered suffixes
// _001 through _999 with the base shortened so the suffix still fits the
// budget, then a timestamp suffix. Resolve always returns a claimed stem.
func (r *Resolver) Resolve(candidate string, reg *Registry) string {
	max := r.budget.stemBudget()
	candidate = Truncate(candidate, max)
	if candidate == "" {
		candidate = untitledToken
	}
	if reg.Claim(candidate) {
		return candidate
	}

	// Shorten once so every numbered variant fits; the suffix is a fixed
	// 4 bytes ("_001").
	base := Truncate(candidate, max-4)
	for n := 1; n <= counterMax; n++ {
		numbered := fmt.Sprintf("%s_%03d", base, n)
		if reg.Claim(numbered) {
			return numbered
		}
	}

	ts := r.now().Format(timestampLayout)
	stamped := Truncate(candidate, max-len(ts)-1) + "_" + ts
	if reg.Claim(stamped) {
		return stamped
	}

	// Same candidate, same second, 999 numbered twins already taken.
	// Nanoseconds plus a counter terminate the chain against any finite
	// registry, even with a frozen clock.
	final := "archive_" + strconv.FormatInt(r.now().UnixNano(), 10)
	for i := 0; !reg.Claim(final); i++ {
		final = "archive_" + strconv.FormatInt(r.now().UnixNano(), 10) + "_" + strconv.Itoa(i)
	}
	return final
}
