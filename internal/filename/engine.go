package filename

import "time"

// Engine runs the full synthesis pipeline with a fixed budget and clock.
type Engine struct {
	budget   Budget
	resolver *Resolver
}

// NewEngine returns an engine for the given budget. now supplies the clock
// for timestamp fallbacks; nil means time.Now.
func NewEngine(b Budget, now func() time.Time) *Engine {
	b = b.normalized()
	return &Engine{budget: b, resolver: NewResolver(b, now)}
}

// Budget returns the engine's normalized budget.
func (e *Engine) Budget() Budget { return e.budget }

// Stem synthesizes a unique, filesystem-safe stem (no extension) for a page
// title and claims it in reg. sourceURL may be empty when only a legacy
// filename is known. The candidate is encoded before resolution so the
// character mapping can never reintroduce a collision the resolver just
// broke; the final Encode is an idempotent ceiling check.
func (e *Engine) Stem(title, sourceURL string, reg *Registry) string {
	st := Extract(Sanitize(title))
	candidate := Encode(Assemble(st, sourceURL, e.budget), e.budget)
	resolved := e.resolver.Resolve(candidate, reg)
	return Encode(resolved, e.budget)
}
