package runner

import (
	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/check"
)

// Registry maps analyzer IDs to analyzer implementations and rule IDs
// to check implementations. It is built explicitly at startup and
// passed to the runner; nothing registers itself through import side
// effects.
type Registry struct {
	analyzers map[string]analyze.Analyzer
	checks    map[check.RuleID]check.Check
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		analyzers: make(map[string]analyze.Analyzer),
		checks:    make(map[check.RuleID]check.Check),
	}
}

// RegisterAnalyzer adds an analyzer under its own ID.
func (r *Registry) RegisterAnalyzer(a analyze.Analyzer) {
	r.analyzers[a.ID()] = a
}

// RegisterCheck adds a check for one rule. One check implementation may
// be registered under several rules.
func (r *Registry) RegisterCheck(rule check.RuleID, c check.Check) {
	r.checks[rule] = c
}

// Analyzer returns the analyzer registered under id.
func (r *Registry) Analyzer(id string) (analyze.Analyzer, bool) {
	a, ok := r.analyzers[id]
	return a, ok
}

// Check returns the check registered for rule.
func (r *Registry) Check(rule check.RuleID) (check.Check, bool) {
	c, ok := r.checks[rule]
	return c, ok
}

// DefaultRegistry wires up the built-in analyzers and checks.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterAnalyzer(analyze.DraftAnalyzer{})
	r.RegisterAnalyzer(analyze.ThicknessAnalyzer{})
	r.RegisterAnalyzer(analyze.UndercutAnalyzer{})
	r.RegisterCheck(check.MinDraftAngle, check.MinDraftAngleCheck{})
	r.RegisterCheck(check.MinWallThickness, check.MinThicknessCheck{})
	r.RegisterCheck(check.MaxWallThickness, check.MaxThicknessCheck{})
	r.RegisterCheck(check.NoUndercuts, check.UndercutCheck{})
	return r
}
