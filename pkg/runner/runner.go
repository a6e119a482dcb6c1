// Package runner orchestrates an analysis pass: it resolves a process's
// declared rules to checks, runs each required analyzer at most once per
// pass, and aggregates the findings. Configuration problems are logged
// and skipped; only an unknown process or material aborts a run.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/check"
	"github.com/rquillo/moldcheck/pkg/process"
	"github.com/rquillo/moldcheck/pkg/raycast"
)

// State tracks where a run is in its lifecycle, for diagnostics.
type State int

const (
	StateIdle State = iota
	StateResolving
	StateRunning
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateRunning:
		return "running"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Runner executes analysis passes. A runner owns its per-run analyzer
// cache and intersector exclusively; it is not safe for concurrent use.
// Concurrent analyses need one runner each.
type Runner struct {
	reg   *Registry
	procs *process.Registry
	log   *slog.Logger
	state State
	cache map[string]analyze.Results
}

// New returns a runner over the given analyzer/check registry and
// process registry. Diagnostics are discarded until SetLogger is called.
func New(reg *Registry, procs *process.Registry) *Runner {
	return &Runner{
		reg:   reg,
		procs: procs,
		log:   slog.New(nopHandler{}),
		state: StateIdle,
	}
}

// SetLogger routes the runner's diagnostic channel to l. Pass nil to
// silence it again.
func (r *Runner) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	r.log = l
}

// State returns the lifecycle state of the most recent run.
func (r *Runner) State() State {
	return r.state
}

// Run executes the process's declared rules against the shape using the
// material's parameters and returns the aggregated findings in rule
// order. An unknown process or material fails the run and returns nil;
// every other problem is scoped to a single rule, logged, and survived.
//
// Each analyzer executes at most once per run regardless of how many
// checks depend on it; later checks reuse the cached result map.
func (r *Runner) Run(shape *brep.Shape, processID, materialName string, cfg analyze.Config) []check.Finding {
	r.state = StateResolving

	proc, ok := r.procs.Get(processID)
	if !ok {
		r.log.Error("unknown process", "process", processID)
		r.state = StateFailed
		return nil
	}
	material, ok := proc.Material(materialName)
	if !ok {
		r.log.Error("unknown material", "process", processID, "material", materialName)
		r.state = StateFailed
		return nil
	}

	r.state = StateRunning
	r.cache = make(map[string]analyze.Results)
	ix := raycast.NewIntersector(shape)

	var findings []check.Finding
	for _, ruleStr := range proc.Rules {
		rule := check.RuleID(ruleStr)

		chk, ok := r.reg.Check(rule)
		if !ok {
			r.log.Warn("no check registered for rule, skipping", "rule", rule)
			continue
		}
		analyzerID := chk.RequiredAnalyzer()
		if analyzerID == "" {
			r.log.Warn("check declares no analyzer, skipping",
				"rule", rule, "check", chk.Name())
			continue
		}

		results, cached := r.cache[analyzerID]
		if !cached {
			an, ok := r.reg.Analyzer(analyzerID)
			if !ok {
				r.log.Warn("required analyzer not registered, skipping rule",
					"rule", rule, "analyzer", analyzerID)
				continue
			}
			res, err := an.Execute(shape, ix, cfg)
			if err != nil {
				r.log.Error("analyzer failed", "analyzer", analyzerID, "error", err)
				continue
			}
			r.cache[analyzerID] = res
			results = res
			r.log.Debug("analyzer executed", "analyzer", analyzerID)
		} else {
			r.log.Debug("analyzer cache hit", "analyzer", analyzerID)
		}

		ruleFindings, err := r.runCheck(chk, results, check.Params(material.Parameters), rule)
		if err != nil {
			r.log.Error("check failed", "rule", rule, "check", chk.Name(), "error", err)
			continue
		}
		findings = append(findings, ruleFindings...)
	}

	r.state = StateComplete
	r.log.Info("analysis complete",
		"process", processID, "material", materialName, "findings", len(findings))
	return findings
}

// runCheck executes one check, converting a panic into an error so a
// misbehaving check cannot abort the rest of the run.
func (r *Runner) runCheck(c check.Check, results analyze.Results, params check.Params, rule check.RuleID) (findings []check.Finding, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("check %s panicked: %v", c.Name(), p)
		}
	}()
	return c.Run(results, params, rule)
}

// nopHandler discards all log records. Enabled returns false so the
// caller skips formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
