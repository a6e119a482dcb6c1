// Package check evaluates analyzer output against process rules and
// emits findings. Each check declares the analyzer it depends on; the
// orchestrator feeds it that analyzer's cached result map together with
// the material's parameter bag.
package check

import (
	"fmt"

	"github.com/rquillo/moldcheck/pkg/analyze"
	"github.com/rquillo/moldcheck/pkg/brep"
)

// Severity grades a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// RuleID identifies a DFM rule. Process definitions declare rules by
// these identifiers.
type RuleID string

const (
	MinDraftAngle    RuleID = "MIN_DRAFT_ANGLE"
	MinWallThickness RuleID = "MIN_WALL_THICKNESS"
	MaxWallThickness RuleID = "MAX_WALL_THICKNESS"
	NoUndercuts      RuleID = "NO_UNDERCUTS"
)

// Label returns the user-facing name of the rule.
func (id RuleID) Label() string {
	switch id {
	case MinDraftAngle:
		return "Minimum Draft Angle"
	case MinWallThickness:
		return "Minimum Wall Thickness"
	case MaxWallThickness:
		return "Maximum Wall Thickness"
	case NoUndercuts:
		return "Undercut"
	default:
		return string(id)
	}
}

// Finding is one rule violation. The engine treats findings as
// immutable; the Ignore flag exists for a presentation layer to toggle
// and is always created false.
type Finding struct {
	Rule     RuleID
	Severity Severity
	Message  string // may contain simple rich-text markup
	Overview string // short one-line summary for list views
	Faces    []*brep.Face
	Ignore   bool
}

// Params is a material's parameter bag.
type Params map[string]float64

// Require returns the named parameter or an error naming the rule that
// needed it. A missing required parameter is a hard failure for the one
// check that required it, not for the whole run.
func (p Params) Require(name string, rule RuleID) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("check: rule %s requires parameter %q", rule, name)
	}
	return v, nil
}

// Check is the contract every rule evaluator implements.
type Check interface {
	// Name is a human-readable name for diagnostics.
	Name() string
	// RequiredAnalyzer is the ID of the analyzer whose output this
	// check consumes.
	RequiredAnalyzer() string
	// Run evaluates the rule against the analyzer's result map.
	Run(results analyze.Results, params Params, rule RuleID) ([]Finding, error)
}
