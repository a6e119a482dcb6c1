// Package analyze implements the geometric analyzers: per-face draft
// angle, wall thickness, and undercut ratio. Each analyzer is stateless
// per invocation; it consumes a shape plus a typed configuration and
// produces a per-face result map. Faces whose geometry queries fail are
// excluded from the map, never defaulted to sentinel values.
package analyze

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/raycast"
)

// Analyzer identifiers. Checks declare their dependency by ID and the
// orchestrator caches one execution per ID per run.
const (
	DraftAnalyzerID     = "DRAFT_ANALYZER"
	ThicknessAnalyzerID = "RAY_THICKNESS_ANALYZER"
	UndercutAnalyzerID  = "UNDERCUT_ANALYZER"
)

// Results is the per-face output of one analyzer run. The concrete type
// depends on the analyzer: DraftResults, ThicknessResults, or
// UndercutResults. Checks type-assert the map they were built for.
type Results any

// DraftResults maps each face to its minimum draft angle in degrees.
type DraftResults map[*brep.Face]float64

// ThicknessResults maps each face to its finite wall thickness samples
// in mm. Faces with no measurable wall carry no entry.
type ThicknessResults map[*brep.Face][]float64

// UndercutResults maps each face to its trapped-point ratio in (0, 1].
type UndercutResults map[*brep.Face]float64

// Config carries the per-run analysis parameters. The zero value selects
// a +Z pull direction and per-analyzer default sample counts.
type Config struct {
	// PullDirection is the unit mold-opening direction. The zero vector
	// means +Z. The draft analyzer rejects non-unit values.
	PullDirection v3.Vec
	// Samples is the per-axis grid resolution; 0 selects the analyzer's
	// default.
	Samples int
	// ClassifyMoldSides makes the draft analyzer classify faces as
	// core- or cavity-side and invert the draft sign on core faces.
	ClassifyMoldSides bool
}

// Pull returns the configured pull direction, defaulting to +Z.
func (c Config) Pull() v3.Vec {
	if c.PullDirection == (v3.Vec{}) {
		return v3.Vec{Z: 1}
	}
	return c.PullDirection
}

// SamplesOr returns the configured sample count, or def when unset.
func (c Config) SamplesOr(def int) int {
	if c.Samples <= 0 {
		return def
	}
	return c.Samples
}

// Analyzer is the contract every analyzer implements. Execute must not
// retain state between invocations and must not mutate the shape. The
// intersector is built once per orchestrator run and shared across the
// run's analyzers.
type Analyzer interface {
	// ID is the identifier checks use to declare their dependency.
	ID() string
	// Name is a human-readable name for diagnostics.
	Name() string
	// Execute runs the analysis and returns the per-face result map.
	Execute(shape *brep.Shape, ix *raycast.Intersector, cfg Config) (Results, error)
}
