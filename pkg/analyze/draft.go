package analyze

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/geom"
	"github.com/rquillo/moldcheck/pkg/raycast"
)

const (
	defaultDraftSamples = 20
	// draftSnapTol is the angular tolerance (degrees) for snapping
	// exactly pull-aligned normals to ±90°.
	draftSnapTol = 1e-5
	// classifyOffset pushes the classification ray origin off the face.
	classifyOffset = 1e-3
	// classifyMaxHits is the hit-count ceiling for calling a face
	// core-side; anything busier is conservatively treated as cavity.
	classifyMaxHits = 3
)

type moldSide int

const (
	sideCavity moldSide = iota
	sideCore
)

// DraftAnalyzer reports the minimum draft angle per face relative to a
// pull direction.
//
// The draft of a sample is angle(normal, pull) - 90°, so a vertical wall
// measures 0 and a reverse taper is negative. A normal exactly parallel
// to the pull maps to +90 and exactly antiparallel to -90: those faces
// are aligned with the draw, not vertical, and the checks rely on this
// convention.
type DraftAnalyzer struct{}

func (DraftAnalyzer) ID() string   { return DraftAnalyzerID }
func (DraftAnalyzer) Name() string { return "Draft Analyzer" }

// Execute computes per-face minimum draft. Planar faces are sampled once
// at the UV center, which is exact for planes; other faces over a grid.
// With mold-side classification enabled, core-side faces have their
// draft sign inverted (core geometry demolds in the opposite sense).
func (a DraftAnalyzer) Execute(shape *brep.Shape, ix *raycast.Intersector, cfg Config) (Results, error) {
	pull := cfg.Pull()
	if !geom.IsUnit(pull, 1e-6) {
		return nil, fmt.Errorf("draft analyzer: pull direction %v is not unit length", pull)
	}
	samples := cfg.SamplesOr(defaultDraftSamples)

	out := DraftResults{}
	for _, face := range shape.Faces() {
		draft, ok := a.draftForFace(face, pull, samples)
		if !ok {
			continue
		}
		if cfg.ClassifyMoldSides && a.classify(face, ix, pull) == sideCore {
			draft = -draft
		}
		out[face] = draft
	}
	return out, nil
}

// draftForFace returns the minimum draft over the face, or ok=false when
// no sample on the face has a defined normal.
func (a DraftAnalyzer) draftForFace(face *brep.Face, pull v3.Vec, samples int) (float64, bool) {
	if face.Surf.Planar() {
		u, v, err := brep.UVCenter(face)
		if err != nil {
			return 0, false
		}
		n, ok := brep.NormalAt(face, u, v)
		if !ok {
			return 0, false
		}
		return draftOf(n, pull), true
	}

	min := math.Inf(1)
	found := false
	for _, s := range brep.SampleGrid(face, samples, 0) {
		n, ok := brep.NormalAt(face, s.U, s.V)
		if !ok {
			continue // undefined normal: no sample, not zero draft
		}
		if d := draftOf(n, pull); d < min {
			min = d
		}
		found = true
	}
	return min, found
}

// draftOf converts a normal/pull angle into a signed draft in degrees.
func draftOf(normal, pull v3.Vec) float64 {
	angle := geom.AngleBetween(pull, normal)
	switch {
	case angle <= draftSnapTol:
		return 90
	case 180-angle <= draftSnapTol:
		return -90
	default:
		return angle - 90
	}
}

// classify decides which mold half forms a face by counting occlusions
// along the pull axis from a point just off the surface. A face is
// core-side when the up direction is no more occluded than the down
// direction and the down count stays small; ties and busy rays are
// conservatively cavity. This is a heuristic, not a proof.
func (a DraftAnalyzer) classify(face *brep.Face, ix *raycast.Intersector, pull v3.Vec) moldSide {
	u, v, err := brep.UVCenter(face)
	if err != nil {
		return sideCavity
	}
	n, ok := brep.NormalAt(face, u, v)
	if !ok {
		return sideCavity
	}
	origin := brep.OffsetPoint(face, n, u, v, classifyOffset)
	up := len(ix.Cast(origin, pull, 1e-6))
	down := len(ix.Cast(origin, pull.Neg(), 1e-6))
	if up <= down && down <= classifyMaxHits {
		return sideCore
	}
	return sideCavity
}
