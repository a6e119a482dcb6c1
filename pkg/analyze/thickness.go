package analyze

import (
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/raycast"
)

const (
	defaultThicknessSamples = 10
	// thicknessRayOffset pushes the inward ray origin under the surface
	// so the source face cannot report itself as the nearest wall.
	thicknessRayOffset = 1e-4
	// opposingDotMax accepts a hit only when the origin and hit normals
	// are within ~60° of perfectly opposing (dot = -1). Rays grazing an
	// adjacent, non-opposing wall at a corner report near-zero distance;
	// those are not walls.
	opposingDotMax = -0.5
)

// ThicknessAnalyzer measures wall thickness per face by casting rays
// from surface samples into the material and taking the nearest
// opposing-wall hit. Samples that find no opposing wall mean infinite
// thickness and are omitted; per-face output is the list of finite
// samples, from which checks derive min and max.
type ThicknessAnalyzer struct{}

func (ThicknessAnalyzer) ID() string   { return ThicknessAnalyzerID }
func (ThicknessAnalyzer) Name() string { return "Ray Thickness Analyzer" }

func (a ThicknessAnalyzer) Execute(shape *brep.Shape, ix *raycast.Intersector, cfg Config) (Results, error) {
	samples := cfg.SamplesOr(defaultThicknessSamples)

	out := ThicknessResults{}
	for _, face := range shape.Faces() {
		if t := a.thicknessForFace(face, ix, samples); len(t) > 0 {
			out[face] = t
		}
	}
	return out, nil
}

func (a ThicknessAnalyzer) thicknessForFace(face *brep.Face, ix *raycast.Intersector, samples int) []float64 {
	var out []float64
	for _, s := range brep.SampleGrid(face, samples, 0) {
		if t, ok := a.thicknessAt(face, ix, s.U, s.V); ok {
			out = append(out, t)
		}
	}
	return out
}

// thicknessAt casts one inward ray from (u, v) and returns the distance
// to the nearest opposing wall, or ok=false when the normal is undefined
// or no acceptable wall is found.
func (a ThicknessAnalyzer) thicknessAt(face *brep.Face, ix *raycast.Intersector, u, v float64) (float64, bool) {
	outward, ok := brep.NormalAt(face, u, v)
	if !ok {
		return 0, false
	}
	inward := outward.Neg()
	origin := brep.OffsetPoint(face, inward, u, v, thicknessRayOffset)

	hits := ix.Cast(origin, inward, 1e-9)
	if len(hits) == 0 {
		return 0, false // no wall: infinite thickness, nothing to report
	}
	nearest := hits[0]
	hitNormal, ok := brep.NormalAt(nearest.Face, nearest.U, nearest.V)
	if !ok {
		return 0, false
	}
	if !Opposing(outward, hitNormal) {
		// Grazing an adjacent wall at an acute corner, not a real wall.
		return 0, false
	}
	return thicknessRayOffset + nearest.T, true
}

// Opposing reports whether two outward unit normals face each other
// closely enough for the surfaces between them to count as a wall.
func Opposing(origin, hit v3.Vec) bool {
	return origin.Dot(hit) < opposingDotMax
}
