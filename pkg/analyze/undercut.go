package analyze

import (
	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/raycast"
)

const (
	defaultUndercutSamples = 10
	// undercutMargin insets the sampling grid to avoid edge artifacts
	// where rays graze the seam with an adjacent face.
	undercutMargin = 0.05
	// undercutOffset pushes the ray origin off the surface.
	undercutOffset = 1e-3
)

// UndercutAnalyzer reports, per face, the fraction of sample points that
// are trapped: occluded by the shape along both the pull direction and
// its reverse, so no straight pull can expose them to either mold half.
// Only faces with a ratio above zero appear in the result map.
type UndercutAnalyzer struct{}

func (UndercutAnalyzer) ID() string   { return UndercutAnalyzerID }
func (UndercutAnalyzer) Name() string { return "Undercut Analyzer" }

func (a UndercutAnalyzer) Execute(shape *brep.Shape, ix *raycast.Intersector, cfg Config) (Results, error) {
	samples := cfg.SamplesOr(defaultUndercutSamples)

	out := UndercutResults{}
	for _, face := range shape.Faces() {
		if ratio := a.trappedRatio(face, ix, cfg, samples); ratio > 0 {
			out[face] = ratio
		}
	}
	return out, nil
}

// trappedRatio returns trapped/total over the face's sample grid.
// Samples with undefined normals are skipped entirely.
func (a UndercutAnalyzer) trappedRatio(face *brep.Face, ix *raycast.Intersector, cfg Config, samples int) float64 {
	pull := cfg.Pull()
	total := 0
	trapped := 0
	for _, s := range brep.SampleGrid(face, samples, undercutMargin) {
		normal, ok := brep.NormalAt(face, s.U, s.V)
		if !ok {
			continue
		}
		total++
		origin := brep.OffsetPoint(face, normal, s.U, s.V, undercutOffset)
		if len(ix.Cast(origin, pull, 1e-9)) == 0 {
			continue // exposed to the top mold half
		}
		if len(ix.Cast(origin, pull.Neg(), 1e-9)) == 0 {
			continue // exposed to the bottom mold half
		}
		trapped++
	}
	if total == 0 {
		return 0
	}
	return float64(trapped) / float64(total)
}
