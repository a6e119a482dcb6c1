package analyze

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/brep"
	"github.com/rquillo/moldcheck/pkg/geom"
	"github.com/rquillo/moldcheck/pkg/raycast"
)

func thicknessResults(t *testing.T, shape *brep.Shape, cfg Config) ThicknessResults {
	t.Helper()
	ix := raycast.NewIntersector(shape)
	res, err := ThicknessAnalyzer{}.Execute(shape, ix, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return res.(ThicknessResults)
}

func TestThicknessSlab(t *testing.T) {
	slab := brep.NewSlab(40, 40, 2)
	res := thicknessResults(t, slab, Config{Samples: 5})

	top := faceByName(t, slab, "top")
	samples, ok := res[top]
	if !ok || len(samples) == 0 {
		t.Fatal("top face has no thickness samples")
	}
	for _, s := range samples {
		if math.Abs(s-2) > 1e-6 {
			t.Errorf("top thickness sample = %v, want 2", s)
		}
	}

	// Side walls see the opposite side wall across the full footprint.
	side := faceByName(t, slab, "x+")
	samples, ok = res[side]
	if !ok || len(samples) == 0 {
		t.Fatal("x+ face has no thickness samples")
	}
	for _, s := range samples {
		if math.Abs(s-40) > 1e-6 {
			t.Errorf("x+ thickness sample = %v, want 40", s)
		}
	}
}

func TestThicknessCylinderWall(t *testing.T) {
	// Rays from the wall pass through the axis and exit the far wall,
	// measuring the diameter.
	cyl := brep.NewSolidCylinder(10, 20)
	res := thicknessResults(t, cyl, Config{Samples: 5})

	samples, ok := res[faceByName(t, cyl, "wall")]
	if !ok || len(samples) == 0 {
		t.Fatal("wall has no thickness samples")
	}
	for _, s := range samples {
		if math.Abs(s-20) > 1e-6 {
			t.Errorf("wall thickness sample = %v, want 20", s)
		}
	}
}

func TestThicknessSingleFaceHasNoWall(t *testing.T) {
	// One lone panel: inward rays escape without a hit, so every sample
	// is infinite and the face is omitted entirely.
	panel := brep.NewShape(brep.NewFace("panel", brep.NewPlane(), 0, 10, 0, 10))
	res := thicknessResults(t, panel, Config{Samples: 3})
	if len(res) != 0 {
		t.Errorf("lone panel produced %d results", len(res))
	}
}

func TestThicknessIgnoresNonOpposingHits(t *testing.T) {
	// Two panels both facing +Z: the inward ray from the upper panel hits
	// the back side of the lower one, whose outward normal points the
	// same way. That is not an opposing wall and must not be measured.
	upper := brep.NewFace("upper", brep.NewPlane(), 0, 10, 0, 10).
		Placed(geom.Translate(v3.Vec{Z: 10}))
	lower := brep.NewFace("lower", brep.NewPlane(), 0, 10, 0, 10)
	res := thicknessResults(t, brep.NewShape(upper, lower), Config{Samples: 3})
	if samples, ok := res[upper]; ok {
		t.Errorf("upper panel reported thickness %v against a same-facing panel", samples)
	}
}

func TestOpposing(t *testing.T) {
	tests := []struct {
		name     string
		a, b     v3.Vec
		opposing bool
	}{
		{"head on", v3.Vec{Z: 1}, v3.Vec{Z: -1}, true},
		{"170 degrees", v3.Vec{Z: 1}, v3.Vec{X: math.Sin(170 * math.Pi / 180), Z: math.Cos(170 * math.Pi / 180)}, true},
		{"perpendicular", v3.Vec{Z: 1}, v3.Vec{X: 1}, false},
		{"100 degrees", v3.Vec{Z: 1}, v3.Vec{X: math.Sin(100 * math.Pi / 180), Z: math.Cos(100 * math.Pi / 180)}, false},
		{"same direction", v3.Vec{Z: 1}, v3.Vec{Z: 1}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Opposing(tc.a, tc.b); got != tc.opposing {
				t.Errorf("Opposing = %v, want %v", got, tc.opposing)
			}
		})
	}
}

func TestThicknessEmptyShape(t *testing.T) {
	res := thicknessResults(t, brep.NewShape(), Config{})
	if len(res) != 0 {
		t.Errorf("empty shape produced %d results", len(res))
	}
}
