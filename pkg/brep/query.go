package brep

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// degenerateNormalEps is the squared-length floor below which a partials
// cross product is treated as an undefined normal.
const degenerateNormalEps = 1e-18

// UV is a single parameter-space sample location.
type UV struct {
	U, V float64
}

// UVCenter returns the midpoint of the face's UV bounds. It fails when
// the bounds are degenerate; callers must treat that as "no value", not
// as a zero sample.
func UVCenter(f *Face) (u, v float64, err error) {
	if !f.boundsValid() {
		return 0, 0, fmt.Errorf("brep: face %q has degenerate UV bounds", f.Name)
	}
	return (f.UMin + f.UMax) / 2, (f.VMin + f.VMax) / 2, nil
}

// PointAt returns the world-space point at (u, v).
func PointAt(f *Face, u, v float64) v3.Vec {
	return f.Placement.Point(f.Surf.Eval(u, v))
}

// NormalAt returns the unit outward normal at (u, v): the normalized
// cross product of the first partials, mapped through the placement and
// reversed when the face orientation is reversed. ok is false when the
// differential is undefined at that parameter (pole singularities,
// degenerate patches); such samples must be skipped, never treated as
// zero draft.
func NormalAt(f *Face, u, v float64) (n v3.Vec, ok bool) {
	du, dv := f.Surf.Partials(u, v)
	c := du.Cross(dv)
	l2 := c.Length2()
	if math.IsNaN(l2) || l2 < degenerateNormalEps {
		return v3.Vec{}, false
	}
	n = f.Placement.Dir(c.Normalize())
	if f.Reversed {
		n = n.Neg()
	}
	return n, true
}

// OffsetPoint returns the point at (u, v) displaced by eps along the
// given normal. Used to push ray origins off the source face so the ray
// does not immediately re-hit it.
func OffsetPoint(f *Face, normal v3.Vec, u, v, eps float64) v3.Vec {
	return PointAt(f, u, v).Add(normal.MulScalar(eps))
}

// SampleGrid returns an n x n grid of UV samples spanning the face's
// domain, inset by the margin fraction on each side. A margin keeps
// samples away from edges and corners where rays graze adjacent faces.
// For n <= 1, or a face with degenerate bounds, it yields exactly the
// domain center. The result is a pure function of its inputs.
func SampleGrid(f *Face, n int, margin float64) []UV {
	uc, vc, err := UVCenter(f)
	if err != nil {
		return nil
	}
	if n <= 1 {
		return []UV{{U: uc, V: vc}}
	}
	uMin := f.UMin + (f.UMax-f.UMin)*margin
	uMax := f.UMax - (f.UMax-f.UMin)*margin
	vMin := f.VMin + (f.VMax-f.VMin)*margin
	vMax := f.VMax - (f.VMax-f.VMin)*margin
	grid := make([]UV, 0, n*n)
	for i := 0; i < n; i++ {
		u := uMin + (uMax-uMin)*float64(i)/float64(n-1)
		for j := 0; j < n; j++ {
			v := vMin + (vMax-vMin)*float64(j)/float64(n-1)
			grid = append(grid, UV{U: u, V: v})
		}
	}
	return grid
}
