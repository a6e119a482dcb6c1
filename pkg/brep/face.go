package brep

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/geom"
)

// Face is a bounded surface patch: a surface trimmed to a UV rectangle,
// positioned by a placement frame, with an orientation flag. When
// Reversed is set, the outward normal is the reverse of the surface's
// natural normal.
type Face struct {
	Name      string
	Surf      Surface
	Placement geom.Frame
	UMin      float64
	UMax      float64
	VMin      float64
	VMax      float64
	Reversed  bool
}

// NewFace builds a face over the given surface and UV rectangle with an
// identity placement.
func NewFace(name string, s Surface, uMin, uMax, vMin, vMax float64) *Face {
	return &Face{
		Name:      name,
		Surf:      s,
		Placement: geom.Identity(),
		UMin:      uMin,
		UMax:      uMax,
		VMin:      vMin,
		VMax:      vMax,
	}
}

// Placed returns a copy of the face with the given placement.
func (f *Face) Placed(p geom.Frame) *Face {
	g := *f
	g.Placement = p
	return &g
}

// Flipped returns a copy of the face with the orientation reversed.
func (f *Face) Flipped() *Face {
	g := *f
	g.Reversed = !g.Reversed
	return &g
}

// IsSame reports whether two face handles refer to the same underlying
// surface patch. This is the identity the analyzers key results on; two
// distinct handles may wrap the same patch.
func (f *Face) IsSame(other *Face) bool {
	if f == other {
		return true
	}
	return other != nil && f.Surf == other.Surf && f.Placement == other.Placement
}

// boundsValid reports whether the UV bounds describe a usable domain.
func (f *Face) boundsValid() bool {
	for _, b := range [...]float64{f.UMin, f.UMax, f.VMin, f.VMax} {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return false
		}
	}
	return f.UMax >= f.UMin && f.VMax >= f.VMin
}

// ContainsUV reports whether a surface-local (u, v) lies within the
// face's trim rectangle, allowing for a small tolerance and for u
// wrapping on periodic surfaces.
func (f *Face) ContainsUV(u, v float64, tol float64) bool {
	if v < f.VMin-tol || v > f.VMax+tol {
		return false
	}
	if f.Surf.PeriodicU() {
		u = f.UMin + math.Mod(u-f.UMin+4*math.Pi, 2*math.Pi)
	}
	return u >= f.UMin-tol && u <= f.UMax+tol
}

// BoundingBox returns a conservative axis-aligned world-space box around
// the face, computed from a coarse sample of the patch and padded.
func (f *Face) BoundingBox() (min, max v3.Vec) {
	const n = 9
	min = v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = min.Neg()
	if !f.boundsValid() {
		return min, max
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			u := f.UMin + (f.UMax-f.UMin)*float64(i)/float64(n-1)
			v := f.VMin + (f.VMax-f.VMin)*float64(j)/float64(n-1)
			p := f.Placement.Point(f.Surf.Eval(u, v))
			min = min.Min(p)
			max = max.Max(p)
		}
	}
	// Pad so curved patches stay inside despite the coarse sampling.
	diag := max.Sub(min).Length()
	pad := 0.05*diag + 1e-9
	padv := v3.Vec{X: pad, Y: pad, Z: pad}
	return min.Sub(padv), max.Add(padv)
}
