// Package geom provides the placement and angle math shared by the
// analysis engine: orthonormal frames for positioning surface patches in
// space, and a few helpers on top of sdfx vectors.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Frame is an orthonormal placement: a rotated basis plus an origin.
// It maps surface-local coordinates into world coordinates. The basis
// vectors must be unit length and mutually orthogonal; constructors in
// this package guarantee that.
type Frame struct {
	X, Y, Z v3.Vec // basis vectors
	O       v3.Vec // origin
}

// Identity returns the identity frame.
func Identity() Frame {
	return Frame{
		X: v3.Vec{X: 1},
		Y: v3.Vec{Y: 1},
		Z: v3.Vec{Z: 1},
	}
}

// Translate returns the identity frame with its origin moved to o.
func Translate(o v3.Vec) Frame {
	f := Identity()
	f.O = o
	return f
}

// At returns a copy of the frame with its origin moved to o.
func (f Frame) At(o v3.Vec) Frame {
	f.O = o
	return f
}

// RotateX returns a frame rotated by deg degrees around the world X axis.
func RotateX(deg float64) Frame {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Frame{
		X: v3.Vec{X: 1},
		Y: v3.Vec{Y: c, Z: s},
		Z: v3.Vec{Y: -s, Z: c},
	}
}

// RotateY returns a frame rotated by deg degrees around the world Y axis.
func RotateY(deg float64) Frame {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Frame{
		X: v3.Vec{X: c, Z: -s},
		Y: v3.Vec{Y: 1},
		Z: v3.Vec{X: s, Z: c},
	}
}

// RotateZ returns a frame rotated by deg degrees around the world Z axis.
func RotateZ(deg float64) Frame {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Frame{
		X: v3.Vec{X: c, Y: s},
		Y: v3.Vec{X: -s, Y: c},
		Z: v3.Vec{Z: 1},
	}
}

// Basis builds a frame whose local Z axis is the given direction. The
// remaining axes are chosen deterministically from the least-aligned
// world axis. zAxis need not be unit length but must be non-zero.
func Basis(origin, zAxis v3.Vec) Frame {
	z := zAxis.Normalize()
	ref := v3.Vec{X: 1}
	if math.Abs(z.X) > math.Abs(z.Y) {
		ref = v3.Vec{Y: 1}
	}
	x := ref.Cross(z).Normalize()
	y := z.Cross(x)
	return Frame{X: x, Y: y, Z: z, O: origin}
}

// Point maps a local point into world coordinates.
func (f Frame) Point(p v3.Vec) v3.Vec {
	return f.O.
		Add(f.X.MulScalar(p.X)).
		Add(f.Y.MulScalar(p.Y)).
		Add(f.Z.MulScalar(p.Z))
}

// Dir maps a local direction into world coordinates (origin ignored).
func (f Frame) Dir(d v3.Vec) v3.Vec {
	return f.X.MulScalar(d.X).
		Add(f.Y.MulScalar(d.Y)).
		Add(f.Z.MulScalar(d.Z))
}

// InvPoint maps a world point into local coordinates.
func (f Frame) InvPoint(p v3.Vec) v3.Vec {
	r := p.Sub(f.O)
	return v3.Vec{X: r.Dot(f.X), Y: r.Dot(f.Y), Z: r.Dot(f.Z)}
}

// InvDir maps a world direction into local coordinates.
func (f Frame) InvDir(d v3.Vec) v3.Vec {
	return v3.Vec{X: d.Dot(f.X), Y: d.Dot(f.Y), Z: d.Dot(f.Z)}
}

// Compose returns the frame equivalent to applying g first, then f.
func (f Frame) Compose(g Frame) Frame {
	return Frame{
		X: f.Dir(g.X),
		Y: f.Dir(g.Y),
		Z: f.Dir(g.Z),
		O: f.Point(g.O),
	}
}

// AngleBetween returns the angle between two vectors in degrees,
// in the range [0, 180].
func AngleBetween(a, b v3.Vec) float64 {
	la, lb := a.Length(), b.Length()
	if la == 0 || lb == 0 {
		return math.NaN()
	}
	cos := a.Dot(b) / (la * lb)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// IsUnit reports whether v is unit length within tol.
func IsUnit(v v3.Vec, tol float64) bool {
	return math.Abs(v.Length()-1) <= tol
}
