// Package brep defines the boundary-representation model the analysis
// engine runs against: parametric surfaces, trimmed oriented faces, and
// shapes, plus the UV query utilities the analyzers are built on.
package brep

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// SurfaceHit is a single intersection between a ray and an untrimmed
// surface, in surface-local coordinates.
type SurfaceHit struct {
	T    float64 // ray parameter; equals distance for unit directions
	U, V float64 // surface parameters at the intersection
}

// Surface is a parametric surface in its own local coordinate system.
// Implementations are immutable; a Face positions a surface in space and
// trims it to a UV rectangle.
type Surface interface {
	// Eval returns the 3D point at (u, v).
	Eval(u, v float64) v3.Vec
	// Partials returns the first-order partial derivatives at (u, v).
	// Their cross product is the (unnormalized) surface normal; it may
	// be zero at parameterization singularities.
	Partials(u, v float64) (du, dv v3.Vec)
	// Planar reports whether the surface is a plane.
	Planar() bool
	// PeriodicU reports whether the u parameter is an angle that wraps
	// with period 2*pi.
	PeriodicU() bool
	// IntersectRay returns every intersection of the given local-space
	// ray with the untrimmed surface. Hits are unordered; hits behind
	// the origin (t < 0) are not returned.
	IntersectRay(origin, dir v3.Vec) []SurfaceHit
}

// ---------------------------------------------------------------------------
// Plane
// ---------------------------------------------------------------------------

// Plane is the z=0 plane, parameterized by u along local X and v along
// local Y. Its natural normal is local +Z.
type Plane struct{}

// NewPlane returns a plane surface.
func NewPlane() *Plane { return &Plane{} }

func (*Plane) Eval(u, v float64) v3.Vec { return v3.Vec{X: u, Y: v} }

func (*Plane) Partials(u, v float64) (v3.Vec, v3.Vec) {
	return v3.Vec{X: 1}, v3.Vec{Y: 1}
}

func (*Plane) Planar() bool    { return true }
func (*Plane) PeriodicU() bool { return false }

func (*Plane) IntersectRay(origin, dir v3.Vec) []SurfaceHit {
	if math.Abs(dir.Z) < parallelEps {
		return nil
	}
	t := -origin.Z / dir.Z
	if t < 0 {
		return nil
	}
	return []SurfaceHit{{T: t, U: origin.X + t*dir.X, V: origin.Y + t*dir.Y}}
}

// ---------------------------------------------------------------------------
// Disk
// ---------------------------------------------------------------------------

// Disk is an annular patch of the z=0 plane in polar parameterization:
// u is the angle, v the radius. The center (v=0) is a parameterization
// singularity where the normal is undefined. Its natural normal is
// local -Z (the polar partials cross product points down).
type Disk struct{}

// NewDisk returns a disk surface.
func NewDisk() *Disk { return &Disk{} }

func (*Disk) Eval(u, v float64) v3.Vec {
	s, c := math.Sincos(u)
	return v3.Vec{X: v * c, Y: v * s}
}

func (*Disk) Partials(u, v float64) (v3.Vec, v3.Vec) {
	s, c := math.Sincos(u)
	du := v3.Vec{X: -v * s, Y: v * c}
	dv := v3.Vec{X: c, Y: s}
	return du, dv
}

func (*Disk) Planar() bool    { return true }
func (*Disk) PeriodicU() bool { return true }

func (*Disk) IntersectRay(origin, dir v3.Vec) []SurfaceHit {
	if math.Abs(dir.Z) < parallelEps {
		return nil
	}
	t := -origin.Z / dir.Z
	if t < 0 {
		return nil
	}
	x := origin.X + t*dir.X
	y := origin.Y + t*dir.Y
	return []SurfaceHit{{T: t, U: wrapAngle(math.Atan2(y, x)), V: math.Hypot(x, y)}}
}

// ---------------------------------------------------------------------------
// Cylinder
// ---------------------------------------------------------------------------

// Cylinder is a right circular cylinder around the local Z axis.
// u is the angle, v the height. Its natural normal points radially out.
type Cylinder struct {
	Radius float64
}

// NewCylinder returns a cylinder surface with the given radius.
func NewCylinder(radius float64) *Cylinder { return &Cylinder{Radius: radius} }

func (c *Cylinder) Eval(u, v float64) v3.Vec {
	s, cs := math.Sincos(u)
	return v3.Vec{X: c.Radius * cs, Y: c.Radius * s, Z: v}
}

func (c *Cylinder) Partials(u, v float64) (v3.Vec, v3.Vec) {
	s, cs := math.Sincos(u)
	du := v3.Vec{X: -c.Radius * s, Y: c.Radius * cs}
	dv := v3.Vec{Z: 1}
	return du, dv
}

func (*Cylinder) Planar() bool    { return false }
func (*Cylinder) PeriodicU() bool { return true }

func (c *Cylinder) IntersectRay(origin, dir v3.Vec) []SurfaceHit {
	a := dir.X*dir.X + dir.Y*dir.Y
	b := 2 * (origin.X*dir.X + origin.Y*dir.Y)
	cc := origin.X*origin.X + origin.Y*origin.Y - c.Radius*c.Radius
	var hits []SurfaceHit
	for _, t := range solveQuadratic(a, b, cc) {
		if t < 0 {
			continue
		}
		x := origin.X + t*dir.X
		y := origin.Y + t*dir.Y
		z := origin.Z + t*dir.Z
		hits = append(hits, SurfaceHit{T: t, U: wrapAngle(math.Atan2(y, x)), V: z})
	}
	return hits
}

// ---------------------------------------------------------------------------
// Cone
// ---------------------------------------------------------------------------

// Cone is a conical wall around the local Z axis whose radius varies
// linearly with height: r(v) = Radius + v*Slope. u is the angle, v the
// height. The apex (r = 0) is a normal singularity.
type Cone struct {
	Radius float64 // radius at v = 0
	Slope  float64 // tangent of the half angle; dr/dv
}

// NewCone returns a cone surface with radius at v=0 and the given slope.
func NewCone(radius, slope float64) *Cone { return &Cone{Radius: radius, Slope: slope} }

func (c *Cone) radius(v float64) float64 { return c.Radius + v*c.Slope }

func (c *Cone) Eval(u, v float64) v3.Vec {
	s, cs := math.Sincos(u)
	r := c.radius(v)
	return v3.Vec{X: r * cs, Y: r * s, Z: v}
}

func (c *Cone) Partials(u, v float64) (v3.Vec, v3.Vec) {
	s, cs := math.Sincos(u)
	r := c.radius(v)
	du := v3.Vec{X: -r * s, Y: r * cs}
	dv := v3.Vec{X: c.Slope * cs, Y: c.Slope * s, Z: 1}
	return du, dv
}

func (*Cone) Planar() bool    { return false }
func (*Cone) PeriodicU() bool { return true }

func (c *Cone) IntersectRay(origin, dir v3.Vec) []SurfaceHit {
	// x^2 + y^2 = (Radius + Slope*z)^2, with z linear in t.
	w0 := c.Radius + c.Slope*origin.Z
	w1 := c.Slope * dir.Z
	a := dir.X*dir.X + dir.Y*dir.Y - w1*w1
	b := 2 * (origin.X*dir.X + origin.Y*dir.Y - w0*w1)
	cc := origin.X*origin.X + origin.Y*origin.Y - w0*w0
	var hits []SurfaceHit
	for _, t := range solveQuadratic(a, b, cc) {
		if t < 0 {
			continue
		}
		z := origin.Z + t*dir.Z
		if c.radius(z) < 0 {
			// Mirror cone on the far side of the apex.
			continue
		}
		x := origin.X + t*dir.X
		y := origin.Y + t*dir.Y
		hits = append(hits, SurfaceHit{T: t, U: wrapAngle(math.Atan2(y, x)), V: z})
	}
	return hits
}

// ---------------------------------------------------------------------------
// Sphere
// ---------------------------------------------------------------------------

// Sphere is a sphere centered at the local origin. u is the azimuth,
// v the latitude in [-pi/2, pi/2]. The poles (v = ±pi/2) are
// parameterization singularities where the normal is undefined.
type Sphere struct {
	Radius float64
}

// NewSphere returns a sphere surface with the given radius.
func NewSphere(radius float64) *Sphere { return &Sphere{Radius: radius} }

func (s *Sphere) Eval(u, v float64) v3.Vec {
	su, cu := math.Sincos(u)
	sv, cv := math.Sincos(v)
	return v3.Vec{X: s.Radius * cv * cu, Y: s.Radius * cv * su, Z: s.Radius * sv}
}

func (s *Sphere) Partials(u, v float64) (v3.Vec, v3.Vec) {
	su, cu := math.Sincos(u)
	sv, cv := math.Sincos(v)
	du := v3.Vec{X: -s.Radius * cv * su, Y: s.Radius * cv * cu}
	dv := v3.Vec{X: -s.Radius * sv * cu, Y: -s.Radius * sv * su, Z: s.Radius * cv}
	return du, dv
}

func (*Sphere) Planar() bool    { return false }
func (*Sphere) PeriodicU() bool { return true }

func (s *Sphere) IntersectRay(origin, dir v3.Vec) []SurfaceHit {
	a := dir.Length2()
	b := 2 * origin.Dot(dir)
	c := origin.Length2() - s.Radius*s.Radius
	var hits []SurfaceHit
	for _, t := range solveQuadratic(a, b, c) {
		if t < 0 {
			continue
		}
		p := origin.Add(dir.MulScalar(t))
		u := wrapAngle(math.Atan2(p.Y, p.X))
		v := math.Asin(math.Max(-1, math.Min(1, p.Z/s.Radius)))
		hits = append(hits, SurfaceHit{T: t, U: u, V: v})
	}
	return hits
}

// ---------------------------------------------------------------------------
// Shared numerics
// ---------------------------------------------------------------------------

const parallelEps = 1e-12

// solveQuadratic returns the real roots of a*t^2 + b*t + c = 0.
// Degenerates to the linear case when a is (near) zero.
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < parallelEps {
		if math.Abs(b) < parallelEps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
}

// wrapAngle maps an angle into [0, 2*pi).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
