package brep

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/rquillo/moldcheck/pkg/geom"
)

// Constructors for simple solids. These serve callers that have no CAD
// kernel attached (the CLI harness and the test suite); a host
// application supplies shapes translated from its own B-rep model.

// BoxFaces returns the six outward-oriented faces of an axis-aligned box
// with minimum corner at origin. Face names are prefixed with prefix.
func BoxFaces(prefix string, origin v3.Vec, dx, dy, dz float64) []*Face {
	ex := v3.Vec{X: 1}
	ey := v3.Vec{Y: 1}
	ez := v3.Vec{Z: 1}

	zFrame := geom.Frame{X: ex, Y: ey, Z: ez}
	xFrame := geom.Frame{X: ey, Y: ez, Z: ex}
	yFrame := geom.Frame{X: ez, Y: ex, Z: ey}

	top := NewFace(prefix+"top", NewPlane(), 0, dx, 0, dy).
		Placed(zFrame.At(origin.Add(v3.Vec{Z: dz})))
	bottom := NewFace(prefix+"bottom", NewPlane(), 0, dx, 0, dy).
		Placed(zFrame.At(origin)).Flipped()
	xPos := NewFace(prefix+"x+", NewPlane(), 0, dy, 0, dz).
		Placed(xFrame.At(origin.Add(v3.Vec{X: dx})))
	xNeg := NewFace(prefix+"x-", NewPlane(), 0, dy, 0, dz).
		Placed(xFrame.At(origin)).Flipped()
	yPos := NewFace(prefix+"y+", NewPlane(), 0, dz, 0, dx).
		Placed(yFrame.At(origin.Add(v3.Vec{Y: dy})))
	yNeg := NewFace(prefix+"y-", NewPlane(), 0, dz, 0, dx).
		Placed(yFrame.At(origin)).Flipped()

	return []*Face{top, bottom, xPos, xNeg, yPos, yNeg}
}

// NewBox returns a box solid with minimum corner at origin.
func NewBox(origin v3.Vec, dx, dy, dz float64) *Shape {
	return NewShape(BoxFaces("", origin, dx, dy, dz)...)
}

// NewSlab returns a flat plate of the given footprint and thickness with
// its minimum corner at the world origin.
func NewSlab(dx, dy, thickness float64) *Shape {
	return NewBox(v3.Vec{}, dx, dy, thickness)
}

// NewSolidCylinder returns an upright cylinder solid: a cylindrical wall
// capped by two disks, base centered at the world origin.
func NewSolidCylinder(radius, height float64) *Shape {
	wall := NewFace("wall", NewCylinder(radius), 0, 2*math.Pi, 0, height)
	top := NewFace("top", NewDisk(), 0, 2*math.Pi, 0, radius).
		Placed(geom.Translate(v3.Vec{Z: height})).Flipped()
	bottom := NewFace("bottom", NewDisk(), 0, 2*math.Pi, 0, radius)
	return NewShape(wall, top, bottom)
}

// NewFrustum returns a conical frustum solid with the given bottom and
// top radii, base centered at the world origin. With rTop > rBottom the
// wall is positively drafted for a +Z pull; with rTop < rBottom it is a
// reverse taper.
func NewFrustum(rBottom, rTop, height float64) *Shape {
	slope := (rTop - rBottom) / height
	wall := NewFace("wall", NewCone(rBottom, slope), 0, 2*math.Pi, 0, height)
	top := NewFace("top", NewDisk(), 0, 2*math.Pi, 0, rTop).
		Placed(geom.Translate(v3.Vec{Z: height})).Flipped()
	bottom := NewFace("bottom", NewDisk(), 0, 2*math.Pi, 0, rBottom)
	return NewShape(wall, top, bottom)
}

// NewTwoSlabs returns two parallel plates separated by a gap along Z.
// The inner faces see material both above and below along the Z axis,
// which makes this the canonical trapped-geometry fixture.
func NewTwoSlabs(dx, dy, thickness, gap float64) *Shape {
	lower := BoxFaces("lower/", v3.Vec{}, dx, dy, thickness)
	upper := BoxFaces("upper/", v3.Vec{Z: thickness + gap}, dx, dy, thickness)
	return NewShape(append(lower, upper...)...)
}
