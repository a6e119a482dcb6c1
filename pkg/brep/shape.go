package brep

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Shape is an opaque solid boundary representation: a collection of
// outward-oriented faces. The analysis engine never mutates a shape; it
// only queries faces and casts rays against the whole boundary.
type Shape struct {
	faces []*Face
}

// NewShape builds a shape from the given faces.
func NewShape(faces ...*Face) *Shape {
	return &Shape{faces: faces}
}

// Faces returns the face list. Callers must not modify it.
func (s *Shape) Faces() []*Face {
	return s.faces
}

// NumFaces returns the number of faces.
func (s *Shape) NumFaces() int {
	return len(s.faces)
}

// BoundingBox returns the axis-aligned world bounding box of the shape.
func (s *Shape) BoundingBox() (min, max v3.Vec) {
	first := true
	for _, f := range s.faces {
		fmin, fmax := f.BoundingBox()
		if fmin.X > fmax.X {
			continue // face with degenerate bounds
		}
		if first {
			min, max = fmin, fmax
			first = false
			continue
		}
		min = min.Min(fmin)
		max = max.Max(fmax)
	}
	return min, max
}
