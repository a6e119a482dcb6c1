// Package raycast casts rays against a whole shape. An Intersector
// wraps an R-tree over face bounding boxes, built once per analysis run;
// rebuilding it per ray would be correct but ruinously slow.
package raycast

import (
	"math"
	"sort"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"

	"github.com/rquillo/moldcheck/pkg/brep"
)

// uvTrimTol is the parameter-space slack when trimming surface hits to a
// face's UV rectangle.
const uvTrimTol = 1e-9

// Hit is a single ray/shape intersection.
type Hit struct {
	T     float64 // distance from the ray origin
	Point v3.Vec  // world-space intersection point
	Face  *brep.Face
	U, V  float64 // surface parameters on the hit face
}

// faceEntry adapts a face to the rtreego Spatial interface.
type faceEntry struct {
	face *brep.Face
	rect rtreego.Rect
}

func (e *faceEntry) Bounds() rtreego.Rect { return e.rect }

// Intersector casts rays against one shape. It is exclusively owned by a
// single analysis run and is not safe for concurrent use.
type Intersector struct {
	shape    *Shape
	tree     *rtreego.Rtree
	min, max v3.Vec
}

// Shape aliases the brep shape type for the package's public surface.
type Shape = brep.Shape

// NewIntersector builds the spatial index for a shape. Faces with
// degenerate bounds are excluded; they can never report a hit.
func NewIntersector(shape *Shape) *Intersector {
	ix := &Intersector{
		shape: shape,
		tree:  rtreego.NewTree(3, 4, 8),
	}
	ix.min, ix.max = shape.BoundingBox()
	for _, f := range shape.Faces() {
		fmin, fmax := f.BoundingBox()
		if fmin.X > fmax.X {
			continue
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{fmin.X, fmin.Y, fmin.Z},
			[]float64{
				math.Max(fmax.X-fmin.X, 1e-9),
				math.Max(fmax.Y-fmin.Y, 1e-9),
				math.Max(fmax.Z-fmin.Z, 1e-9),
			},
		)
		if err != nil {
			continue
		}
		ix.tree.Insert(&faceEntry{face: f, rect: rect})
	}
	return ix
}

// Cast fires a ray from origin along dir and returns every intersection
// with the shape boundary in ascending distance order. Hits closer than
// tol are discarded, which keeps a ray pushed off its source face from
// reporting the source face itself. A ray that hits nothing returns an
// empty list; that is a result, not an error.
func (ix *Intersector) Cast(origin, dir v3.Vec, tol float64) []Hit {
	if dir.Length2() == 0 {
		return nil
	}
	dir = dir.Normalize()

	t0, t1, ok := ix.clipToBounds(origin, dir)
	if !ok {
		return nil
	}

	var hits []Hit
	for _, cand := range ix.tree.SearchIntersect(segmentRect(origin, dir, t0, t1)) {
		f := cand.(*faceEntry).face
		hits = append(hits, castFace(f, origin, dir, tol)...)
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].T < hits[j].T })
	return hits
}

// castFace intersects a world-space ray with one face, trimming surface
// hits to the face's UV rectangle.
func castFace(f *brep.Face, origin, dir v3.Vec, tol float64) []Hit {
	lo := f.Placement.InvPoint(origin)
	ld := f.Placement.InvDir(dir)

	var hits []Hit
	for _, sh := range f.Surf.IntersectRay(lo, ld) {
		if sh.T <= tol {
			continue
		}
		if !faceContains(f, sh.U, sh.V) {
			continue
		}
		hits = append(hits, Hit{
			T:     sh.T,
			Point: origin.Add(dir.MulScalar(sh.T)),
			Face:  f,
			U:     sh.U,
			V:     sh.V,
		})
	}
	return hits
}

func faceContains(f *brep.Face, u, v float64) bool {
	return f.ContainsUV(u, v, uvTrimTol)
}

// clipToBounds clips the ray to the shape's bounding box using the slab
// method, returning the parameter interval inside the box.
func (ix *Intersector) clipToBounds(origin, dir v3.Vec) (t0, t1 float64, ok bool) {
	t0, t1 = 0, math.Inf(1)
	bmin := [3]float64{ix.min.X, ix.min.Y, ix.min.Z}
	bmax := [3]float64{ix.max.X, ix.max.Y, ix.max.Z}
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-15 {
			if o[i] < bmin[i] || o[i] > bmax[i] {
				return 0, 0, false
			}
			continue
		}
		ta := (bmin[i] - o[i]) / d[i]
		tb := (bmax[i] - o[i]) / d[i]
		if ta > tb {
			ta, tb = tb, ta
		}
		t0 = math.Max(t0, ta)
		t1 = math.Min(t1, tb)
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// segmentRect returns the axis-aligned box around the ray segment
// [t0, t1], slightly expanded.
func segmentRect(origin, dir v3.Vec, t0, t1 float64) rtreego.Rect {
	a := origin.Add(dir.MulScalar(t0))
	b := origin.Add(dir.MulScalar(t1))
	min := a.Min(b)
	max := a.Max(b)
	const pad = 1e-6
	rect, err := rtreego.NewRect(
		rtreego.Point{min.X - pad, min.Y - pad, min.Z - pad},
		[]float64{
			max.X - min.X + 2*pad,
			max.Y - min.Y + 2*pad,
			max.Z - min.Z + 2*pad,
		},
	)
	if err != nil {
		// Only reachable with non-finite inputs; an empty rect finds nothing.
		rect, _ = rtreego.NewRect(rtreego.Point{0, 0, 0}, []float64{1e-9, 1e-9, 1e-9})
	}
	return rect
}
