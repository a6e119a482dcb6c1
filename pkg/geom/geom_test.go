package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const eps = 1e-12

func vecNear(a, b v3.Vec, tol float64) bool {
	return a.Sub(b).Length() <= tol
}

func TestIdentityRoundTrip(t *testing.T) {
	f := Identity()
	p := v3.Vec{X: 1, Y: 2, Z: 3}
	if got := f.Point(p); !vecNear(got, p, eps) {
		t.Errorf("Identity().Point(%v) = %v", p, got)
	}
	if got := f.InvPoint(p); !vecNear(got, p, eps) {
		t.Errorf("Identity().InvPoint(%v) = %v", p, got)
	}
}

func TestTranslate(t *testing.T) {
	f := Translate(v3.Vec{X: 10})
	got := f.Point(v3.Vec{Y: 2})
	want := v3.Vec{X: 10, Y: 2}
	if !vecNear(got, want, eps) {
		t.Errorf("Point = %v, want %v", got, want)
	}
	// Directions ignore the origin.
	if got := f.Dir(v3.Vec{Y: 2}); !vecNear(got, v3.Vec{Y: 2}, eps) {
		t.Errorf("Dir = %v, want {Y:2}", got)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		f    Frame
		in   v3.Vec
		want v3.Vec
	}{
		{"z90 maps x to y", RotateZ(90), v3.Vec{X: 1}, v3.Vec{Y: 1}},
		{"z90 maps y to -x", RotateZ(90), v3.Vec{Y: 1}, v3.Vec{X: -1}},
		{"x90 maps y to z", RotateX(90), v3.Vec{Y: 1}, v3.Vec{Z: 1}},
		{"x90 maps z to -y", RotateX(90), v3.Vec{Z: 1}, v3.Vec{Y: -1}},
		{"y90 maps z to x", RotateY(90), v3.Vec{Z: 1}, v3.Vec{X: 1}},
		{"y90 maps x to -z", RotateY(90), v3.Vec{X: 1}, v3.Vec{Z: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Dir(tc.in); !vecNear(got, tc.want, 1e-9) {
				t.Errorf("Dir(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestInvPointRoundTrip(t *testing.T) {
	f := RotateZ(37).At(v3.Vec{X: 2, Y: -1, Z: 5})
	p := v3.Vec{X: 0.3, Y: -4, Z: 1.5}
	back := f.InvPoint(f.Point(p))
	if !vecNear(back, p, 1e-9) {
		t.Errorf("InvPoint(Point(%v)) = %v", p, back)
	}
	d := v3.Vec{X: 1, Y: 1}.Normalize()
	if back := f.InvDir(f.Dir(d)); !vecNear(back, d, 1e-9) {
		t.Errorf("InvDir(Dir(%v)) = %v", d, back)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	axes := []v3.Vec{
		{Z: 1},
		{X: 1},
		{X: 1, Y: 2, Z: 3},
		{X: -0.5, Z: 0.1},
	}
	for _, axis := range axes {
		f := Basis(v3.Vec{X: 1}, axis)
		if !vecNear(f.Z, axis.Normalize(), 1e-12) {
			t.Errorf("Basis Z = %v, want %v", f.Z, axis.Normalize())
		}
		for _, v := range []v3.Vec{f.X, f.Y, f.Z} {
			if !IsUnit(v, 1e-9) {
				t.Errorf("Basis(%v) axis %v not unit", axis, v)
			}
		}
		if d := f.X.Dot(f.Y); math.Abs(d) > 1e-9 {
			t.Errorf("Basis(%v): X.Y = %v", axis, d)
		}
		if !vecNear(f.X.Cross(f.Y), f.Z, 1e-9) {
			t.Errorf("Basis(%v) not right-handed", axis)
		}
	}
}

func TestCompose(t *testing.T) {
	f := RotateZ(90)
	g := Translate(v3.Vec{X: 1})
	fg := f.Compose(g)
	p := v3.Vec{Y: 2}
	want := f.Point(g.Point(p))
	if got := fg.Point(p); !vecNear(got, want, 1e-9) {
		t.Errorf("Compose Point = %v, want %v", got, want)
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b v3.Vec
		want float64
	}{
		{"same", v3.Vec{X: 1}, v3.Vec{X: 3}, 0},
		{"orthogonal", v3.Vec{X: 1}, v3.Vec{Y: 1}, 90},
		{"opposite", v3.Vec{Z: 1}, v3.Vec{Z: -2}, 180},
		{"45", v3.Vec{X: 1}, v3.Vec{X: 1, Y: 1}, 45},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AngleBetween(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("AngleBetween = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAngleBetweenZeroVector(t *testing.T) {
	if got := AngleBetween(v3.Vec{}, v3.Vec{X: 1}); !math.IsNaN(got) {
		t.Errorf("AngleBetween with zero vector = %v, want NaN", got)
	}
}

func TestIsUnit(t *testing.T) {
	if !IsUnit(v3.Vec{Z: 1}, 1e-9) {
		t.Error("unit z rejected")
	}
	if IsUnit(v3.Vec{Z: 1.1}, 1e-6) {
		t.Error("1.1 z accepted")
	}
	if !IsUnit(v3.Vec{X: 1, Y: 1}.Normalize(), 1e-9) {
		t.Error("normalized diagonal rejected")
	}
}
