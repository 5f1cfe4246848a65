package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func approxVec3(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Z-b.Z) < eps
}

func TestVec3Ops(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); !approxVec3(got, V3(5, 7, 9)) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !approxVec3(got, V3(-3, -3, -3)) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); math.Abs(got-32) > eps {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); !approxVec3(got, V3(-3, 6, -3)) {
		t.Errorf("Cross = %v", got)
	}
	if got := V3(3, 0, 4).Len(); math.Abs(got-5) > eps {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := V3(3, 7, 4).HorizontalLenSq(); math.Abs(got-25) > eps {
		t.Errorf("HorizontalLenSq = %v, want 25", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	if got := V3(0, 0, 0).Normalize(); !approxVec3(got, Vec3{}) {
		t.Errorf("Normalize(0) = %v, want zero", got)
	}
	if got := V3(0, 10, 0).Normalize(); !approxVec3(got, V3(0, 1, 0)) {
		t.Errorf("Normalize = %v", got)
	}
}

func TestVec2Cross(t *testing.T) {
	// In y-down screen space, (1,0) to (0,1) is a clockwise turn.
	if got := V2(1, 0).Cross(V2(0, 1)); got <= 0 {
		t.Errorf("clockwise cross = %v, want > 0", got)
	}
	if got := V2(0, 1).Cross(V2(1, 0)); got >= 0 {
		t.Errorf("counter-clockwise cross = %v, want < 0", got)
	}
}

func TestMat3Rotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		in   Vec3
		want Vec3
	}{
		{"rotX 90deg sends +Y to +Z", RotateX(math.Pi / 2), V3(0, 1, 0), V3(0, 0, 1)},
		{"rotY 90deg sends +Z to +X", RotateY(math.Pi / 2), V3(0, 0, 1), V3(1, 0, 0)},
		{"rotZ 90deg sends +X to +Y", RotateZ(math.Pi / 2), V3(1, 0, 0), V3(0, 1, 0)},
		{"identity", Identity3(), V3(1, 2, 3), V3(1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulVec3(tt.in); !approxVec3(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMat3MulAssociativity(t *testing.T) {
	a := RotateX(0.3)
	b := RotateY(0.7)
	c := RotateZ(1.1)
	v := V3(1, 2, 3)

	left := a.Mul(b).Mul(c).MulVec3(v)
	right := a.MulVec3(b.MulVec3(c.MulVec3(v)))
	if !approxVec3(left, right) {
		t.Errorf("composed %v != chained %v", left, right)
	}
}

func TestMat3TransposeInvertsRotation(t *testing.T) {
	m := ObjectRotation(0.2, 0.9, 0.4)
	v := V3(3, -1, 2)

	back := m.Transpose().MulVec3(m.MulVec3(v))
	if !approxVec3(back, v) {
		t.Errorf("transpose round trip = %v, want %v", back, v)
	}
}

func TestViewRotationCancelsYaw(t *testing.T) {
	// A point straight ahead of a yawed camera lands on the view -Z/+Z axis.
	yaw := 0.8
	view := ViewRotation(0, yaw)
	ahead := RotateY(yaw).MulVec3(V3(0, 0, 1))

	got := view.MulVec3(ahead)
	if !approxVec3(got, V3(0, 0, 1)) {
		t.Errorf("view rotated point = %v, want (0,0,1)", got)
	}
}

func TestObjectRotationOrder(t *testing.T) {
	// Yaw is applied after pitch: with pitch pi/2, +Z goes to -Y first,
	// and a further yaw must leave -Y untouched.
	m := ObjectRotation(math.Pi/2, 1.3, 0)
	got := m.MulVec3(V3(0, 0, 1))
	if !approxVec3(got, V3(0, -1, 0)) {
		t.Errorf("got %v, want (0,-1,0)", got)
	}
}
