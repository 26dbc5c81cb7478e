package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale happens before translation.
	m := Compose(Vec3{1, 0, 0}, Vec3{}, Vec3{2, 2, 2})
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{3, 2, 2}
	if got != want {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
}

func TestComposeRotation(t *testing.T) {
	m := Compose(Vec3{}, Vec3{0, 90, 0}, Vec3{1, 1, 1})
	got := m.TransformVec3(Vec3{1, 0, 0})

	// +X rotated 90 degrees about Y lands on -Z.
	if math.Abs(float64(got.X)) > 1e-5 || math.Abs(float64(got.Z+1)) > 1e-5 {
		t.Errorf("Compose rotation: got %v, want ~(0, 0, -1)", got)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	p := m.TransformVec3(eye)
	if p.Length() > 1e-5 {
		t.Errorf("LookAt eye should map to origin, got %v", p)
	}

	// The look target sits on the -Z axis in view space.
	c := m.TransformVec3(Vec3{})
	if math.Abs(float64(c.Z+5)) > 1e-5 {
		t.Errorf("LookAt target z: got %v, want -5", c.Z)
	}
}
