package math

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
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
	if !m.IsIdentity() {
		t.Error("IsIdentity() = false for Identity()")
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

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(r3.Vec{X: 1, Y: 2, Z: 3})

	want := r3.Vec{X: 12, Y: 24, Z: 36}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(r3.Vec{X: 0, Y: 1, Z: 0})
	if got != (r3.Vec{X: 0, Y: 1, Z: 0}) {
		t.Errorf("TransformDirection: got %v, want (0, 1, 0)", got)
	}
}

func TestRowsRoundTrip(t *testing.T) {
	m := Translate(4, 5, 6)
	rows := m.Rows()
	if rows[0][3] != 4 || rows[1][3] != 5 || rows[2][3] != 6 {
		t.Errorf("Rows: translation column = %v %v %v", rows[0][3], rows[1][3], rows[2][3])
	}
	if FromRows(rows) != m {
		t.Error("FromRows(Rows()) should return the original matrix")
	}
	if m.At(0, 3) != 4 {
		t.Errorf("At(0, 3) = %f, want 4", m.At(0, 3))
	}
}

func TestDeterminant(t *testing.T) {
	if d := Scale(2, 3, 4).Determinant(); d != 24 {
		t.Errorf("Determinant = %f, want 24", d)
	}
	if d := Scale(-1, 1, 1).Determinant(); d != -1 {
		t.Errorf("Determinant of mirror = %f, want -1", d)
	}
}
