package math

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidAxes is returned when a forward/up pair does not describe a basis.
var ErrInvalidAxes = errors.New("invalid axis pair")

// Axis is a signed coordinate axis.
type Axis int

// Axis constants.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisNegX
	AxisNegY
	AxisNegZ
)

// Target orientation of AxisConversion: Y forward, Z up.
const (
	TargetForward = AxisY
	TargetUp      = AxisZ
)

var axisNames = [...]string{"X", "Y", "Z", "-X", "-Y", "-Z"}

// String returns the axis name as written in config files.
func (a Axis) String() string {
	if a < AxisX || a > AxisNegZ {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis parses "X", "-Y", "z" and so on.
func ParseAxis(s string) (Axis, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range axisNames {
		if n == name {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown axis %q", ErrInvalidAxes, s)
}

// Vector returns the unit vector pointing along the axis.
func (a Axis) Vector() r3.Vec {
	var v r3.Vec
	sign := 1.0
	if a >= AxisNegX {
		sign = -1
	}
	switch a % 3 {
	case 0:
		v.X = sign
	case 1:
		v.Y = sign
	case 2:
		v.Z = sign
	}
	return v
}

// sameLine reports whether both axes lie on the same coordinate line.
func (a Axis) sameLine(b Axis) bool {
	return a%3 == b%3
}

// AxisConversion returns the rotation that maps a space with the given
// forward and up axes onto the TargetForward/TargetUp space.
func AxisConversion(forward, up Axis) (Mat4, error) {
	if forward < AxisX || forward > AxisNegZ || up < AxisX || up > AxisNegZ {
		return Mat4{}, fmt.Errorf("%w: %s/%s", ErrInvalidAxes, forward, up)
	}
	if forward.sameLine(up) {
		return Mat4{}, fmt.Errorf("%w: forward %s and up %s share an axis", ErrInvalidAxes, forward, up)
	}

	f1, u1 := forward.Vector(), up.Vector()
	r1 := r3.Cross(f1, u1)
	f2, u2 := TargetForward.Vector(), TargetUp.Vector()
	r2 := r3.Cross(f2, u2)

	// Sum of outer products f2*f1^T + u2*u1^T + r2*r1^T.
	src := [3][3]float64{vecArray(f1), vecArray(u1), vecArray(r1)}
	dst := [3][3]float64{vecArray(f2), vecArray(u2), vecArray(r2)}

	m := Identity()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += dst[k][row] * src[k][col]
			}
			m[col*4+row] = sum
		}
	}
	return m, nil
}

// AxisConversionNames is AxisConversion for config strings.
func AxisConversionNames(forward, up string) (Mat4, error) {
	f, err := ParseAxis(forward)
	if err != nil {
		return Mat4{}, err
	}
	u, err := ParseAxis(up)
	if err != nil {
		return Mat4{}, err
	}
	return AxisConversion(f, u)
}

func vecArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
