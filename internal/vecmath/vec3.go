package vecmath

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDegenerateGeometry is returned when a zero-length vector is normalized.
var ErrDegenerateGeometry = errors.New("vecmath: cannot normalize zero-length vector")

type Vec3 struct {
	X, Y, Z float64
}

var (
	Zero  = Vec3{}
	UnitX = Vec3{1, 0, 0}
	UnitY = Vec3{0, 1, 0}
	UnitZ = Vec3{0, 0, 1}
)

func New(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Div(s float64) Vec3   { return Vec3{v.X / s, v.Y / s, v.Z / s} }
func (v Vec3) Neg() Vec3            { return Vec3{-v.X, -v.Y, -v.Z} }

func (v *Vec3) AddAssign(o Vec3) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
}

func (v *Vec3) SubAssign(o Vec3) {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
}

func (v *Vec3) ScaleAssign(s float64) {
	v.X *= s
	v.Y *= s
	v.Z *= s
}

func (v *Vec3) DivAssign(s float64) {
	v.X /= s
	v.Y /= s
	v.Z /= s
}

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

func (v Vec3) Magnitude() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize scales v to unit length in place. A zero vector stays zero and
// ErrDegenerateGeometry is returned.
func (v *Vec3) Normalize() error {
	n, err := v.Normalized()
	*v = n
	return err
}

// Normalized returns the unit vector along v, or the zero vector and
// ErrDegenerateGeometry when v has zero length.
func (v Vec3) Normalized() (Vec3, error) {
	m := v.Magnitude()
	if m == 0 {
		return Zero, ErrDegenerateGeometry
	}
	return v.Div(m), nil
}

// Rotate returns v rotated by angle radians about axis using the
// axis-angle rotation matrix. The axis is expected to be unit length and is
// not normalized here.
func (v Vec3) Rotate(axis Vec3, angle float64) Vec3 {
	m := mgl64.HomogRotate3D(angle, mgl64.Vec3{axis.X, axis.Y, axis.Z})
	r := m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0})
	return Vec3{r[0], r[1], r[2]}
}

func (v Vec3) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every component differs by at most tol.
func (v Vec3) ApproxEqual(o Vec3, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
