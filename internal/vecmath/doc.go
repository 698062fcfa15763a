// Package vecmath provides the double-precision 3D vector used by the
// particle simulation.
//
// [Vec3] is a plain value type: arithmetic methods return new vectors and
// the *Assign variants mutate the receiver in place.
//
//	v := vecmath.New(3, 4, 0)
//	v.ScaleAssign(2)
//	u, err := v.Normalized()
//
// Normalizing a zero-length vector yields the zero vector together with
// [ErrDegenerateGeometry].
package vecmath
