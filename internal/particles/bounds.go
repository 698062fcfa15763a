package particles

import "github.com/san-kum/seaweed/internal/vecmath"

const (
	DefaultWidth  = 800.0
	DefaultHeight = 800.0
)

// Bounds is the rectangular simulation domain. An axis whose Min equals its
// Max is unbounded. Y is the vertical axis; Min.Y is the floor.
type Bounds struct {
	Min, Max vecmath.Vec3
}

// NewBounds returns a width x height domain in X/Y anchored at the origin,
// unbounded in Z.
func NewBounds(width, height float64) Bounds {
	return Bounds{Max: vecmath.New(width, height, 0)}
}

func DefaultBounds() Bounds { return NewBounds(DefaultWidth, DefaultHeight) }

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

func (b Bounds) Center() vecmath.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies inside the bounded axes.
func (b Bounds) Contains(p vecmath.Vec3) bool {
	return within(p.X, b.Min.X, b.Max.X) && within(p.Y, b.Min.Y, b.Max.Y) && within(p.Z, b.Min.Z, b.Max.Z)
}

func within(v, lo, hi float64) bool {
	if hi <= lo {
		return true
	}
	return v >= lo && v <= hi
}

// bounce clamps *pos into [lo, hi] and flips *vel when the boundary is
// touched. It reports whether the lower boundary was hit.
func bounce(pos, vel *float64, lo, hi float64) (floor bool) {
	if hi <= lo {
		return false
	}
	if *pos >= hi {
		*pos = hi
		*vel = -*vel
	}
	if *pos <= lo {
		*pos = lo
		*vel = -*vel
		floor = true
	}
	return floor
}
