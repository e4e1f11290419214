package vector

import (
	"fmt"
	"math"
)

// Polar2D exposes a Vector2D in polar form
type Polar2D struct {
	v Vector2D
}

// NewPolar wraps a vector
func NewPolar(v Vector2D) Polar2D {
	return Polar2D{v: v}
}

// FromPolar builds a vector from an angle in radians and a length
func FromPolar(angle, length float64) Vector2D {
	return Vector2D{X: math.Cos(angle) * length, Y: math.Sin(angle) * length}
}

// Abs returns the radius
func (p Polar2D) Abs() float64 {
	return p.v.Abs()
}

// Angle returns the angle relative to the x-axis in radians
func (p Polar2D) Angle() float64 {
	return math.Atan2(p.v.Y, p.v.X)
}

func (p Polar2D) String() string {
	return fmt.Sprintf("r = %.2f, θ = %.2f rad", p.Abs(), p.Angle())
}
