package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is returned when a vector operand does not provide
// enough components.
var ErrInvalidArgument = errors.New("invalid argument")

// Vector is any value that exposes its coordinates as a slice.
type Vector interface {
	Abs() float64
	Cdot(other Vector) (float64, error)
	Components() []float64
}

// Vector2D is an immutable 2D vector
type Vector2D struct {
	X float64
	Y float64
}

// New creates a new 2D vector
func New(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Components returns the coordinates as a slice
func (v Vector2D) Components() []float64 {
	return []float64{v.X, v.Y}
}

// Abs returns the vector length
func (v Vector2D) Abs() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector, or the zero vector when the length is zero
func (v Vector2D) Normalize() Vector2D {
	length := v.Abs()
	if length == 0 {
		return Vector2D{}
	}
	return Vector2D{X: v.X / length, Y: v.Y / length}
}

// Cdot returns the dot product with another vector.
// The other vector must provide at least two components.
func (v Vector2D) Cdot(other Vector) (float64, error) {
	if other == nil {
		return 0, fmt.Errorf("%w: vector is nil", ErrInvalidArgument)
	}
	comp := other.Components()
	if len(comp) < 2 {
		return 0, fmt.Errorf("%w: vector must provide at least 2 components, got %d", ErrInvalidArgument, len(comp))
	}
	return v.X*comp[0] + v.Y*comp[1], nil
}

// Add returns v + other
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns v - other
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns v multiplied by a scalar
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D{X: v.X * k, Y: v.Y * k}
}

// Distance returns the euclidean distance between two points
func (v Vector2D) Distance(other Vector2D) float64 {
	return v.Sub(other).Abs()
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
