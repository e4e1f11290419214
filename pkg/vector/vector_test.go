package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shortVector []float64

func (s shortVector) Abs() float64                 { return 0 }
func (s shortVector) Cdot(Vector) (float64, error) { return 0, nil }
func (s shortVector) Components() []float64        { return s }

func TestAbsAndNormalize(t *testing.T) {
	v := New(3, 4)
	assert.Equal(t, 5.0, v.Abs())

	n := v.Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.InDelta(t, 1.0, n.Abs(), 1e-12)

	assert.Equal(t, Vector2D{}, New(0, 0).Normalize())
}

func TestCdot(t *testing.T) {
	d, err := New(1, 2).Cdot(New(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 11.0, d)

	_, err = New(1, 2).Cdot(shortVector{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(1, 2).Cdot(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestArithmetic(t *testing.T) {
	a := New(1, 1)
	b := New(4, 5)
	assert.Equal(t, New(5, 6), a.Add(b))
	assert.Equal(t, New(3, 4), b.Sub(a))
	assert.Equal(t, New(2, 2), a.Scale(2))
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, "(1, 1)", a.String())
}

func TestPolar(t *testing.T) {
	p := NewPolar(New(0, 2))
	assert.Equal(t, 2.0, p.Abs())
	assert.InDelta(t, math.Pi/2, p.Angle(), 1e-12)
	assert.Equal(t, "r = 2.00, θ = 1.57 rad", p.String())

	v := FromPolar(math.Pi, 3)
	assert.InDelta(t, -3, v.X, 1e-12)
	assert.InDelta(t, 0, v.Y, 1e-12)
}
