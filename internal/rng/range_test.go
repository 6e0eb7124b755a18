package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPanicsOnInvalidRange(t *testing.T) {
	assert.Panics(t, func() { New(5, 2) })
	assert.NotPanics(t, func() { New(2, 5) })
	assert.NotPanics(t, func() { New(3, 3) })
}

func TestLenAndIsEmpty(t *testing.T) {
	r := New(2, 7)
	assert.Equal(t, 5, r.Len())
	assert.False(t, r.IsEmpty())

	empty := New(3, 3)
	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.IsEmpty())
}

func TestContains(t *testing.T) {
	r := New(2, 5)
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
}

func TestContainsRange(t *testing.T) {
	r := New(2, 10)
	assert.True(t, r.ContainsRange(New(2, 10)))
	assert.True(t, r.ContainsRange(New(3, 8)))
	assert.False(t, r.ContainsRange(New(1, 8)))
	assert.False(t, r.ContainsRange(New(3, 11)))
}

func TestIntersect(t *testing.T) {
	got, ok := Intersect(New(0, 5), New(3, 8))
	assert.True(t, ok)
	assert.Equal(t, New(3, 5), got)

	_, ok = Intersect(New(0, 3), New(3, 8))
	assert.False(t, ok, "half-open ranges touching at a boundary do not overlap")

	_, ok = Intersect(New(0, 3), New(5, 8))
	assert.False(t, ok)

	assert.True(t, HasIntersection(New(0, 5), New(4, 9)))
	assert.False(t, HasIntersection(New(0, 5), New(5, 9)))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(1, 3, 10))
	assert.Equal(t, 10, Clamp(20, 3, 10))
	assert.Equal(t, 5, Clamp(5, 3, 10))
}

func TestString(t *testing.T) {
	assert.Equal(t, "[2, 7)", New(2, 7).String())
}
