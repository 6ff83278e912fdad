package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	v := New(64)
	v.Set(0)
	v.Set(5)
	v.Set(63)

	assert.True(t, v.Get(0))
	assert.True(t, v.Get(5))
	assert.True(t, v.Get(63))
	assert.False(t, v.Get(1))
}

func TestHammingIdentical(t *testing.T) {
	a := New(64)
	a.Set(1)
	a.Set(2)
	b := New(64)
	b.Set(1)
	b.Set(2)

	assert.Equal(t, 0, a.Hamming(b))
	assert.Equal(t, float64(1), a.Similarity(b))
}

func TestHammingDiffers(t *testing.T) {
	a := New(8)
	a.Set(0)
	b := New(8)
	b.Set(1)

	assert.Equal(t, 2, a.Hamming(b))
	assert.Equal(t, 0.75, a.Similarity(b))
}

func TestHammingPanicsOnLengthMismatch(t *testing.T) {
	a := New(8)
	b := New(16)
	assert.Panics(t, func() { a.Hamming(b) })
}

func TestHexRoundTrip(t *testing.T) {
	a := New(64)
	a.Set(3)
	a.Set(40)

	encoded := a.Hex()
	decoded, err := FromHex(64, encoded)
	require.NoError(t, err)
	assert.True(t, a.Equal(decoded))
}

func TestFromHexRejectsWrongLength(t *testing.T) {
	a := New(64)
	encoded := a.Hex()
	_, err := FromHex(128, encoded)
	assert.Error(t, err)
}
