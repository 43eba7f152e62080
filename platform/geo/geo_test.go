package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	assert.True(t, Valid(-25.9692, 32.5732))
	assert.True(t, Valid(90, 180))
	assert.True(t, Valid(-90, -180))
	assert.False(t, Valid(90.5, 0))
	assert.False(t, Valid(0, -180.1))
	assert.False(t, Valid(math.NaN(), 0))
	assert.False(t, Valid(0, math.Inf(1)))
}

func TestPointOrder(t *testing.T) {
	p := Point(-25.9, 32.5)
	assert.Equal(t, 32.5, p.Lon())
	assert.Equal(t, -25.9, p.Lat())
}
