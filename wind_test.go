package decoplant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExposureByte(t *testing.T) {
	cases := []struct {
		fraction float32
		want     uint8
	}{
		{0, 0},
		{1, 255},
		{0.25, 64},
		{0.5, 128},
		{1.5, 255},
		{-0.2, 0},
		{float32(math.NaN()), 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExposureByte(c.fraction), "fraction %v", c.fraction)
	}
}

func TestWindExposureColors_TopCornersOnly(t *testing.T) {
	colors := WindExposureColors(0.25)

	assert.Equal(t, uint8(0), colors[0].A)
	assert.Equal(t, uint8(64), colors[1].A)
	assert.Equal(t, uint8(64), colors[2].A)
	assert.Equal(t, uint8(0), colors[3].A)
}
