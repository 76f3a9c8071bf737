package decoplant

import (
	"image/color"
	"math"
)

// ExposureByte converts a wind exposure fraction to the alpha the sway
// shader reads. Halves round up; the result is clamped to 0..255.
func ExposureByte(fraction float32) uint8 {
	v := math.Floor(255*float64(fraction) + 0.5)
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// WindExposureColors builds the corner colours of one plane. Corners follow
// the plane's vertex order: 0 bottom-left, 1 top-left, 2 top-right,
// 3 bottom-right. Only the top pair sways.
func WindExposureColors(fraction float32) [4]color.RGBA {
	var colors [4]color.RGBA
	top := ExposureByte(fraction)
	colors[1].A, colors[2].A = top, top
	colors[0].A, colors[3].A = 0, 0
	return colors
}
