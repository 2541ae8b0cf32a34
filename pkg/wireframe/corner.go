package wireframe

import "image/color"

// Corner marker colors. Shaders rely on the channel, not the magnitude.
var (
	MarkerA = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	MarkerB = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	MarkerC = color.RGBA{R: 0, G: 0, B: 255, A: 255}
)

// CornerMarkers maps a triangle-local corner to its marker.
var CornerMarkers = [3]color.RGBA{MarkerA, MarkerB, MarkerC}

// Marker returns the barycentric marker for corner 0, 1 or 2 of a triangle.
// Any other value is reduced modulo 3 so the function stays total.
func Marker(corner int) color.RGBA {
	c := corner % 3
	if c < 0 {
		c += 3
	}
	return CornerMarkers[c]
}
