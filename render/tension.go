// Package render holds drawing helpers shared by the terminal and window renderers
package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	SpringNeutral    = colorful.Color{R: 0.85, G: 0.85, B: 0.85}
	SpringCompressed = colorful.Color{R: 0.1, G: 0.3, B: 1.0}
	SpringStretched  = colorful.Color{R: 1.0, G: 0.15, B: 0.1}
)

// TensionColor ramps from neutral toward blue when compressed and red when stretched
// Full saturation is reached at 50% strain
func TensionColor(currentLength, restLength float64) colorful.Color {
	if restLength <= 0 {
		return SpringNeutral
	}
	diff := currentLength - restLength
	t := math.Min(1, 2*math.Abs(diff)/restLength)
	if diff < 0 {
		return SpringNeutral.BlendLab(SpringCompressed, t).Clamped()
	}
	return SpringNeutral.BlendLab(SpringStretched, t).Clamped()
}
