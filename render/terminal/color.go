package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/particle-sandbox/vmath"
)

var (
	fogColor       = colorful.Color{R: 0.05, G: 0.05, B: 0.08}
	highlightColor = colorful.Color{R: 1, G: 1, B: 1}
)

func fromVec(c vmath.Vec3F) colorful.Color {
	return colorful.Color{R: c.X, G: c.Y, B: c.Z}.Clamped()
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// fog fades far geometry toward the background
func fog(c colorful.Color, depth, far float64) colorful.Color {
	if far <= 0 {
		return c
	}
	t := math.Max(0, math.Min(0.7, depth/far*0.7))
	return c.BlendRgb(fogColor, t)
}
