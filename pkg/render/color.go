// pkg/render/color.go
package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LerpColor смешивает два цвета, t в [0, 1].
func LerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Vec3ToRGBA переводит цвет из [0, 1] в RGBA с насыщением.
func Vec3ToRGBA(v mgl32.Vec3, alpha uint8) color.RGBA {
	ch := func(f float32) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f * 255)
	}
	return color.RGBA{R: ch(v.X()), G: ch(v.Y()), B: ch(v.Z()), A: alpha}
}
