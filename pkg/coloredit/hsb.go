// Package coloredit provides per-column color editing over ARGB pixel
// slices: HSB shifts, opacity overrides and commit/reset tracking.
package coloredit

import "math"

// HSB is a hue/saturation/brightness shift. Hue is in degrees and wraps mod
// 360; saturation and brightness are deltas clamped into [0, 1] after
// application.
type HSB struct {
	Hue        float64
	Saturation float64
	Brightness float64
}

// IsZero reports a no-op shift.
func (s HSB) IsZero() bool {
	return s.Hue == 0 && s.Saturation == 0 && s.Brightness == 0
}

// AdjustColor applies an HSB shift to one ARGB pixel. The conversion runs
// inline in both directions to avoid allocations on slider-driven hot paths.
// Alpha passes through untouched.
func AdjustColor(argb uint32, shift HSB) uint32 {
	r := float64((argb>>16)&0xFF) / 255.0
	g := float64((argb>>8)&0xFF) / 255.0
	b := float64(argb&0xFF) / 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	var h, s float64
	brightness := maxC

	if maxC != 0 {
		s = delta / maxC
		if delta != 0 {
			switch maxC {
			case r:
				h = 60 * ((g - b) / delta)
			case g:
				h = 60 * (((b - r) / delta) + 2)
			default:
				h = 60 * (((r - g) / delta) + 4)
			}
		}
	}

	h = wrapHue(h + shift.Hue)
	if shift.Saturation != 0 {
		s = clamp01(s + shift.Saturation)
	}
	if shift.Brightness != 0 {
		brightness = clamp01(brightness + shift.Brightness)
	}

	c := brightness * s
	x := c * (1 - math.Abs(math.Mod(h/60.0, 2)-1))
	m := brightness - c

	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1 = c, x
	case h < 120:
		r1, g1 = x, c
	case h < 180:
		g1, b1 = c, x
	case h < 240:
		g1, b1 = x, c
	case h < 300:
		r1, b1 = x, c
	default:
		r1, b1 = c, x
	}

	rOut := clamp8(int(math.Round((r1 + m) * 255)))
	gOut := clamp8(int(math.Round((g1 + m) * 255)))
	bOut := clamp8(int(math.Round((b1 + m) * 255)))

	return argb&0xFF000000 | uint32(rOut)<<16 | uint32(gOut)<<8 | uint32(bOut)
}

// AdjustOpacity rewrites only the alpha channel, independent of the HSB
// fields. The fraction is clamped into [0, 1].
func AdjustOpacity(argb uint32, opacity float64) uint32 {
	alpha := uint32(math.Round(clamp01(opacity) * 255.0))
	return argb&0x00FFFFFF | alpha<<24
}

// Opacity extracts the alpha channel as a fraction.
func Opacity(argb uint32) float64 {
	return float64((argb>>24)&0xFF) / 255.0
}

// ShiftBetween computes the HSB shift that takes the original pixel to the
// modified one, used to sync editor sliders with an existing edit. The hue
// component is reported in (-180, 180].
func ShiftBetween(original, modified uint32) HSB {
	h1, s1, b1 := toHSB(original)
	h2, s2, b2 := toHSB(modified)

	hue := wrapHue(h2 - h1)
	if hue > 180 {
		hue -= 360
	}
	return HSB{Hue: hue, Saturation: s2 - s1, Brightness: b2 - b1}
}

func toHSB(argb uint32) (h, s, b float64) {
	r := float64((argb>>16)&0xFF) / 255.0
	g := float64((argb>>8)&0xFF) / 255.0
	bl := float64(argb&0xFF) / 255.0

	maxC := math.Max(r, math.Max(g, bl))
	minC := math.Min(r, math.Min(g, bl))
	delta := maxC - minC

	b = maxC
	if maxC != 0 {
		s = delta / maxC
	}
	if delta != 0 {
		switch maxC {
		case r:
			h = 60 * ((g - bl) / delta)
		case g:
			h = 60 * (((bl - r) / delta) + 2)
		default:
			h = 60 * (((r - g) / delta) + 4)
		}
	}
	return wrapHue(h), s, b
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
