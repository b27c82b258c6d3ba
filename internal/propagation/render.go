package propagation

import (
	"github.com/hamprop/backend/internal/bitmap"
	"github.com/hamprop/backend/internal/colorscale"
)

// CountryMaskFunc optionally forces a pixel to black (spec.md §4.D
// rendering: "Optionally force a country-mask pixel to black"). No vector
// or raster country-boundary data ships with this module (none of the
// source examples carry one either), so the default engine leaves this
// nil and skips the step entirely; a caller with a real land/sea or
// political-boundary dataset can supply one.
type CountryMaskFunc func(latDeg, lngDeg float64) bool

// renderChannel turns one post-processed scalar field into RGB565 pixels,
// alpha-blended over the background map (spec.md §4.D rendering).
func renderChannel(
	field *scalarField,
	metric Metric,
	colors *colorscale.Tables,
	background []uint16,
	subLat, subLng float64,
	mask CountryMaskFunc,
	grayline bool,
) []uint16 {
	width, height := field.width, field.height
	out := make([]uint16, width*height)

	smoothedRel := smoothPeriodic(field.rel, width, height)
	var smoothedMuf []float64
	if metric == MetricMUF {
		smoothedMuf = smoothPeriodic(field.muf, width, height)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			rel := smoothedRel[idx]
			if grayline && isNearTerminator(field.cosZSurf[idx]) {
				rel = clampUnit01(rel + 0.05)
			}

			var scalar, normalized float64
			var table *colorscale.Table
			noPath := false

			switch metric {
			case MetricREL:
				banded := bandRel(rel)
				scalar = banded*100 + ditherOffset(x, y)*100
				normalized = banded
				table = colors.REL
			case MetricMUF:
				scalar = smoothedMuf[idx] + ditherOffset(x, y)*35
				normalized = clampUnit01(scalar / 35)
				table = colors.MUF
			case MetricTOA:
				if rel <= 0.2 {
					noPath = true
				} else {
					scalar = 2 + (field.distanceKm[idx]/1000)*8 + ditherOffset(x, y)*40
					normalized = clampUnit01(scalar / 40)
				}
				table = colors.TOA
			}

			latDeg, lngDeg := pixelLatLng(x, y, width, height)
			bg := uint16(0)
			if len(background) == width*height {
				bg = background[idx]
			}

			if mask != nil && mask(latDeg, lngDeg) {
				out[idx] = bitmap.PackRGB565(0, 0, 0)
				continue
			}

			if noPath {
				out[idx] = bg
				continue
			}

			fg := table.Lookup(scalar)
			alpha := 0.4 + 0.4*normalized
			out[idx] = blendRGB565(bg, fg, alpha)
		}
	}

	return out
}

func clampUnit01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// blendRGB565 alpha-blends fg over bg at the given alpha (0..1), each
// channel independently.
func blendRGB565(bg, fg uint16, alpha float64) uint16 {
	br, bgc, bb := bitmap.UnpackRGB565(bg)
	fr, fgc, fb := bitmap.UnpackRGB565(fg)
	r := blendChannel(br, fr, alpha)
	g := blendChannel(bgc, fgc, alpha)
	b := blendChannel(bb, fb, alpha)
	return bitmap.PackRGB565(r, g, b)
}

func blendChannel(bg, fg uint8, alpha float64) uint8 {
	v := float64(bg)*(1-alpha) + float64(fg)*alpha
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
