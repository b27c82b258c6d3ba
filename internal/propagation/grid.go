package propagation

import (
	"math"

	"github.com/hamprop/backend/internal/solar"
)

// Metric selects which scalar field a grid request renders, corresponding
// to the three map endpoints of spec.md §6 (`-Area`, `-MUF`, `-TOA`).
type Metric int

const (
	MetricREL Metric = iota
	MetricMUF
	MetricTOA
)

// pixelLatLng maps a grid column/row to the equirectangular lat/lng of that
// pixel's centre (x=0 is the west edge, y=0 is the north edge).
func pixelLatLng(x, y, width, height int) (latDeg, lngDeg float64) {
	latDeg = 90 - (float64(y)+0.5)*(180/float64(height))
	lngDeg = -180 + (float64(x)+0.5)*(360/float64(width))
	return latDeg, lngDeg
}

// scalarField is the per-pixel MUF/REL/distance data a grid evaluation
// produces, before post-processing.
type scalarField struct {
	width, height int
	muf           []float64
	rel           []float64
	distanceKm    []float64
	cosZSurf      []float64
}

func newScalarField(width, height int) *scalarField {
	n := width * height
	return &scalarField{
		width: width, height: height,
		muf: make([]float64, n), rel: make([]float64, n),
		distanceKm: make([]float64, n), cosZSurf: make([]float64, n),
	}
}

// evaluateGrid computes MUF, REL and great-circle distance for every pixel
// of the world map, with the receiver at that pixel and the transmitter
// fixed at req.TxLatDeg/TxLngDeg — this is the full-grid counterpart of
// EvaluatePoint (spec.md §4.D: "the engine is exercised both in a full-grid
// mode ... and a point-to-point mode").
func evaluateGrid(req Request, width, height int) *scalarField {
	field := newScalarField(width, height)

	txVec := solar.ToVec3(req.TxLatDeg, req.TxLngDeg)
	subLat, subLng := solar.SubsolarPoint(dayOfYear(req.Year, req.Month), req.UTCHour)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rxLat, rxLng := pixelLatLng(x, y, width, height)
			idx := y*width + x

			distanceKm, azimuthDeg := solar.GreatCircle(req.TxLatDeg, req.TxLngDeg, rxLat, rxLng)
			rxVec := solar.ToVec3(rxLat, rxLng)
			if req.Path == LongPath {
				distanceKm, azimuthDeg = solar.LongPath(distanceKm, azimuthDeg)
				rxVec = solar.Vec3{X: -rxVec.X, Y: -rxVec.Y, Z: -rxVec.Z}
			}

			muf, rel := 0.0, 0.0
			for i, frac := range sampleFractions {
				w := sampleWeights[i]
				sampleVec := solar.Interpolate(txVec, rxVec, frac)
				sampleLat, sampleLng := sampleVec.ToLatLng()
				terms := evaluateSample(sampleLat, sampleLng, distanceKm, azimuthDeg, subLat, subLng, req)

				base := 5 + 0.1*float64(req.Weather.SSN)
				kpFactor := 1.0
				if req.Weather.Kp > 3 {
					kpFactor = math.Max(0.5, math.Min(1, 1-0.05*(req.Weather.Kp-3)))
				}
				mufSample := base * terms.reflectionEff * terms.mBend * kpFactor
				muf += w * mufSample

				evalFreq := req.FreqMHz
				if evalFreq <= 0 {
					evalFreq = mufSample
				}
				snrMargin := (mufSample / evalFreq) * terms.resonance * terms.absorption *
					terms.reflectionEff * terms.pathLoss * terms.pcaLoss

				auroralThreshold := 75 - 2*req.Weather.Kp
				if absF(terms.magLatDeg) > auroralThreshold && req.Weather.Bz < -1 {
					snrMargin *= 0.5
				}
				if req.Weather.SolarWindKmS > 550 && absF(terms.magLatDeg) > 70 {
					snrMargin *= 0.8
				}
				rel += w * sigma(25*(snrMargin-0.70))
			}

			field.muf[idx] = muf
			field.rel[idx] = rel
			field.distanceKm[idx] = distanceKm
			field.cosZSurf[idx] = solar.SurfaceCosZenith(rxLat, rxLng, subLat, subLng)
		}
	}

	return field
}

// smoothPeriodic applies the 5-point smoother of spec.md §4.D with periodic
// wrap on the longitude (x) axis, which is what keeps the map seamless at
// x=0 versus x=width-1.
func smoothPeriodic(values []float64, width, height int) []float64 {
	out := make([]float64, len(values))
	weights := [5]float64{1, 2, 3, 2, 1}
	const weightSum = 9.0
	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			acc := 0.0
			for k := -2; k <= 2; k++ {
				xi := ((x+k)%width + width) % width
				acc += weights[k+2] * values[row+xi]
			}
			out[row+x] = acc / weightSum
		}
	}
	return out
}

// ditherOffset is the deterministic ordered dither of spec.md §4.D
// post-processing: `(((x*13) XOR (y*17)) & 7)/100 - 0.035`.
func ditherOffset(x, y int) float64 {
	return float64(((x*13)^(y*17))&7)/100 - 0.035
}

// bandRel rounds a 0..1 reliability to 10% steps, matching the visual
// banding of the reference client (spec.md §4.D post-processing).
func bandRel(rel float64) float64 {
	return math.Round(rel*10) / 10
}

// isNearTerminator reports whether cosZ is within 0.08 of -0.04, the
// terminator smoothstep midpoint, so that spec.md §4.D's optional "grayline
// ducting bump" should apply.
func isNearTerminator(cosZ float64) bool {
	return math.Abs(cosZ+0.04) < 0.08
}
