package propagation

import (
	"time"

	"github.com/hamprop/backend/internal/solar"
)

// sampleFractions and sampleWeights are the three great-circle sample
// points (spec.md §4.D steps 2 and 6): quarter, half, three-quarter, each
// weighted 1/4, 1/2, 1/4.
var sampleFractions = [3]float64{0.25, 0.5, 0.75}
var sampleWeights = [3]float64{0.25, 0.5, 0.25}

// dayOfYear approximates a calendar day-of-year from a (year, month) pair
// with no day-of-month field (PropRequest carries only year/month, per
// spec.md §3): the 15th of the month is used as the representative day,
// which is accurate enough for the subsolar point's single-degree-scale
// seasonal swing.
func dayOfYear(year, month int) int {
	if month < 1 || month > 12 {
		month = 1
	}
	return time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC).YearDay()
}

// EvaluatePoint runs the full §4.D algorithm for a single TX/RX pair and
// returns the aggregated MUF and REL.
func EvaluatePoint(req Request) PointResult {
	distanceKm, azimuthDeg := solar.GreatCircle(req.TxLatDeg, req.TxLngDeg, req.RxLatDeg, req.RxLngDeg)

	txVec := solar.ToVec3(req.TxLatDeg, req.TxLngDeg)
	rxVec := solar.ToVec3(req.RxLatDeg, req.RxLngDeg)
	if req.Path == LongPath {
		distanceKm, azimuthDeg = solar.LongPath(distanceKm, azimuthDeg)
		rxVec = solar.Vec3{X: -rxVec.X, Y: -rxVec.Y, Z: -rxVec.Z}
	}

	subLat, subLng := solar.SubsolarPoint(dayOfYear(req.Year, req.Month), req.UTCHour)

	freq := req.FreqMHz
	muf := 0.0
	relAcc := 0.0
	for i, frac := range sampleFractions {
		w := sampleWeights[i]
		sampleVec := solar.Interpolate(txVec, rxVec, frac)
		sampleLat, sampleLng := sampleVec.ToLatLng()

		terms := evaluateSample(sampleLat, sampleLng, distanceKm, azimuthDeg, subLat, subLng, req)

		base := 5 + 0.1*float64(req.Weather.SSN)
		kpFactor := 1.0
		if req.Weather.Kp > 3 {
			kpFactor = 1 - 0.05*(req.Weather.Kp-3)
			if kpFactor < 0.5 {
				kpFactor = 0.5
			}
			if kpFactor > 1 {
				kpFactor = 1
			}
		}
		mufSample := base * terms.reflectionEff * terms.mBend * kpFactor
		muf += w * mufSample

		evalFreq := freq
		if evalFreq <= 0 {
			evalFreq = mufSample // MUF mode: evaluate REL at the sample's own MUF, giving SNR_margin a neutral ~1.0 ratio.
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

		relAcc += w * sigma(25*(snrMargin-0.70))
	}

	return PointResult{MUF: muf, REL: relAcc}
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
