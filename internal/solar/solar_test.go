package solar

import (
	"math"
	"testing"
)

func TestSubsolarPointJune(t *testing.T) {
	// Around day 172 (summer solstice) the subsolar latitude should be
	// near its positive maximum (+23.44).
	lat, _ := SubsolarPoint(172, 12)
	if lat < 20 {
		t.Errorf("want subsolar latitude near solstice maximum, got %f", lat)
	}
}

func TestSubsolarLongitudeNoon(t *testing.T) {
	_, lng := SubsolarPoint(100, 12)
	if lng < -0.5 || lng > 0.5 {
		t.Errorf("want subsolar longitude ~0 at UTC noon, got %f", lng)
	}
}

func TestGreatCircleZeroDistance(t *testing.T) {
	d, _ := GreatCircle(10, 20, 10, 20)
	if d > 1e-6 {
		t.Errorf("want zero distance for identical points, got %f", d)
	}
}

func TestGreatCircleAntipodeDistance(t *testing.T) {
	d, _ := GreatCircle(0, 0, 0, 180)
	want := math.Pi * earthRadiusKm
	if diff := d - want; diff > 1 || diff < -1 {
		t.Errorf("want distance ~%f for antipodal points, got %f", want, d)
	}
}

func TestLongPathSymmetry(t *testing.T) {
	d, az := GreatCircle(10, 10, -20, 100)
	ld, laz := LongPath(d, az)

	sum := d + ld
	if diff := sum - EarthCircumferenceKm; diff > 1 || diff < -1 {
		t.Errorf("want short+long distance ~= circumference, got %f vs %f", sum, EarthCircumferenceKm)
	}

	diffAz := laz - az
	for diffAz < 0 {
		diffAz += 360
	}
	if diffAz < 179 || diffAz > 181 {
		t.Errorf("want azimuths ~180 degrees apart, got diff %f", diffAz)
	}
}

func TestInterpolateNormalized(t *testing.T) {
	a := ToVec3(0, 0)
	b := ToVec3(0, 90)
	mid := Interpolate(a, b, 0.5)
	if mag := mid.Magnitude(); mag < 0.999 || mag > 1.001 {
		t.Errorf("want unit vector after interpolation, got magnitude %f", mag)
	}
}

func TestInterpolateAntipodeSafe(t *testing.T) {
	a := ToVec3(0, 0)
	b := ToVec3(0, 180)
	// Should not panic or produce NaN.
	mid := Interpolate(a, b, 0.5)
	lat, lng := mid.ToLatLng()
	if lat != lat || lng != lng { // NaN check
		t.Errorf("antipode interpolation produced NaN: lat=%f lng=%f", lat, lng)
	}
}

func TestGeomagneticLatitudeAtPole(t *testing.T) {
	magLat := GeomagneticLatitude(geomagPoleLatDeg, geomagPoleLngDeg)
	if magLat < 89 {
		t.Errorf("want geomagnetic latitude near 90 at the dipole pole, got %f", magLat)
	}
}
