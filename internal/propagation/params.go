// Package propagation implements the VOACAP-like scalar propagation model:
// great-circle vector interpolation, a short chain of empirical ionospheric
// terms, MUF/REL aggregation, and (in grid mode) the post-processing and
// rendering pipeline that turns a scalar field into a bitmap.
package propagation

// PathMode selects short-path or long-path geometry.
type PathMode int

const (
	ShortPath PathMode = iota
	LongPath
)

// SpaceWeather bundles the indices the engine needs from the ingestion
// fetchers (spec.md §4.D storm penalties and Kp depression). Zero value is
// quiet conditions: no Kp depression, no storm penalty.
type SpaceWeather struct {
	SSN           int     // smoothed sunspot number
	Kp            float64 // planetary K index, 0-9
	Bz            float64 // IMF Bz, nT (negative = southward)
	SolarWindKmS  float64 // solar wind bulk speed, km/s
}

// Request is a single point or grid propagation query (spec.md §3).
type Request struct {
	TxLatDeg, TxLngDeg float64
	RxLatDeg, RxLngDeg float64
	FreqMHz            float64 // 0 => MUF mode (MUF computed, not compared to a frequency)
	TakeoffDeg         float64
	Year, Month        int
	UTCHour            float64
	Path               PathMode
	Weather            SpaceWeather
}

// GridRequest extends Request with the rectangular pixel grid a rendered
// map is evaluated over, anchored at the transmitter.
type GridRequest struct {
	Request
	Width, Height int
}

// PointResult is the outcome of a single-point evaluation.
type PointResult struct {
	MUF float64 // MHz
	REL float64 // 0..1
}
