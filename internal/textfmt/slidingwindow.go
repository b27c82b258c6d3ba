// Package textfmt builds the fixed-width and fixed-count text artifacts the
// client parses byte-for-byte: sliding-window series, the band-conditions
// table, weather-grid rows and CSV spot lines.
package textfmt

// PadTruncate returns exactly n elements derived from samples: if samples
// has fewer than n, the oldest available sample (samples[0]) is repeated to
// pad the front; if it has more, the oldest entries are dropped so only the
// most recent n remain. Samples are assumed oldest-first. If samples is
// empty, the returned slice is filled with fill.
func PadTruncate[T any](samples []T, n int, fill T) []T {
	out := make([]T, n)
	if len(samples) == 0 {
		for i := range out {
			out[i] = fill
		}
		return out
	}
	if len(samples) >= n {
		copy(out, samples[len(samples)-n:])
		return out
	}
	padding := n - len(samples)
	for i := 0; i < padding; i++ {
		out[i] = samples[0]
	}
	copy(out[padding:], samples)
	return out
}

// Canonical sliding-window sample counts (spec.md §3).
const (
	SunspotCount      = 31
	SolarFluxCount    = 99
	PlanetaryKCount   = 72
	XRayCount         = 150
	SolarWindCount    = 1440
	IMFCount          = 150
	AuroraCount       = 48
	DSTCount          = 24
)
