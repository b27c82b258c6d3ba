package textfmt

import (
	"fmt"
	"strings"
)

// CanonicalBandsMHz lists the nine bands a band-conditions table reports,
// ascending frequency (spec.md §3, §8 scenario 3).
var CanonicalBandsMHz = []float64{3.6, 7.1, 10.1, 14.2, 18.1, 21.2, 24.9, 28.4, 50.1}

// BandConditionsParams is the line-2 parameter summary of a band-conditions
// table: "<power>W,<mode>,TOA>n,<SP|LP>,S=<ssn>".
type BandConditionsParams struct {
	PowerWatts int
	Mode       string // e.g. "SSB", "CW", "FT8"
	TOADeg     float64
	LongPath   bool
	SSN        int
}

func (p BandConditionsParams) String() string {
	path := "SP"
	if p.LongPath {
		path = "LP"
	}
	return fmt.Sprintf("%dW,%s,TOA>%s,%s,S=%d", p.PowerWatts, p.Mode, trimTrailingZero(p.TOADeg), path, p.SSN)
}

func trimTrailingZero(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}

// BandConditionsTable renders the 26-line band-conditions text block:
// line 1 is current-hour reliabilities (two decimals) across the nine
// canonical bands; line 2 is the parameter summary; lines 3-25 are hourly
// forecasts for hours 1..23 and line 26 is hour 0, each "H rel1,...,rel9".
//
// hourlyRel must have 24 entries (index = UTC hour 0..23), each a slice of
// 9 reliabilities in CanonicalBandsMHz order. currentHour selects which of
// those 24 rows becomes line 1.
func BandConditionsTable(hourlyRel [24][]float64, currentHour int, params BandConditionsParams) string {
	var b strings.Builder

	b.WriteString(formatRelList(hourlyRel[currentHour%24]))
	b.WriteByte('\n')

	b.WriteString(params.String())
	b.WriteByte('\n')

	for h := 1; h <= 23; h++ {
		fmt.Fprintf(&b, "%d %s\n", h, formatRelList(hourlyRel[h]))
	}
	fmt.Fprintf(&b, "%d %s\n", 0, formatRelList(hourlyRel[0]))

	return b.String()
}

func formatRelList(rel []float64) string {
	parts := make([]string, len(rel))
	for i, r := range rel {
		parts[i] = fmt.Sprintf("%.2f", r)
	}
	return strings.Join(parts, ",")
}
