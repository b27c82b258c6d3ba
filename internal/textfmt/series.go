package textfmt

import (
	"fmt"
	"strings"
)

// FloatSeries renders one %.2f-formatted value per line, in order.
func FloatSeries(values []float64) string {
	lines := make([]string, len(values))
	for i, v := range values {
		lines[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(lines, "\n") + "\n"
}

// WeatherGridRow renders one fixed-width weather-grid point row:
// integer lat, integer lng, temperature C, humidity %, wind speed m/s,
// wind direction deg, pressure hPa, short condition label, timezone offset
// in seconds east of UTC.
type WeatherGridPoint struct {
	LatDeg, LngDeg   int
	TempC            float64
	HumidityPct      int
	WindSpeedMPS     float64
	WindDirDeg       int
	PressureHPa      float64
	Condition        string
	TZOffsetSeconds  int
}

func WeatherGridRow(p WeatherGridPoint) string {
	return fmt.Sprintf("%4d %4d %6.1f %3d %5.1f %3d %6.1f %-12s %6d",
		p.LatDeg, p.LngDeg, p.TempC, p.HumidityPct, p.WindSpeedMPS,
		p.WindDirDeg, p.PressureHPa, p.Condition, p.TZOffsetSeconds)
}

// SpotRecord is one canonical spot CSV line:
// posting_time,de_grid,de_call,dx_grid,dx_call,mode,hz,snr
type SpotRecord struct {
	PostingUnixTime int64
	DEGrid, DECall  string
	DXGrid, DXCall  string
	Mode            string
	Hz              int64
	SNR             int
}

func (s SpotRecord) CSV() string {
	return fmt.Sprintf("%d,%s,%s,%s,%s,%s,%d,%d",
		s.PostingUnixTime, s.DEGrid, s.DECall, s.DXGrid, s.DXCall, s.Mode, s.Hz, s.SNR)
}

// Swapped returns a copy with the DE/DX pair swapped, used when the query
// asks for spots heard BY a callsign rather than spots OF a callsign.
func (s SpotRecord) Swapped() SpotRecord {
	s.DEGrid, s.DXGrid = s.DXGrid, s.DEGrid
	s.DECall, s.DXCall = s.DXCall, s.DECall
	return s
}
