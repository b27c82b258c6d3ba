package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/propagation"
	"github.com/hamprop/backend/internal/textfmt"
)

// VOACAPArea, VOACAPMUF and VOACAPTOA all invoke §4.D's grid evaluation,
// differing only in which scalar field gets rendered (spec.md §4.I).
func (h Handlers) VOACAPArea(w http.ResponseWriter, r *http.Request) {
	h.serveMap(w, r, propagation.MetricREL)
}

func (h Handlers) VOACAPMUF(w http.ResponseWriter, r *http.Request) {
	h.serveMap(w, r, propagation.MetricMUF)
}

func (h Handlers) VOACAPTOA(w http.ResponseWriter, r *http.Request) {
	h.serveMap(w, r, propagation.MetricTOA)
}

func (h Handlers) serveMap(w http.ResponseWriter, r *http.Request, metric propagation.Metric) {
	req, width, height, err := h.parseGridRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	primary, dimmed, err := h.Engine.EvaluateGrid(propagation.GridRequest{Request: req, Width: width, Height: height}, metric)
	if err != nil {
		h.Logger.Warn("propagation grid evaluation failed", "error", err)
		http.Error(w, "evaluation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-2Z-lengths", fmt.Sprintf("%d %d", len(primary), len(dimmed)))
	w.Write(primary)
	w.Write(dimmed)
}

// BandConditions invokes §4.D's point mode 24 times across the 9 canonical
// bands and renders the table of spec.md §3.
func (h Handlers) BandConditions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	txLat, err1 := parseFloat(q.Get("TXLAT"))
	txLng, err2 := parseFloat(q.Get("TXLNG"))
	rxLat, err3 := parseFloat(q.Get("RXLAT"))
	rxLng, err4 := parseFloat(q.Get("RXLNG"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		http.Error(w, "invalid coordinates", http.StatusBadRequest)
		return
	}

	toaDeg, _ := parseFloat(q.Get("TOA"))
	pow, _ := strconv.Atoi(q.Get("POW"))
	path := parsePath(q.Get("PATH"))
	year, month := currentYearMonth()
	weather := h.latestWeather()

	var hourlyRel [24][]float64
	for hour := 0; hour < 24; hour++ {
		rel := make([]float64, len(textfmt.CanonicalBandsMHz))
		for i, band := range textfmt.CanonicalBandsMHz {
			req := propagation.Request{
				TxLatDeg: txLat, TxLngDeg: txLng,
				RxLatDeg: rxLat, RxLngDeg: rxLng,
				FreqMHz: band, TakeoffDeg: toaDeg,
				Year: year, Month: month, UTCHour: float64(hour),
				Path: path, Weather: weather,
			}
			rel[i] = h.Engine.EvaluatePoint(req).REL
		}
		hourlyRel[hour] = rel
	}

	currentHour, _ := strconv.Atoi(q.Get("UTC"))
	params := textfmt.BandConditionsParams{
		PowerWatts: pow,
		Mode:       modeLabel(q.Get("MODE")),
		TOADeg:     toaDeg,
		LongPath:   path == propagation.LongPath,
		SSN:        weather.SSN,
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(textfmt.BandConditionsTable(hourlyRel, currentHour, params)))
}

func (h Handlers) parseGridRequest(r *http.Request) (propagation.Request, int, int, error) {
	q := r.URL.Query()

	txLat, e1 := parseFloat(q.Get("TXLAT"))
	txLng, e2 := parseFloat(q.Get("TXLNG"))
	if e1 != nil || e2 != nil {
		return propagation.Request{}, 0, 0, fmt.Errorf("invalid TXLAT/TXLNG")
	}

	width, e3 := strconv.Atoi(q.Get("WIDTH"))
	height, e4 := strconv.Atoi(q.Get("HEIGHT"))
	if e3 != nil || e4 != nil || width <= 0 || height <= 0 {
		width, height = 660, 330
	}

	mhz, _ := parseFloat(q.Get("MHZ"))
	toa, _ := parseFloat(q.Get("TOA"))
	year, e5 := strconv.Atoi(q.Get("YEAR"))
	month, e6 := strconv.Atoi(q.Get("MONTH"))
	if e5 != nil || e6 != nil {
		year, month = currentYearMonth()
	}
	utc, _ := parseFloat(q.Get("UTC"))
	path := parsePath(q.Get("PATH"))

	req := propagation.Request{
		TxLatDeg: txLat, TxLngDeg: txLng,
		FreqMHz: mhz, TakeoffDeg: toa,
		Year: year, Month: month, UTCHour: utc,
		Path: path, Weather: h.latestWeather(),
	}
	return req, width, height, nil
}

// latestWeather reads the most recently ingested SSN, Kp, Bz and solar
// wind speed off disk, so live map/band-condition requests feed the
// engine's storm penalties and Kp depression instead of running with
// always-quiet conditions (spec.md §4.D).
func (h Handlers) latestWeather() propagation.SpaceWeather {
	var weather propagation.SpaceWeather

	if line, ok := artifact.LastLine(h.Paths.Sunspot()); ok {
		weather.SSN = lastFieldInt(line)
	}
	if line, ok := artifact.LastLine(h.Paths.PlanetaryK()); ok {
		weather.Kp, _ = strconv.ParseFloat(strings.TrimSpace(line), 64)
	}
	if line, ok := artifact.LastLine(h.Paths.IMF()); ok {
		weather.Bz, _ = strconv.ParseFloat(strings.TrimSpace(line), 64)
	}
	if line, ok := artifact.LastLine(h.Paths.SolarWind()); ok {
		weather.SolarWindKmS, _ = strconv.ParseFloat(strings.TrimSpace(line), 64)
	}
	return weather
}

// lastFieldInt parses the trailing whitespace-separated field of line as
// an int, matching the sunspot artifact's "YYYY-MM-DD SSN" row shape.
func lastFieldInt(line string) int {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0
	}
	v, _ := strconv.Atoi(fields[len(fields)-1])
	return v
}

// modeCodes enumerates the client's numeric MODE codes (voacap_service.py's
// mode table), spec.md §9: "MODE ∈ {CW, SSB, USB, LSB, FT8} mapped from
// numeric codes {1, 38, 39, 40, 19}". An unrecognized or already-symbolic
// value passes through unchanged.
var modeCodes = map[string]string{
	"1":  "CW",
	"38": "SSB",
	"39": "USB",
	"40": "LSB",
	"19": "FT8",
}

func modeLabel(raw string) string {
	if label, ok := modeCodes[raw]; ok {
		return label
	}
	return raw
}

// parsePath maps the client's PATH parameter to Short/LongPath. The
// original service takes PATH as a numeric code (1 == long path); this
// also accepts the symbolic "LP"/"SP" a caller might send directly.
func parsePath(raw string) propagation.PathMode {
	if raw == "1" || raw == "LP" {
		return propagation.LongPath
	}
	return propagation.ShortPath
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
