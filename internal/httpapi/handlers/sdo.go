package handlers

import (
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"

	"github.com/hamprop/backend/internal/fetch/sdo"
)

// sdoFilenamePattern extracts wavelength and resolution from a request
// path like "/SDO/171_340.bmp.z", matching
// original_source/backend/ingestion/sdo_service.py's own filename
// convention.
var sdoFilenamePattern = regexp.MustCompile(`(\w+)_(\d+)\.bmp\.z$`)

// SDO serves the memoized transcoded SDO imagery artifact, fetching and
// resampling it on first request for a given wavelength/resolution pair
// (spec.md §4.I).
func (h Handlers) SDO(w http.ResponseWriter, r *http.Request) {
	m := sdoFilenamePattern.FindStringSubmatch(path.Base(r.URL.Path))
	if m == nil {
		http.NotFound(w, r)
		return
	}
	wavelength := m[1]
	resolution, err := strconv.Atoi(m[2])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	artifactPath := h.Paths.SDO(wavelength, resolution)
	if _, err := os.Stat(artifactPath); err != nil {
		fetcher := sdo.New(h.Paths, wavelength, resolution)
		if err := fetcher.Refresh(r.Context()); err != nil {
			h.Logger.Warn("sdo fetch failed", "error", err)
			http.Error(w, "imagery unavailable", http.StatusBadGateway)
			return
		}
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, artifactPath)
}
