package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IPGeoloc proxies an IP → lat/lon lookup through a keyless geolocation
// API and emits the client's fixed key=value block (spec.md §4.I).
func (h Handlers) IPGeoloc(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")

	url := "https://ip-api.com/json/" + ip
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		h.Logger.Warn("ip geolocation lookup failed", "error", err)
		http.Error(w, "geolocation unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	var payload struct {
		Lat   float64 `json:"lat"`
		Lon   float64 `json:"lon"`
		Query string  `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		http.Error(w, "geolocation unavailable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "LAT=%.4f\nLNG=%.4f\nIP=%s\nCREDIT=ip-api.com\n", payload.Lat, payload.Lon, payload.Query)
}
