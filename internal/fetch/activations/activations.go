// Package activations merges POTA and SOTA spot feeds into the client's
// combined activation-spot CSV (spec.md §4.E SUPPLEMENT).
package activations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
)

const feedName = "activations"

// Grounded on original_source/backend/ingestion/onta_service.py: POTA
// reports frequency in kHz, SOTA in MHz, so each source is converted to Hz
// independently before merging into one CSV. The header is the original's
// own field layout, not the semantically-equivalent layout this module's
// design notes once assumed.
const (
	potaURL = "https://api.pota.app/spot/activator"
	sotaURL = "https://api-db2.sota.org.uk/api/spots/50"
)

const csvHeader = "#call,Hz,unix,mode,grid,lat,lng,park,org"

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

type potaSpot struct {
	Activator string  `json:"activator"`
	Frequency string  `json:"frequency"`
	SpotTime  string  `json:"spotTime"`
	Mode      string  `json:"mode"`
	Grid4     string  `json:"grid4"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Reference string  `json:"reference"`
}

type sotaSpot struct {
	ActivatorCallsign string  `json:"activatorCallsign"`
	Frequency         float64 `json:"frequency"`
	TimeStamp         string  `json:"timeStamp"`
	Mode              string  `json:"mode"`
	AssociationCode   string  `json:"associationCode"`
	SummitCode        string  `json:"summitCode"`
}

func (f Fetcher) Refresh(ctx context.Context) error {
	var lines []string
	lines = append(lines, csvHeader)

	potaLines, potaErr := fetchPOTA(ctx)
	lines = append(lines, potaLines...)

	sotaLines, sotaErr := fetchSOTA(ctx)
	lines = append(lines, sotaLines...)

	if potaErr != nil && sotaErr != nil {
		return potaErr
	}

	if err := artifact.WriteText(f.Paths.Activations(), strings.Join(lines, "\n")+"\n"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

func fetchPOTA(ctx context.Context) ([]string, error) {
	resp, err := fetch.Get(ctx, feedName, potaURL, 10*time.Second)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var spots []potaSpot
	if err := json.NewDecoder(resp.Body).Decode(&spots); err != nil {
		return nil, &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	var out []string
	for _, s := range spots {
		freqKHz := parseFloatSafe(s.Frequency)
		unixTime := parseUnixSafe(s.SpotTime)
		out = append(out, fmt.Sprintf("%s,%.0f,%d,%s,%s,%.4f,%.4f,%s,POTA",
			s.Activator, freqKHz*1000, unixTime, s.Mode, s.Grid4, s.Latitude, s.Longitude, s.Reference))
	}
	return out, nil
}

func fetchSOTA(ctx context.Context) ([]string, error) {
	resp, err := fetch.Get(ctx, feedName, sotaURL, 10*time.Second)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var spots []sotaSpot
	if err := json.NewDecoder(resp.Body).Decode(&spots); err != nil {
		return nil, &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	var out []string
	for _, s := range spots {
		unixTime := parseUnixSafe(s.TimeStamp)
		ref := s.AssociationCode + "/" + s.SummitCode
		out = append(out, fmt.Sprintf("%s,%.0f,%d,%s,,,,%s,SOTA",
			s.ActivatorCallsign, s.Frequency*1e6, unixTime, s.Mode, ref))
	}
	return out, nil
}

func parseFloatSafe(s string) float64 {
	var v float64
	fmt.Sscanf(s, "%f", &v)
	return v
}

func parseUnixSafe(s string) int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return t.Unix()
}
