// Package spacewx fetches NOAA SWPC's current/forecast space-weather
// scales (R/S/G) and writes the fixed single-snapshot artifact the client
// reads for the band-conditions banner (spec.md §4.E).
package spacewx

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
)

const feedName = "spacewx"

// sourceURL is NOAA's current space-weather-scales product, a map keyed
// "-1","0","1" (yesterday/today/tomorrow) each holding R/S/G sub-objects.
// Grounded on original_source/backend/ingestion/noaa_fetcher.py.
const sourceURL = "https://services.swpc.noaa.gov/products/noaa-scales.json"

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

type scaleEntry struct {
	Scale string `json:"Scale"`
	Text  string `json:"Text"`
}

type dayScales struct {
	R scaleEntry `json:"R"`
	S scaleEntry `json:"S"`
	G scaleEntry `json:"G"`
}

func (f Fetcher) Refresh(ctx context.Context) error {
	resp, err := fetch.Get(ctx, feedName, sourceURL, 10*time.Second)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var days map[string]dayScales
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	today := days["0"]
	rendered := fmt.Sprintf("R%s S%s G%s\n", today.R.Scale, today.S.Scale, today.G.Scale)

	if err := artifact.WriteText(f.Paths.SpaceWeather(), rendered); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}
