// Package solarwind fetches NOAA SWPC's real-time solar wind plasma and
// magnetic-field products and produces the solar-wind-speed and IMF
// sliding windows the propagation engine's storm penalties read (spec.md
// §4.E, §4.D).
package solarwind

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "solarwind"

// plasmaURL carries bulk speed; magURL carries the Bz component. Grounded
// on original_source/backend/ingestion/noaa_fetcher.py, which resamples
// both onto fixed cadences (1440 points for plasma, 150 for the field)
// and zero-pads any gap rather than interpolating.
const (
	plasmaURL = "https://services.swpc.noaa.gov/products/solar-wind/plasma-5-minute.json"
	magURL    = "https://services.swpc.noaa.gov/products/solar-wind/mag-5-minute.json"
)

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	speed, err := fetchColumn(ctx, plasmaURL, 2)
	if err != nil {
		return err
	}
	if err := artifact.SlidingWindow(f.Paths.SolarWind(), speed, textfmt.SolarWindCount, "0.0"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}

	bz, err := fetchColumn(ctx, magURL, 3)
	if err != nil {
		return err
	}
	if err := artifact.SlidingWindow(f.Paths.IMF(), bz, textfmt.IMFCount, "0.0"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

// fetchColumn decodes a SWPC "array of rows, first row is header" JSON
// product and extracts column index col (0 is always time_tag) as decimal
// strings, skipping rows whose value is the upstream's own missing-data
// marker of the literal string "null".
func fetchColumn(ctx context.Context, url string, col int) ([]string, error) {
	resp, err := fetch.Get(ctx, feedName, url, 10*time.Second)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows [][]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	var out []string
	for i, row := range rows {
		if i == 0 || col >= len(row) {
			continue
		}
		raw, ok := row[col].(string)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		out = append(out, strconv.FormatFloat(v, 'f', 1, 64))
	}
	return out, nil
}
