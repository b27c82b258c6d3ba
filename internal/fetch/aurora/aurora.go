// Package aurora fetches NOAA SWPC's OVATION aurora forecast and maintains
// a rolling 48-point history keyed by observation time (spec.md §4.E).
package aurora

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "aurora"

// sourceURL is NOAA's OVATION aurora forecast, a grid of per-cell aurora
// probabilities rather than a time series; each poll is reduced to the
// highest cell value. Grounded on
// original_source/backend/ingestion/noaa_fetcher.py, which therefore
// accumulates its own rolling 48-point history across polls rather than
// replacing the window wholesale each time.
const sourceURL = "https://services.swpc.noaa.gov/json/ovation_aurora_latest.json"

type Fetcher struct {
	Paths artifact.Path
	// NowUnix overrides the observation clock in tests; nil means time.Now.
	NowUnix func() int64
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	resp, err := fetch.Get(ctx, feedName, sourceURL, 10*time.Second)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var payload struct {
		Coordinates [][3]float64 `json:"coordinates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	power := 0.0
	for _, c := range payload.Coordinates {
		if c[2] > power {
			power = c[2]
		}
	}

	now := time.Now().Unix()
	if f.NowUnix != nil {
		now = f.NowUnix()
	}
	newSample := strconv.FormatInt(now, 10) + " " + strconv.FormatFloat(power, 'f', 2, 64)

	fill := strconv.FormatInt(now-textfmt.AuroraCount*1800, 10) + " 0.00"
	if err := artifact.SlidingWindow(f.Paths.Aurora(), []string{newSample}, textfmt.AuroraCount, fill); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}
