// Package xray fetches NOAA SWPC's GOES X-ray flux feed and derives the
// 10-minute-cadence sliding window (spec.md §4.E).
package xray

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "xray"

// sourceURL is NOAA's 1-day GOES X-ray flux JSON product. Grounded on
// original_source/backend/ingestion/noaa_fetcher.py, which samples this
// feed at a fixed 10-minute cadence by keeping only records whose minute
// ends in 5 (minute%10==5) — the upstream feed itself reports roughly
// every minute, so this is a deliberate downsample to the cadence the
// client's 150-sample window expects. Each row carries both the short
// (0.05-0.4nm) and long (0.1-0.8nm) channel readings for that timestamp.
const sourceURL = "https://services.swpc.noaa.gov/json/goes/primary/xrays-1-day.json"

// rowTimestampLayout matches the upstream feed's "time_tag" field, e.g.
// "2026-02-01T11:05:00Z".
const rowTimestampLayout = "2006-01-02T15:04:05Z"

// channels accumulates the two flux readings NOAA reports for one sampled
// timestamp.
type channels struct {
	short, long float64
	t           time.Time
}

// fillRow is the zeroed placeholder row used to pad a short window,
// matching a real row's fixed-width shape with an all-zero timestamp and
// zero flux, rather than time.Time's zero value (year 1).
var fillRow = fmt.Sprintf("%4d %2d %2d  %s   00000  00000     %8.2e    %8.2e",
	0, 0, 0, "0000", 0.0, 0.0)

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	resp, err := fetch.Get(ctx, feedName, sourceURL, 10*time.Second)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var rows []struct {
		TimeTag string  `json:"time_tag"`
		Flux    float64 `json:"flux"`
		Energy  string  `json:"energy"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	byTimestamp := map[string]*channels{}

	for _, row := range rows {
		t, err := time.Parse(rowTimestampLayout, row.TimeTag)
		if err != nil || t.Minute()%10 != 5 {
			continue
		}
		key := row.TimeTag
		c, ok := byTimestamp[key]
		if !ok {
			c = &channels{t: t}
			byTimestamp[key] = c
		}
		switch row.Energy {
		case "0.05-0.4nm":
			c.short = row.Flux
		case "0.1-0.8nm":
			c.long = row.Flux
		}
	}

	keys := make([]string, 0, len(byTimestamp))
	for k := range byTimestamp {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	samples := make([]string, 0, len(keys))
	for _, k := range keys {
		samples = append(samples, formatRow(byTimestamp[k]))
	}

	if err := artifact.SlidingWindow(f.Paths.XRay(), samples, textfmt.XRayCount, fillRow); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

// formatRow renders one dual-channel X-ray row in the reference format:
// "YYYY MM DD HHMM   00000  00000     short    long" (noaa_fetcher.py's
// "%Y %m %d %H%M"-keyed merge, with its literal sentinel gap columns).
func formatRow(c *channels) string {
	return fmt.Sprintf("%4d %2d %2d  %s   00000  00000     %8.2e    %8.2e",
		c.t.Year(), int(c.t.Month()), c.t.Day(), c.t.Format("1504"), c.short, c.long)
}
