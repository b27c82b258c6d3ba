// Package planetaryk fetches NOAA SWPC's planetary K-index products and
// produces the combined historical+forecast sliding window (spec.md §4.E).
package planetaryk

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "planetaryk"

// historyURL is NOAA's 1-minute planetary-K JSON product; forecastURL is
// the 3-day Kp forecast text product. Grounded on
// original_source/backend/ingestion/noaa_fetcher.py, which merges exactly
// these two feeds into one rolling window: 56 historical samples followed
// by 16 forecast samples.
const (
	historyURL  = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json"
	forecastURL = "https://services.swpc.noaa.gov/text/3-day-forecast.txt"
)

const (
	historySamples  = 56
	forecastSamples = 16
)

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	history, err := fetchHistory(ctx)
	if err != nil {
		return err
	}
	forecast, err := fetchForecast(ctx)
	if err != nil {
		// A missing forecast still lets the historical record through;
		// pad the gap with the last known value instead of failing the
		// whole feed.
		fill := "0.00"
		if len(history) > 0 {
			fill = history[len(history)-1]
		}
		forecast = make([]string, forecastSamples)
		for i := range forecast {
			forecast[i] = fill
		}
	}

	combined := append(textfmt.PadTruncate(history, historySamples, "0.00"), forecast...)
	return wrapIO(artifact.SlidingWindow(f.Paths.PlanetaryK(), combined, textfmt.PlanetaryKCount, "0.00"))
}

func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
}

// fetchHistory decodes NOAA's JSON array rows, [time_tag, Kp, estimated_Kp,
// kp], keeping the Kp column. SWPC's schema keeps the first row as a
// header, not data.
func fetchHistory(ctx context.Context) ([]string, error) {
	resp, err := fetch.Get(ctx, feedName, historyURL, 10*time.Second)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows [][]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	var out []string
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		kp, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		out = append(out, strconv.FormatFloat(kp, 'f', 2, 64))
	}
	return out, nil
}

// fetchForecast parses NOAA's "3-day-forecast.txt" Kp table, which lists
// eight 3-hour Kp values per day for three days (24 values total); this
// feed keeps the first 16 (covering roughly the next two days).
func fetchForecast(ctx context.Context) ([]string, error) {
	resp, err := fetch.Get(ctx, feedName, forecastURL, 10*time.Second)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return parseForecastKp(resp.Body)
}

func parseForecastKp(body io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(body)
	inTable := false
	var out []string

	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "Kp index") {
			inTable = true
			continue
		}
		if !inTable {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for _, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil || v < 0 || v > 9 {
				continue
			}
			out = append(out, strconv.FormatFloat(v, 'f', 2, 64))
		}
		if len(out) >= forecastSamples {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return textfmt.PadTruncate(out, forecastSamples, "0.00"), nil
}
