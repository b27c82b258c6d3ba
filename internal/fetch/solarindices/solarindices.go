// Package solarindices fetches NOAA SWPC's daily solar indices text feed
// and derives the sunspot-number and solar-flux sliding windows (spec.md
// §4.E "Solar indices").
package solarindices

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "solarindices"

// sourceURL is NOAA SWPC's daily solar indices text product (grounded on
// original_source/backend/ingestion/noaa_fetcher.py's SOLAR_INDICES_URL).
const sourceURL = "https://services.swpc.noaa.gov/text/daily-solar-indices.txt"

// Fetcher implements fetch.Fetcher for the sunspot-number and solar-flux
// sliding windows.
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

	ssnRecords, fluxRecords, err := parseSolarIndices(resp.Body)
	if err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	if err := artifact.SlidingWindow(f.Paths.Sunspot(), ssnRecords, textfmt.SunspotCount, "0"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	if err := artifact.SlidingWindow(f.Paths.SolarFlux(), fluxRecords, textfmt.SolarFluxCount, "0"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

// parseSolarIndices reads NOAA's whitespace-aligned daily-solar-indices.txt
// and returns one sunspot-number record per data line and three replicated
// solar-flux records per line (the client samples flux three times a day,
// per spec.md §4.E).
func parseSolarIndices(body io.Reader) ([]string, []string, error) {
	scanner := bufio.NewScanner(body)
	var ssn, flux []string

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ":") || strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 5 {
			continue
		}
		year, month, day, swFlux, ssnVal := parts[0], parts[1], parts[2], parts[3], parts[4]
		if _, err := strconv.Atoi(year); err != nil {
			continue
		}
		ssn = append(ssn, fmt.Sprintf("%s-%s-%s %s", year, month, day, ssnVal))
		flux = append(flux, swFlux, swFlux, swFlux)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return ssn, flux, nil
}
