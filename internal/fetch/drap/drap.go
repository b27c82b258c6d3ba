// Package drap fetches NOAA SWPC's D-Region Absorption Prediction grid and
// writes it as a flat per-latitude-band text artifact (spec.md §4.E
// SUPPLEMENT).
//
// The original service (original_source/backend/ingestion/drap_service.py)
// renders this feed as a 660x330 bitmap via a PIL bilinear resize of the
// upstream grid — the same pipeline the propagation engine's render.go
// already owns for MUF/REL maps. DRAP is a reserved, thinly-specified
// static route in this system; this fetcher keeps the narrower text-grid
// scope documented in DESIGN.md rather than duplicating that rendering
// pipeline for a route with no further consumer.
package drap

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
)

const feedName = "drap"

const sourceURL = "https://services.swpc.noaa.gov/text/drap_global_frequencies.txt"

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	resp, err := fetch.Get(ctx, feedName, sourceURL, 15*time.Second)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	rendered, err := parseDRAP(resp.Body)
	if err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	if err := artifact.WriteText(f.Paths.DRAP(), rendered); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

// parseDRAP reads the fixed-width latitude/longitude MHz grid NOAA
// publishes and re-renders each data row (skipping comment lines starting
// with '#' or ':') as one comma-separated latitude band.
func parseDRAP(body io.Reader) (string, error) {
	scanner := bufio.NewScanner(body)
	var b strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ":") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if _, err := strconv.ParseFloat(fields[0], 64); err != nil {
			continue
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}
