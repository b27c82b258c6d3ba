// Package dst fetches the Kyoto World Data Center's real-time Dst index
// and writes the 24-sample sliding window the propagation engine's storm
// terms read (spec.md §4.E).
package dst

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "dst"

// sourceURL is the Kyoto WDC's real-time Dst provisional text product.
// Grounded on original_source/backend/ingestion/noaa_fetcher.py, which
// parses this fixed-column format directly (values right-justified in
// 4-character fields, "9999" marking a missing hourly reading) and falls
// back to a dummy flat series if the upstream is unreachable, so a reader
// always gets a complete window rather than a parse failure.
const sourceURL = "https://wdc.kugi.kyoto-u.ac.jp/dst_realtime/presentmonth/dst.for.request"

const missingSentinel = "9999"

type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	resp, err := fetch.Get(ctx, feedName, sourceURL, 10*time.Second)
	if err != nil {
		return writeDummy(f.Paths)
	}
	defer resp.Body.Close()

	values, err := parseDst(resp.Body)
	if err != nil || len(values) == 0 {
		return writeDummy(f.Paths)
	}

	if err := artifact.SlidingWindow(f.Paths.DST(), values, textfmt.DSTCount, "0"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

// parseDst reads the Kyoto WDC fixed-width hourly table: each data line
// starts with a year/month/day header field, then 24 hourly Dst values in
// 4-character fields. Fields holding the "9999" sentinel value are skipped.
func parseDst(body io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(body)
	var out []string

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 20 {
			continue
		}
		rest := line
		if idx := strings.Index(line, "DST"); idx >= 0 && idx+3 < len(line) {
			rest = line[idx+3:]
		}
		for i := 0; i+4 <= len(rest); i += 4 {
			field := strings.TrimSpace(rest[i : i+4])
			if field == "" || field == missingSentinel {
				continue
			}
			if _, err := strconv.Atoi(field); err != nil {
				continue
			}
			out = append(out, field)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// writeDummy emits a flat zero series when Kyoto WDC is unreachable, the
// same degrade-gracefully behavior as the original fetcher.
func writeDummy(paths artifact.Path) error {
	zeros := make([]string, textfmt.DSTCount)
	for i := range zeros {
		zeros[i] = "0"
	}
	if err := artifact.SlidingWindow(paths.DST(), zeros, textfmt.DSTCount, "0"); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}
