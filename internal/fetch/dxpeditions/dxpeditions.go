// Package dxpeditions scrapes NG3K's Amateur DXpedition Operations page
// into a flat CSV artifact (spec.md §4.E SUPPLEMENT).
package dxpeditions

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
)

const feedName = "dxpeditions"

// sourceURL is NG3K's DXpedition calendar, an HTML table with no JSON
// API. Grounded on original_source/backend/ingestion/dxped_service.py,
// which regex-scrapes "adxoitem" table rows rather than parsing the DOM,
// and dates formatted like "2026 Jan01".
const sourceURL = "https://www.ng3k.com/Misc/adxo.html"

var (
	rowPattern  = regexp.MustCompile(`(?s)<tr class="adxoitem">(.*?)</tr>`)
	cellPattern = regexp.MustCompile(`(?s)<td[^>]*>(.*?)</td>`)
	callPattern = regexp.MustCompile(`<span class="call">([^<]+)</span>`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

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

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}

	rendered := render(string(body))
	if err := artifact.WriteText(f.Paths.DXPeditions(), rendered); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

func render(html string) string {
	var b strings.Builder
	b.WriteString("\"1\"\n\"NG3K\"\n\"https://www.ng3k.com/Misc/adxo.html\"\n")

	for _, rowMatch := range rowPattern.FindAllStringSubmatch(html, -1) {
		cells := cellPattern.FindAllStringSubmatch(rowMatch[1], -1)
		if len(cells) < 3 {
			continue
		}
		dateRange := tagPattern.ReplaceAllString(cells[0][1], "")
		start, end := splitDateRange(dateRange)

		call := ""
		if m := callPattern.FindStringSubmatch(rowMatch[1]); m != nil {
			call = m[1]
		}
		entity := tagPattern.ReplaceAllString(cells[1][1], "")

		fmt.Fprintf(&b, "%d,%d,%s,%s,%s\n", start, end, strings.TrimSpace(entity), call, sourceURL)
	}
	return b.String()
}

// splitDateRange parses NG3K's "2026 Jan01-Jan15" style range into two
// unix timestamps using the original's own "%Y %b%d" layout for each
// half, reusing the leading year for the end date when it omits one.
func splitDateRange(s string) (startUnix, endUnix int64) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	fields := strings.Fields(parts[0])
	if len(fields) != 2 {
		return 0, 0
	}
	year := fields[0]

	start, err := time.Parse("2006 Jan02", year+" "+fields[1])
	if err != nil {
		return 0, 0
	}
	endStr := strings.TrimSpace(parts[1])
	if _, err := strconv.Atoi(endStr[:4]); err != nil {
		endStr = year + " " + endStr
	}
	end, err := time.Parse("2006 Jan02", endStr)
	if err != nil {
		end = start
	}
	return start.Unix(), end.Unix()
}
