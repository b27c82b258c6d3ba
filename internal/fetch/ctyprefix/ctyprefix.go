// Package ctyprefix fetches the CTY country/prefix database and writes it
// in the client's flat prefix-table format (spec.md §4.E, §8 scenario 6:
// the upstream file is west-positive longitude, the client wants
// east-positive).
package ctyprefix

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
)

const feedName = "ctyprefix"

// sourceURL is the country-files.com "WT Modified" CTY database. Grounded
// on original_source/backend/ingestion/cty_service.py, which parses the
// colon-delimited header line of each entry and its following
// semicolon-terminated, comma-separated prefix list.
const sourceURL = "https://www.country-files.com/cty/cty_wt_mod.dat"

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

	rendered, err := parseCTY(resp.Body)
	if err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	if err := artifact.WriteText(f.Paths.CTYPrefix(), rendered); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	return nil
}

type entry struct {
	name             string
	lat, lng         float64
	adif             string
}

// parseCTY walks the CTY_WT_MOD.DAT grammar: a header line
// "Name: CQ: ITU: Cont: Lat: Lon: TZ: Pfx:" followed by one or more
// continuation lines holding a comma-separated, ';'-terminated prefix
// list, where each prefix may carry a "(CQ)[ITU]<lat/lng>" override.
func parseCTY(body io.Reader) (string, error) {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out strings.Builder
	out.WriteString("# prefix         lat     lng  adif\n")

	var current entry
	var buf strings.Builder
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		for _, tok := range strings.Split(strings.TrimSuffix(strings.TrimSpace(buf.String()), ";"), ",") {
			writePrefix(&out, tok, current)
		}
		buf.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "    ") && strings.Count(line, ":") >= 7 {
			flush()
			fields := strings.Split(line, ":")
			if len(fields) < 8 {
				continue
			}
			lat, _ := strconv.ParseFloat(strings.TrimSpace(fields[4]), 64)
			lngWest, _ := strconv.ParseFloat(strings.TrimSpace(fields[5]), 64)
			current = entry{
				name: strings.TrimSpace(fields[0]),
				lat:  lat,
				// Source longitude is west-positive; the client's map
				// convention is east-positive (spec.md §8 scenario 6).
				lng:  -lngWest,
				adif: strings.TrimSpace(strings.TrimSuffix(fields[7], ";")),
			}
			continue
		}
		buf.WriteString(strings.TrimSpace(line))
	}
	flush()
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// writePrefix handles one prefix token, which may carry a
// "PFX<lat/lng>" override and/or a leading "=" exact-callsign marker that
// this table strips since it renders prefixes only.
func writePrefix(out *strings.Builder, tok string, def entry) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return
	}
	tok = strings.TrimPrefix(tok, "=")
	tok = strings.TrimPrefix(tok, "*")

	lat, lng := def.lat, def.lng
	if idx := strings.Index(tok, "<"); idx >= 0 {
		if end := strings.Index(tok, ">"); end > idx {
			if la, lo, ok := parseOverride(tok[idx+1 : end]); ok {
				lat, lng = la, lo
			}
		}
		tok = tok[:idx]
	}
	fmt.Fprintf(out, "%-12s %7.2f %7.2f  %s\n", tok, lat, lng, def.adif)
}

func parseOverride(s string) (lat, lng float64, ok bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	la, err1 := strconv.ParseFloat(parts[0], 64)
	lo, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return la, -lo, true
}
