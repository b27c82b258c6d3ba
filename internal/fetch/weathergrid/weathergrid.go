// Package weathergrid incrementally refreshes a fixed global grid of
// weather points, persisting a cursor so each scheduler tick resumes
// where the last one left off (spec.md §4.J).
package weathergrid

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/fetch"
	"github.com/hamprop/backend/internal/textfmt"
)

const feedName = "weathergrid"

const (
	latStep  = 4
	lngStep  = 5
	batchSize = 50
)

// point is one grid coordinate, latitude −90..90 then longitude −180..180,
// sorted by longitude then latitude (spec.md §4.J).
type point struct {
	lat, lng int
}

// grid is the fixed ≈3358-point enumeration, computed once.
var grid = buildGrid()

func buildGrid() []point {
	var pts []point
	for lng := -180; lng <= 180; lng += lngStep {
		for lat := -90; lat <= 90; lat += latStep {
			pts = append(pts, point{lat: lat, lng: lng})
		}
	}
	return pts
}

// Fetcher refreshes a batch of grid points per tick and always
// regenerates the full text artifact from the accumulated cache.
type Fetcher struct {
	Paths artifact.Path
}

func (f Fetcher) Name() string { return feedName }

func (f Fetcher) Refresh(ctx context.Context) error {
	cache, err := loadCache(f.Paths.WeatherGrid() + ".cache.json")
	if err != nil {
		cache = map[string]textfmt.WeatherGridPoint{}
	}
	cursor := loadCursor(f.Paths.WeatherGridCursor())

	var rateLimited error
	advanced := 0
	for advanced < batchSize {
		idx := (cursor + advanced) % len(grid)
		pt := grid[idx]

		wp, err := fetchPoint(ctx, pt.lat, pt.lng)
		if fetch.IsRateLimited(err) {
			rateLimited = err
			break
		}
		if err == nil {
			cache[key(pt.lat, pt.lng)] = wp
		}
		advanced++
	}
	cursor = (cursor + advanced) % len(grid)

	if err := saveCursor(f.Paths.WeatherGridCursor(), cursor); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}
	if err := saveCache(f.Paths.WeatherGrid()+".cache.json", cache); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}

	rendered := render(cache)
	if err := artifact.WriteText(f.Paths.WeatherGrid(), rendered); err != nil {
		return &fetch.Error{Feed: feedName, Kind: fetch.ErrIO, Err: err}
	}

	return rateLimited
}

func key(lat, lng int) string {
	return strconv.Itoa(lat) + "," + strconv.Itoa(lng)
}

// render always walks the full grid in its canonical order, emitting a
// zeroed placeholder row for any point not yet in cache and a blank line
// whenever the longitude column changes — so a reader sees a complete,
// correctly-shaped grid from the very first tick (spec.md §4.J, §8
// scenario 8).
func render(cache map[string]textfmt.WeatherGridPoint) string {
	var b strings.Builder
	lastLng := grid[0].lng - 1

	for _, pt := range grid {
		if pt.lng != lastLng {
			if lastLng != grid[0].lng-1 {
				b.WriteByte('\n')
			}
			lastLng = pt.lng
		}
		wp, ok := cache[key(pt.lat, pt.lng)]
		if !ok {
			wp = textfmt.WeatherGridPoint{LatDeg: pt.lat, LngDeg: pt.lng}
		}
		b.WriteString(textfmt.WeatherGridRow(wp))
		b.WriteByte('\n')
	}
	return b.String()
}

// fetchPoint queries Open-Meteo's keyless current-weather endpoint for one
// grid coordinate.
func fetchPoint(ctx context.Context, lat, lng int) (textfmt.WeatherGridPoint, error) {
	url := fmt.Sprintf(
		"https://api.open-meteo.com/v1/forecast?latitude=%d&longitude=%d&current=temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,pressure_msl,weather_code&timezone=GMT",
		lat, lng)
	resp, err := fetch.Get(ctx, feedName, url, 10*time.Second)
	if err != nil {
		return textfmt.WeatherGridPoint{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		UTCOffsetSeconds int `json:"utc_offset_seconds"`
		Current          struct {
			Temperature2m       float64 `json:"temperature_2m"`
			RelativeHumidity2m  int     `json:"relative_humidity_2m"`
			WindSpeed10m        float64 `json:"wind_speed_10m"`
			WindDirection10m    int     `json:"wind_direction_10m"`
			PressureMSL         float64 `json:"pressure_msl"`
			WeatherCode         int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return textfmt.WeatherGridPoint{}, &fetch.Error{Feed: feedName, Kind: fetch.ErrParse, Err: err}
	}

	return textfmt.WeatherGridPoint{
		LatDeg:          lat,
		LngDeg:          lng,
		TempC:           payload.Current.Temperature2m,
		HumidityPct:     payload.Current.RelativeHumidity2m,
		WindSpeedMPS:    payload.Current.WindSpeed10m,
		WindDirDeg:      payload.Current.WindDirection10m,
		PressureHPa:     payload.Current.PressureMSL,
		Condition:       conditionLabel(payload.Current.WeatherCode),
		TZOffsetSeconds: payload.UTCOffsetSeconds,
	}, nil
}

// conditionLabel maps Open-Meteo's WMO weather codes to the client's short
// condition labels.
func conditionLabel(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "cloudy"
	case code <= 48:
		return "fog"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "showers"
	case code <= 99:
		return "storm"
	default:
		return "unknown"
	}
}

func loadCache(path string) (map[string]textfmt.WeatherGridPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cache map[string]textfmt.WeatherGridPoint
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return cache, nil
}

func saveCache(path string, cache map[string]textfmt.WeatherGridPoint) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return err
	}
	return artifact.WriteFile(path, data, 0o644)
}

func loadCursor(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return n
}

func saveCursor(path string, cursor int) error {
	return artifact.WriteText(path, strconv.Itoa(cursor)+"\n")
}
