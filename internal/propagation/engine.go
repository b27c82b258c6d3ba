package propagation

import (
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hamprop/backend/internal/bitmap"
	"github.com/hamprop/backend/internal/colorscale"
	"github.com/hamprop/backend/internal/solar"
)

// cacheCapacity is the LRU's ~100-entry capacity (spec.md §4.D output:
// "capacity ~= 100 entries").
const cacheCapacity = 100

// renderedMap is what the LRU caches: the already-framed, already-zlib-
// compressed primary and dimmed blobs, so a cache hit costs nothing beyond
// the map lookup itself.
type renderedMap struct {
	primary, dimmed []byte
}

// Engine is the immutable, once-built-at-startup context the propagation
// algorithm runs against (Design Note "module-level mutable caches ->
// single engine context"): colour tables, a preloaded background map, and
// the request-fingerprint LRU. No package-level mutable state lives
// outside this struct; the LRU's own internal lock is the mutex spec.md §5
// requires around lookup/insert/clear-when-full.
type Engine struct {
	colors          *colorscale.Tables
	background      []uint16
	backgroundW     int
	backgroundH     int
	mask            CountryMaskFunc
	renderGrayline  bool
	cache           *lru.Cache[string, renderedMap]
}

// NewEngine builds an Engine. background is RGB565 pixel data for a
// backgroundW x backgroundH equirectangular world map; pass nil to fall
// back to SyntheticBackground. mask may be nil.
func NewEngine(background []uint16, backgroundW, backgroundH int, mask CountryMaskFunc) *Engine {
	cache, err := lru.New[string, renderedMap](cacheCapacity)
	if err != nil {
		// Only returns an error for a non-positive size, which cacheCapacity
		// never is.
		panic(err)
	}
	if background == nil {
		background = SyntheticBackground(backgroundW, backgroundH)
	}
	return &Engine{
		colors:         colorscale.NewTables(),
		background:     background,
		backgroundW:    backgroundW,
		backgroundH:    backgroundH,
		mask:           mask,
		renderGrayline: true,
		cache:          cache,
	}
}

// SyntheticBackground generates a placeholder equirectangular base map
// (ocean-blue banded by latitude, lightening toward the poles) in the
// absence of a real cartographic asset: sourcing and licensing an actual
// world map image is outside this module's scope (spec.md §1 treats the
// reference client and its static assets as an external collaborator, not
// something this backend ships). Real deployments supply their own
// background via NewEngine.
func SyntheticBackground(width, height int) []uint16 {
	out := make([]uint16, width*height)
	for y := 0; y < height; y++ {
		lat, _ := pixelLatLng(0, y, width, height)
		shade := uint8(40 + 60*math.Abs(lat)/90)
		pixel := bitmap.PackRGB565(20, 40, 60+shade/2)
		for x := 0; x < width; x++ {
			out[y*width+x] = pixel
		}
	}
	return out
}

// fingerprint builds the LRU cache key from every request parameter
// quantised to 2 decimals (spec.md §4.D output), so that two requests
// differing only in quantisation-irrelevant decimals collide on purpose.
func fingerprint(req GridRequest, metric Metric) string {
	q := func(v float64) float64 { return math.Round(v*100) / 100 }
	return fmt.Sprintf("%.2f,%.2f,%.2f,%d,%.2f,%d,%d,%.2f,%d,%d,%d,%d,%.2f,%.2f,%.2f",
		q(req.TxLatDeg), q(req.TxLngDeg), q(req.FreqMHz), req.Path,
		q(req.TakeoffDeg), req.Year, req.Month, q(req.UTCHour),
		int(metric), req.Width, req.Height, req.Weather.SSN,
		q(req.Weather.Kp), q(req.Weather.Bz), q(req.Weather.SolarWindKmS))
}

// EvaluateGrid returns the primary and channel-halved dimmed zlib blobs for
// a full-grid request, serving from the LRU when the fingerprint matches.
func (e *Engine) EvaluateGrid(req GridRequest, metric Metric) (primary, dimmed []byte, err error) {
	key := fingerprint(req, metric)
	if cached, ok := e.cache.Get(key); ok {
		return cached.primary, cached.dimmed, nil
	}

	field := evaluateGrid(req.Request, req.Width, req.Height)
	subLat, subLng := solar.SubsolarPoint(dayOfYear(req.Year, req.Month), req.UTCHour)
	pixels := renderChannel(field, metric, e.colors, e.background, subLat, subLng, e.mask, e.renderGrayline)

	primary, dimmed, err = bitmap.EncodePair(req.Width, req.Height, pixels)
	if err != nil {
		return nil, nil, err
	}

	// Concurrent requests for the same fingerprint may both compute and
	// insert; last writer wins, which is fine since outputs are
	// deterministic given identical inputs (spec.md §5 ordering guarantee).
	e.cache.Add(key, renderedMap{primary: primary, dimmed: dimmed})
	return primary, dimmed, nil
}

// EvaluatePoint runs the point-mode algorithm uncached (point evaluations
// are cheap — one pixel's worth of work — and are not part of the LRU's
// fingerprint contract, which spec.md §4.D output scopes to rendered maps).
func (e *Engine) EvaluatePoint(req Request) PointResult {
	return EvaluatePoint(req)
}
