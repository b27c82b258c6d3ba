// Package artifact centralizes where on disk each feed's output lives and
// how it gets there: every writer creates its parent directory lazily,
// writes to a sibling temp file, then renames atomically, so a reader
// never observes a half-written file (spec.md §4.F; grounded on the
// teacher's rtcmlogger/logger writer and go-tools/dailylogger, which
// centre all file I/O for a feed behind one small writer type).
package artifact

import (
	"path/filepath"
	"strconv"
)

// Path is the single value object that builds every on-disk artifact
// location (Design Note: forbid ad-hoc string concatenation at call
// sites).
type Path struct {
	root string
}

// NewPath roots all artifact paths under dir.
func NewPath(dir string) Path {
	return Path{root: dir}
}

// Root is the artifact tree's base directory, the one static-route prefix
// internal/httpapi serves files from.
func (p Path) Root() string { return p.root }

// Join builds a path to a named artifact under the root, e.g.
// Join("solar", "sunspot.txt").
func (p Path) Join(parts ...string) string {
	return filepath.Join(append([]string{p.root}, parts...)...)
}

// Solar indices.
func (p Path) Sunspot() string  { return p.Join("ssn", "sunspot.txt") }
func (p Path) SolarFlux() string { return p.Join("solar-flux", "solarflux.txt") }

// Planetary K.
func (p Path) PlanetaryK() string { return p.Join("geomag", "kindex.txt") }

// X-ray.
func (p Path) XRay() string { return p.Join("xray", "xray.txt") }

// Solar wind / IMF.
func (p Path) SolarWind() string { return p.Join("solar-wind", "swind.txt") }
func (p Path) IMF() string       { return p.Join("Bz", "imf.txt") }

// Space-weather scales.
func (p Path) SpaceWeather() string { return p.Join("NOAASpaceWX", "scales.txt") }

// Aurora.
func (p Path) Aurora() string { return p.Join("aurora", "aurora.txt") }

// Country/prefix.
func (p Path) CTYPrefix() string { return p.Join("cty", "cty.txt") }

// Disturbance storm time.
func (p Path) DST() string { return p.Join("dst", "dst.txt") }

// Spotting activations.
func (p Path) Activations() string { return p.Join("ONTA", "activations.csv") }

// DX-peditions.
func (p Path) DXPeditions() string { return p.Join("dxpeds", "ndxc.txt") }

// Contests.
func (p Path) Contests() string { return p.Join("contests", "contests.txt") }

// DRAP.
func (p Path) DRAP() string { return p.Join("drap", "drap.txt") }

// SDO imagery (memoized per wavelength/resolution, so this builds a
// per-request name rather than one fixed path).
func (p Path) SDO(wavelength string, resolutionPx int) string {
	return p.Join("SDO", wavelength+"_"+strconv.Itoa(resolutionPx)+".bmp.z")
}

// Weather grid.
func (p Path) WeatherGrid() string       { return p.Join("worldwx", "wxgrid.txt") }
func (p Path) WeatherGridCursor() string { return p.Join("worldwx", "wxgrid.cursor") }
