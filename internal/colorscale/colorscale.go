// Package colorscale expands the three piecewise-linear MUF/REL/TOA colour
// scales into dense RGB565 lookup tables at startup, so that rendering a
// pixel is a single table index rather than a linear-scan/interpolation on
// the request path.
package colorscale

import "github.com/hamprop/backend/internal/bitmap"

// RGB is one control point of a piecewise-linear scale.
type RGB struct {
	R, G, B uint8
}

// stop pairs a scalar value with the colour it maps to.
type stop struct {
	Value float64
	Color RGB
}

// Table is a dense lookup table indexed by value*10 (clamped to its
// bounds), each entry already RGB565-packed.
type Table struct {
	entries  []uint16
	min, max float64
}

// Lookup returns the packed RGB565 colour for v, clamping v to the table's
// domain first.
func (t *Table) Lookup(v float64) uint16 {
	if v < t.min {
		v = t.min
	}
	if v > t.max {
		v = t.max
	}
	idx := int((v - t.min) * 10)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.entries) {
		idx = len(t.entries) - 1
	}
	return t.entries[idx]
}

// build expands stops (sorted ascending by Value) into a dense table with
// size entries, indexed by (value-min)*10.
func build(stops []stop, size int) *Table {
	t := &Table{
		entries: make([]uint16, size),
		min:     stops[0].Value,
		max:     stops[len(stops)-1].Value,
	}

	for i := 0; i < size; i++ {
		v := t.min + float64(i)/10
		t.entries[i] = bitmap.PackRGB565(interp(stops, v))
	}
	return t
}

// interp linearly interpolates the RGB colour at v between the two
// bracketing stops.
func interp(stops []stop, v float64) (r, g, b uint8) {
	if v <= stops[0].Value {
		c := stops[0].Color
		return c.R, c.G, c.B
	}
	last := stops[len(stops)-1]
	if v >= last.Value {
		return last.Color.R, last.Color.G, last.Color.B
	}

	for i := 0; i < len(stops)-1; i++ {
		lo, hi := stops[i], stops[i+1]
		if v >= lo.Value && v <= hi.Value {
			frac := (v - lo.Value) / (hi.Value - lo.Value)
			r = lerp(lo.Color.R, hi.Color.R, frac)
			g = lerp(lo.Color.G, hi.Color.G, frac)
			b = lerp(lo.Color.B, hi.Color.B, frac)
			return r, g, b
		}
	}
	// Unreachable given the sorted-stops precondition.
	return stops[len(stops)-1].Color.R, stops[len(stops)-1].Color.G, stops[len(stops)-1].Color.B
}

func lerp(a, b uint8, frac float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*frac)
}

// mufStops, relStops and toaStops are the reference piecewise-linear
// control points for the three scales (spec.md §4.C): blue/low through
// red/high, the conventional VOACAP-style palette.
var mufStops = []stop{
	{0, RGB{0, 0, 128}},
	{10, RGB{0, 128, 255}},
	{20, RGB{0, 200, 0}},
	{28, RGB{255, 220, 0}},
	{35, RGB{220, 0, 0}},
}

var relStops = []stop{
	{0, RGB{40, 40, 40}},
	{20, RGB{120, 0, 160}},
	{40, RGB{0, 0, 220}},
	{60, RGB{0, 180, 0}},
	{80, RGB{255, 220, 0}},
	{100, RGB{255, 40, 40}},
}

var toaStops = []stop{
	{0, RGB{0, 0, 120}},
	{10, RGB{0, 150, 200}},
	{20, RGB{0, 200, 0}},
	{30, RGB{230, 200, 0}},
	{40, RGB{220, 0, 0}},
}

// Tables holds all three dense lookup tables, built once at startup and
// shared read-only thereafter (no further global state per Design Notes).
type Tables struct {
	MUF *Table // 0-35, 501 entries
	REL *Table // 0-100%, 1001 entries
	TOA *Table // 0-40 degrees, 401 entries
}

// Table sizes match spec.md §4.C literally (501/1001/401 entries indexed
// by value*10); MUF's table is sized larger than its 0-35 domain strictly
// needs so that entries beyond the last control point simply repeat the
// top colour (Lookup clamps before indexing regardless).
const (
	mufTableSize = 501
	relTableSize = 1001
	toaTableSize = 401
)

// NewTables builds the MUF (0-35, clamped), REL (0-100%) and TOA (0-40)
// tables.
func NewTables() *Tables {
	return &Tables{
		MUF: build(mufStops, mufTableSize),
		REL: build(relStops, relTableSize),
		TOA: build(toaStops, toaTableSize),
	}
}
