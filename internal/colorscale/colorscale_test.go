package colorscale

import "testing"

func TestTableSizes(t *testing.T) {
	tables := NewTables()
	if len(tables.MUF.entries) != mufTableSize {
		t.Errorf("want MUF table size %d, got %d", mufTableSize, len(tables.MUF.entries))
	}
	if len(tables.REL.entries) != relTableSize {
		t.Errorf("want REL table size %d, got %d", relTableSize, len(tables.REL.entries))
	}
	if len(tables.TOA.entries) != toaTableSize {
		t.Errorf("want TOA table size %d, got %d", toaTableSize, len(tables.TOA.entries))
	}
}

func TestLookupClamps(t *testing.T) {
	tables := NewTables()
	below := tables.REL.Lookup(-50)
	atZero := tables.REL.Lookup(0)
	if below != atZero {
		t.Errorf("want out-of-range lookup to clamp to the boundary colour")
	}

	above := tables.REL.Lookup(1000)
	atMax := tables.REL.Lookup(100)
	if above != atMax {
		t.Errorf("want out-of-range lookup to clamp to the boundary colour")
	}
}

func TestLookupMonotonicBrightnessTrend(t *testing.T) {
	tables := NewTables()
	// Sanity check only: low and high REL should map to different colours.
	low := tables.REL.Lookup(5)
	high := tables.REL.Lookup(95)
	if low == high {
		t.Errorf("want different colours at opposite ends of the REL scale")
	}
}
