package textfmt

import (
	"strconv"
	"strings"
	"testing"
)

func TestPadTruncatePads(t *testing.T) {
	got := PadTruncate([]int{5, 6, 7}, 6, -1)
	want := []int{5, 5, 5, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("want len %d, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: want %d got %d", i, want[i], got[i])
		}
	}
}

func TestPadTruncateTruncates(t *testing.T) {
	got := PadTruncate([]int{1, 2, 3, 4, 5}, 3, 0)
	want := []int{3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: want %d got %d", i, want[i], got[i])
		}
	}
}

func TestPadTruncateEmpty(t *testing.T) {
	got := PadTruncate([]int{}, 4, 9)
	for i, v := range got {
		if v != 9 {
			t.Errorf("index %d: want fill value 9, got %d", i, v)
		}
	}
}

func TestBandConditionsTableShape(t *testing.T) {
	var hourly [24][]float64
	for h := range hourly {
		hourly[h] = make([]float64, 9)
		for b := range hourly[h] {
			hourly[h][b] = float64(h+b) / 100
		}
	}

	params := BandConditionsParams{PowerWatts: 50, Mode: "SSB", TOADeg: 3, LongPath: true, SSN: 120}
	table := BandConditionsTable(hourly, 14, params)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 26 {
		t.Fatalf("want 26 lines, got %d", len(lines))
	}

	wantLine2 := "50W,SSB,TOA>3,LP,S=120"
	if lines[1] != wantLine2 {
		t.Errorf("want line 2 %q, got %q", wantLine2, lines[1])
	}

	for h := 1; h <= 23; h++ {
		prefix := strconv.Itoa(h) + " "
		if !strings.HasPrefix(lines[h+1], prefix) {
			t.Errorf("line %d: want prefix %q, got %q", h+2, prefix, lines[h+1])
		}
	}
	if !strings.HasPrefix(lines[25], "0 ") {
		t.Errorf("line 26: want prefix \"0 \", got %q", lines[25])
	}
}

func TestFloatSeriesCount(t *testing.T) {
	values := make([]float64, 72)
	out := FloatSeries(values)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 72 {
		t.Errorf("want 72 lines, got %d", len(lines))
	}
}

func TestSpotRecordSwap(t *testing.T) {
	s := SpotRecord{DEGrid: "FN20", DECall: "W1ABC", DXGrid: "JO01", DXCall: "G0XYZ"}
	swapped := s.Swapped()
	if swapped.DECall != "G0XYZ" || swapped.DXCall != "W1ABC" {
		t.Errorf("swap did not exchange DE/DX call signs: %+v", swapped)
	}
}
