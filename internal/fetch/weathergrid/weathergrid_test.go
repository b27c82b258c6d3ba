package weathergrid

import (
	"strings"
	"testing"

	"github.com/hamprop/backend/internal/textfmt"
)

func TestBuildGridCoversFullRange(t *testing.T) {
	lngCount := (180-(-180))/lngStep + 1
	latCount := (90-(-90))/latStep + 1
	want := lngCount * latCount
	if len(grid) != want {
		t.Fatalf("grid size = %d, want %d", len(grid), want)
	}
	if grid[0].lng != -180 || grid[0].lat != -90 {
		t.Fatalf("grid[0] = %+v, want lng=-180 lat=-90", grid[0])
	}
	if grid[len(grid)-1].lng != 180 {
		t.Fatalf("last point lng = %d, want 180", grid[len(grid)-1].lng)
	}
}

func TestRenderBlankLineOnLongitudeChange(t *testing.T) {
	out := render(map[string]textfmt.WeatherGridPoint{})
	lines := strings.Split(out, "\n")

	latCount := (90-(-90))/latStep + 1
	// First column has latCount rows, then a blank line, then the next
	// column's rows.
	for i := 0; i < latCount; i++ {
		if strings.TrimSpace(lines[i]) == "" {
			t.Fatalf("line %d unexpectedly blank: %q", i, lines[i])
		}
	}
	if strings.TrimSpace(lines[latCount]) != "" {
		t.Fatalf("line %d = %q, want blank separator between longitude columns", latCount, lines[latCount])
	}
}

func TestRenderUsesZeroedPlaceholderForUncachedPoint(t *testing.T) {
	out := render(map[string]textfmt.WeatherGridPoint{})
	if !strings.Contains(out, "-90") {
		t.Fatalf("expected placeholder row for lat -90, got: %q", out[:min(len(out), 200)])
	}
	first := strings.SplitN(out, "\n", 2)[0]
	want := textfmt.WeatherGridRow(textfmt.WeatherGridPoint{LatDeg: -90, LngDeg: -180})
	if first != want {
		t.Errorf("first row = %q, want zeroed placeholder %q", first, want)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
