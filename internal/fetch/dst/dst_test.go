package dst

import (
	"os"
	"strings"
	"testing"

	"github.com/hamprop/backend/internal/artifact"
	"github.com/hamprop/backend/internal/textfmt"
)

func TestParseDstSkipsMissingSentinel(t *testing.T) {
	// 20 chars total: padding, "DST" marker, then three 4-char fields
	// ("12", the "9999" sentinel, "-30").
	line := "     DST  129999 -30\n"
	values, err := parseDst(strings.NewReader(line))
	if err != nil {
		t.Fatalf("parseDst: %v", err)
	}
	want := []string{"12", "-30"}
	if len(values) != len(want) {
		t.Fatalf("want %v, got %v", want, values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("index %d: want %q, got %q", i, want[i], values[i])
		}
	}
}

func TestWriteDummyProducesFullWindow(t *testing.T) {
	dir := t.TempDir()
	paths := artifact.NewPath(dir)
	if err := writeDummy(paths); err != nil {
		t.Fatalf("writeDummy: %v", err)
	}
	data, err := os.ReadFile(paths.DST())
	if err != nil {
		t.Fatalf("reading dummy artifact: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != textfmt.DSTCount {
		t.Errorf("want %d lines, got %d", textfmt.DSTCount, len(lines))
	}
}
