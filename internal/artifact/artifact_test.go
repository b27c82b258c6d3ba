package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileCreatesParentAndContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "sunspot.txt")

	if err := WriteText(path, "31\n32\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written artifact: %v", err)
	}
	if string(got) != "31\n32\n" {
		t.Errorf("want %q, got %q", "31\n32\n", string(got))
	}
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dst.txt")
	if err := WriteText(path, "9999\n"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "dst.txt" {
		t.Errorf("want exactly one file named dst.txt, got %v", entries)
	}
}

func TestSlidingWindowPadsOnFirstWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kindex.txt")

	if err := SlidingWindow(path, []string{"2.00", "3.00"}, 5, "0.00"); err != nil {
		t.Fatalf("SlidingWindow: %v", err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("want 5 lines, got %d: %v", len(lines), lines)
	}
	want := []string{"0.00", "0.00", "0.00", "2.00", "3.00"}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: want %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestSlidingWindowTruncatesOnSubsequentWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xray.txt")

	if err := SlidingWindow(path, []string{"1", "2", "3"}, 3, "0"); err != nil {
		t.Fatalf("SlidingWindow: %v", err)
	}
	if err := SlidingWindow(path, []string{"4"}, 3, "0"); err != nil {
		t.Fatalf("SlidingWindow: %v", err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	want := []string{"2", "3", "4"}
	if len(lines) != len(want) {
		t.Fatalf("want %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: want %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestPathBuildsUnderRoot(t *testing.T) {
	p := NewPath("/data")
	if got := p.Sunspot(); got != filepath.Join("/data", "ssn", "sunspot.txt") {
		t.Errorf("want sunspot path under root, got %q", got)
	}
	if got := p.SDO("171", 512); got != filepath.Join("/data", "SDO", "171_512.bmp.z") {
		t.Errorf("want SDO path keyed by wavelength/resolution, got %q", got)
	}
}
