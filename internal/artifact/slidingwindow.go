package artifact

import (
	"os"
	"strings"
)

// SlidingWindow reads the existing artifact at path (if any), appends
// newLines, pads or truncates to exactly n lines with fill, and writes the
// result back atomically. Readers always see exactly n records regardless
// of how many samples the last fetch produced (spec.md §3/§4.F).
func SlidingWindow(path string, newLines []string, n int, fill string) error {
	existing := readLines(path)
	combined := append(existing, newLines...)
	windowed := padTruncateStrings(combined, n, fill)
	return WriteText(path, strings.Join(windowed, "\n")+"\n")
}

// LastLine returns the final non-empty line of the artifact at path, for
// readers that only need the most recently ingested sample (e.g. the
// propagation engine's latest SSN/Kp/Bz). ok is false if the artifact
// doesn't exist or is empty.
func LastLine(path string) (line string, ok bool) {
	lines := readLines(path)
	if len(lines) == 0 {
		return "", false
	}
	return lines[len(lines)-1], true
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// padTruncateStrings keeps the newest n samples like textfmt.PadTruncate,
// except that short input is front-padded with fill rather than with the
// oldest sample. Kept local to avoid artifact depending on textfmt.
func padTruncateStrings(samples []string, n int, fill string) []string {
	if len(samples) >= n {
		return append([]string(nil), samples[len(samples)-n:]...)
	}
	out := make([]string, 0, n)
	for i := 0; i < n-len(samples); i++ {
		out = append(out, fill)
	}
	return append(out, samples...)
}
