package ctyprefix

import (
	"strings"
	"testing"
)

const sampleEntry = `United States: 5: 7: NA: 40.0: 75.0: -5.0: K:
    K,W,AA-AL,=W1AW;
`

func TestParseCTYFlipsLongitudeToEastPositive(t *testing.T) {
	out, err := parseCTY(strings.NewReader(sampleEntry))
	if err != nil {
		t.Fatalf("parseCTY: %v", err)
	}
	if !strings.Contains(out, "-75.00") {
		t.Errorf("want source west-positive 75.0 flipped to east-positive -75.00, got:\n%s", out)
	}
	if strings.Contains(out, " 75.00") {
		t.Errorf("west-positive longitude leaked through unflipped:\n%s", out)
	}
}

func TestParseCTYStripsExactCallsignMarker(t *testing.T) {
	out, err := parseCTY(strings.NewReader(sampleEntry))
	if err != nil {
		t.Fatalf("parseCTY: %v", err)
	}
	if strings.Contains(out, "=W1AW") {
		t.Errorf("want leading '=' stripped from exact-callsign prefix, got:\n%s", out)
	}
	if !strings.Contains(out, "W1AW") {
		t.Errorf("want W1AW prefix present, got:\n%s", out)
	}
}
