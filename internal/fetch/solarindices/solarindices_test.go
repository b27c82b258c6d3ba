package solarindices

import (
	"strings"
	"testing"
)

const sampleFeed = `:Product: Daily Solar Data
:Issued: 2026 Jan 01
#  Year Month Day BBB Flux SSN
2026 01 30  101   5
2026 01 31  108  12
`

func TestParseSolarIndicesSkipsHeaderLines(t *testing.T) {
	ssn, flux, err := parseSolarIndices(strings.NewReader(sampleFeed))
	if err != nil {
		t.Fatalf("parseSolarIndices: %v", err)
	}
	if len(ssn) != 2 {
		t.Fatalf("want 2 ssn records, got %d: %v", len(ssn), ssn)
	}
	if len(flux) != 6 {
		t.Fatalf("want 6 flux records (3 per day), got %d: %v", len(flux), flux)
	}
	if !strings.HasSuffix(ssn[0], "5") {
		t.Errorf("want first ssn record to end in the parsed ssn value, got %q", ssn[0])
	}
}
