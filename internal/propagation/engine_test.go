package propagation

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/hamprop/backend/internal/bitmap"
)

func decompress(t *testing.T, blob []byte) []byte {
	t.Helper()
	r, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("zlib.NewReader: %v", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("zlib read: %v", err)
	}
	return out
}

func testGridRequest(width, height int) GridRequest {
	return GridRequest{
		Request: Request{
			TxLatDeg: 40, TxLngDeg: -75,
			FreqMHz: 14, TakeoffDeg: 5,
			Year: 2026, Month: 6, UTCHour: 15,
			Weather: SpaceWeather{SSN: 90},
		},
		Width: width, Height: height,
	}
}

func TestEvaluateGridPixelDataSize(t *testing.T) {
	engine := NewEngine(nil, 40, 20, nil)
	req := testGridRequest(40, 20)

	primary, dimmed, err := engine.EvaluateGrid(req, MetricREL)
	if err != nil {
		t.Fatalf("EvaluateGrid: %v", err)
	}

	want := bitmap.HeaderSize + req.Width*req.Height*2
	if got := len(decompress(t, primary)); got != want {
		t.Errorf("primary: want decompressed length %d, got %d", want, got)
	}
	if got := len(decompress(t, dimmed)); got != want {
		t.Errorf("dimmed: want decompressed length %d, got %d", want, got)
	}
}

func TestEvaluateGridCacheIdempotent(t *testing.T) {
	engine := NewEngine(nil, 40, 20, nil)
	req := testGridRequest(40, 20)

	p1, d1, err := engine.EvaluateGrid(req, MetricMUF)
	if err != nil {
		t.Fatalf("EvaluateGrid: %v", err)
	}
	p2, d2, err := engine.EvaluateGrid(req, MetricMUF)
	if err != nil {
		t.Fatalf("EvaluateGrid: %v", err)
	}
	if !bytes.Equal(p1, p2) || !bytes.Equal(d1, d2) {
		t.Errorf("want byte-identical blobs for identical requests")
	}

	// Differing only in an LRU-quantisation-irrelevant decimal.
	req2 := req
	req2.TxLatDeg += 0.0001
	p3, _, err := engine.EvaluateGrid(req2, MetricMUF)
	if err != nil {
		t.Fatalf("EvaluateGrid: %v", err)
	}
	if !bytes.Equal(p1, p3) {
		t.Errorf("want quantisation-irrelevant decimal difference to hit the same cache entry")
	}
}

func TestSmoothPeriodicWrapsLongitude(t *testing.T) {
	width, height := 8, 1
	values := make([]float64, width)
	values[0] = 10
	smoothed := smoothPeriodic(values, width, height)
	// x=0's neighbourhood wraps to include x=width-1 and x=width-2; a
	// non-wrapped smoother would leave those untouched by x=0's spike.
	if smoothed[width-1] == 0 {
		t.Errorf("want wraparound neighbour to be influenced by the spike at x=0, got 0")
	}
}

func TestEvaluateGridNoPanicAtSeam(t *testing.T) {
	engine := NewEngine(nil, 20, 10, nil)
	req := testGridRequest(20, 10)
	if _, _, err := engine.EvaluateGrid(req, MetricTOA); err != nil {
		t.Fatalf("EvaluateGrid at TOA metric: %v", err)
	}
}
