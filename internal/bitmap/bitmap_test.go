package bitmap

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"
)

// TestHeaderStability checks that the 122-byte prefix is byte-identical
// across repeated calls and matches the documented layout.
func TestHeaderStability(t *testing.T) {
	h1 := Header(660, 330)
	h2 := Header(660, 330)

	if len(h1) != HeaderSize {
		t.Fatalf("got header length %d, want %d", len(h1), HeaderSize)
	}
	if !bytes.Equal(h1, h2) {
		t.Errorf("header is not stable across calls")
	}
	if h1[0] != 'B' || h1[1] != 'M' {
		t.Errorf("want BM magic, got %q", h1[:2])
	}
}

// TestHeaderMatchesReferencePrefix builds the 122-byte prefix field-by-field
// from the reference create_bmp_565_header layout (voacap_service.py) and
// compares it byte-for-byte against Header, so a regression in any single
// field (not just width/height/bpp) fails the test.
func TestHeaderMatchesReferencePrefix(t *testing.T) {
	const w, h = 660, 330
	const pixelBytes = w * h * 2
	const fileSize = HeaderSize + pixelBytes

	want := make([]byte, HeaderSize)
	want[0], want[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(want[2:6], fileSize)
	binary.LittleEndian.PutUint32(want[10:14], HeaderSize)

	d := want[14:]
	binary.LittleEndian.PutUint32(d[0:4], 108)
	binary.LittleEndian.PutUint32(d[4:8], w)
	negH := int32(-h)
	binary.LittleEndian.PutUint32(d[8:12], uint32(negH))
	binary.LittleEndian.PutUint16(d[12:14], 1)
	binary.LittleEndian.PutUint16(d[14:16], 16)
	binary.LittleEndian.PutUint32(d[16:20], 3)
	binary.LittleEndian.PutUint32(d[20:24], pixelBytes)
	binary.LittleEndian.PutUint32(d[24:28], 3780)
	binary.LittleEndian.PutUint32(d[28:32], 3780)
	binary.LittleEndian.PutUint32(d[40:44], MaskRed)
	binary.LittleEndian.PutUint32(d[44:48], MaskGreen)
	binary.LittleEndian.PutUint32(d[48:52], MaskBlue)
	binary.LittleEndian.PutUint32(d[56:60], 1)

	got := Header(w, h)
	if !bytes.Equal(got, want) {
		t.Errorf("header prefix diverges from reference layout:\n got  %x\n want %x", got, want)
	}
}

func TestHeaderDimensions(t *testing.T) {
	const w, h = 100, 50
	buf := Header(w, h)

	gotWidth := int32(uint32(buf[18]) | uint32(buf[19])<<8 | uint32(buf[20])<<16 | uint32(buf[21])<<24)
	gotHeight := int32(uint32(buf[22]) | uint32(buf[23])<<8 | uint32(buf[24])<<16 | uint32(buf[25])<<24)

	if gotWidth != w {
		t.Errorf("want width %d, got %d", w, gotWidth)
	}
	if gotHeight != -h {
		t.Errorf("want height %d (negative, top-down), got %d", -h, gotHeight)
	}

	gotBpp := uint16(buf[28]) | uint16(buf[29])<<8
	if gotBpp != BitsPerPixel {
		t.Errorf("want %d bpp, got %d", BitsPerPixel, gotBpp)
	}
}

func TestRoundTripRGB565(t *testing.T) {
	cases := []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{255, 255, 255},
		{123, 200, 45},
		{7, 3, 255},
	}
	for _, c := range cases {
		packed := PackRGB565(c.r, c.g, c.b)
		gotR, gotG, gotB := UnpackRGB565(packed)
		if gotR != c.r&0xF8 || gotG != c.g&0xFC || gotB != c.b&0xF8 {
			t.Errorf("round trip (%d,%d,%d): got (%d,%d,%d)", c.r, c.g, c.b, gotR, gotG, gotB)
		}
	}
}

// TestHeader24ZeroesImageSize checks that Header24 leaves image size and
// X/Y resolution zeroed rather than filled in, per spec.md §4.E's SDO
// header normalization.
func TestHeader24ZeroesImageSize(t *testing.T) {
	buf := Header24(100, 50)
	d := buf[14:]

	if got := binary.LittleEndian.Uint32(d[20:24]); got != 0 {
		t.Errorf("want image size 0, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(d[24:28]); got != 0 {
		t.Errorf("want x pixels/meter 0, got %d", got)
	}
	if got := binary.LittleEndian.Uint32(d[28:32]); got != 0 {
		t.Errorf("want y pixels/meter 0, got %d", got)
	}
}

func TestHalve(t *testing.T) {
	packed := PackRGB565(200, 200, 200)
	r, g, b := UnpackRGB565(packed)
	dimmed := Halve(packed)
	dr, dg, db := UnpackRGB565(dimmed)
	// The halved channels are re-quantised to RGB565, so compare against
	// r/2, g/2, b/2 with the low bits RGB565 cannot hold cleared.
	wr, wg, wb := (r/2)&0xF8, (g/2)&0xFC, (b/2)&0xF8
	if dr != wr || dg != wg || db != wb {
		t.Errorf("halve: want (%d,%d,%d), got (%d,%d,%d)", wr, wg, wb, dr, dg, db)
	}
}

func TestEncodeSizeAndRoundTrip(t *testing.T) {
	const w, h = 4, 3
	pixels := make([]uint16, w*h)
	for i := range pixels {
		pixels[i] = PackRGB565(uint8(i*10), uint8(i*20), uint8(i*30))
	}

	blob, err := Encode(w, h, pixels)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	r, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("zlib.NewReader: %v", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading decompressed bitmap: %v", err)
	}

	wantLen := HeaderSize + w*h*2
	if len(raw) != wantLen {
		t.Errorf("want %d decompressed bytes, got %d", wantLen, len(raw))
	}
}

func TestEncodePairDimmedIsHalved(t *testing.T) {
	const w, h = 2, 2
	pixels := []uint16{
		PackRGB565(200, 200, 200),
		PackRGB565(100, 100, 100),
		PackRGB565(50, 50, 50),
		PackRGB565(10, 10, 10),
	}

	primary, dimmed, err := EncodePair(w, h, pixels)
	if err != nil {
		t.Fatalf("EncodePair: %v", err)
	}
	if len(primary) == 0 || len(dimmed) == 0 {
		t.Fatalf("expected non-empty blobs")
	}

	inflate := func(blob []byte) []byte {
		r, err := zlib.NewReader(bytes.NewReader(blob))
		if err != nil {
			t.Fatalf("zlib.NewReader: %v", err)
		}
		raw, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("reading decompressed bitmap: %v", err)
		}
		return raw
	}
	rawPrimary, rawDimmed := inflate(primary), inflate(dimmed)
	for i := range pixels {
		off := HeaderSize + 2*i
		p := binary.LittleEndian.Uint16(rawPrimary[off : off+2])
		d := binary.LittleEndian.Uint16(rawDimmed[off : off+2])
		if d != Halve(p) {
			t.Errorf("pixel %d: dimmed %#04x, want Halve(%#04x) = %#04x", i, d, p, Halve(p))
		}
	}
}

func TestEncodePairIdempotent(t *testing.T) {
	const w, h = 2, 2
	pixels := []uint16{1, 2, 3, 4}

	p1, d1, err := EncodePair(w, h, pixels)
	if err != nil {
		t.Fatalf("EncodePair: %v", err)
	}
	p2, d2, err := EncodePair(w, h, pixels)
	if err != nil {
		t.Fatalf("EncodePair: %v", err)
	}
	if !bytes.Equal(p1, p2) || !bytes.Equal(d1, d2) {
		t.Errorf("identical input produced different output blobs")
	}
}
