// Package bitmap builds the 16-bpp top-down bitmaps the client expects and
// frames them the way it decodes them: a 14-byte BITMAPFILEHEADER, a 108-byte
// BITMAPV4HEADER carrying explicit 5/6/5 bit-field masks, then zlib-deflated
// pixel data.
package bitmap

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the combined size in bytes of the file header and the
// extended (V4) DIB header. It's the same for every width/height pair.
const HeaderSize = 14 + 108

// BitsPerPixel is fixed at 16 for every map and transcoded image this
// backend emits.
const BitsPerPixel = 16

// Bit-field channel masks for RGB565.
const (
	MaskRed   = 0xF800
	MaskGreen = 0x07E0
	MaskBlue  = 0x001F
)

// lcsSRGB is the CSType value for LCS_sRGB in a BITMAPV4HEADER.
const lcsSRGB = 0x73524742 // little-endian write below uses the plain int 1 the client tolerates

// Header builds the 122-byte file+DIB header prefix for a width x height
// 16-bpp bitmap. Width must be positive; the stored height is negated to
// mark the bitmap top-down, per the client's decoder. The prefix is a pure
// function of (width, height): byte-identical across runs and invocations.
func Header(width, height int) []byte {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("bitmap: invalid dimensions %dx%d", width, height))
	}

	rowBytes := width * 2 // no padding: width is always even
	pixelBytes := rowBytes * height
	fileSize := HeaderSize + pixelBytes

	buf := make([]byte, HeaderSize)

	// BITMAPFILEHEADER (14 bytes)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint16(buf[6:8], 0)  // reserved1
	binary.LittleEndian.PutUint16(buf[8:10], 0) // reserved2
	binary.LittleEndian.PutUint32(buf[10:14], uint32(HeaderSize))

	// BITMAPV4HEADER (108 bytes), offset 14.
	d := buf[14:]
	binary.LittleEndian.PutUint32(d[0:4], 108)                 // header size
	binary.LittleEndian.PutUint32(d[4:8], uint32(int32(width)))
	binary.LittleEndian.PutUint32(d[8:12], uint32(int32(-height))) // negative: top-down
	binary.LittleEndian.PutUint16(d[12:14], 1)                 // planes
	binary.LittleEndian.PutUint16(d[14:16], BitsPerPixel)       // bpp
	binary.LittleEndian.PutUint32(d[16:20], 3)                  // BI_BITFIELDS
	binary.LittleEndian.PutUint32(d[20:24], uint32(pixelBytes)) // image size
	binary.LittleEndian.PutUint32(d[24:28], 3780)               // x pixels/meter, matches reference header
	binary.LittleEndian.PutUint32(d[28:32], 3780)               // y pixels/meter, matches reference header
	binary.LittleEndian.PutUint32(d[32:36], 0)                  // colours used
	binary.LittleEndian.PutUint32(d[36:40], 0)                  // important colours
	binary.LittleEndian.PutUint32(d[40:44], MaskRed)
	binary.LittleEndian.PutUint32(d[44:48], MaskGreen)
	binary.LittleEndian.PutUint32(d[48:52], MaskBlue)
	binary.LittleEndian.PutUint32(d[52:56], 0) // alpha mask, unused
	binary.LittleEndian.PutUint32(d[56:60], 1) // CSType = LCS_sRGB
	// bytes 60..96 (36 bytes): CIEXYZTRIPLE endpoints, left zero.
	binary.LittleEndian.PutUint32(d[96:100], 0)  // gamma red
	binary.LittleEndian.PutUint32(d[100:104], 0) // gamma green
	binary.LittleEndian.PutUint32(d[104:108], 0) // gamma blue

	return buf
}

// PackRGB565 packs 8-bit channel values into the client's 16-bit RGB565
// encoding: ((R>>3)<<11)|((G>>2)<<5)|(B>>3).
func PackRGB565(r, g, b uint8) uint16 {
	return (uint16(r>>3) << 11) | (uint16(g>>2) << 5) | uint16(b>>3)
}

// UnpackRGB565 reverses PackRGB565, reconstructing the quantised channel
// values (R&0xF8, G&0xFC, B&0xF8).
func UnpackRGB565(v uint16) (r, g, b uint8) {
	r = uint8((v>>11)&0x1F) << 3
	g = uint8((v>>5)&0x3F) << 2
	b = uint8(v&0x1F) << 3
	return r, g, b
}

// Halve halves each RGB565 channel, producing the "dimmed" parity copy the
// client requires alongside every primary map. This is not a physical
// night map: it is simply the primary bitmap with each channel's magnitude
// cut in half.
func Halve(v uint16) uint16 {
	r, g, b := UnpackRGB565(v)
	return PackRGB565(r/2, g/2, b/2)
}

// Encode builds the full bitmap (header + row-major pixel data, no row
// padding since width is always even) and zlib-compresses the result. The
// compression level is not part of the client contract; any level the
// client's zlib decoder accepts is correct, so the default level is used.
func Encode(width, height int, pixels []uint16) ([]byte, error) {
	if len(pixels) != width*height {
		panic(fmt.Sprintf("bitmap: got %d pixels, want %d for %dx%d", len(pixels), width*height, width, height))
	}

	raw := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pixels)*2))
	raw.Write(Header(width, height))
	row := make([]byte, width*2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			binary.LittleEndian.PutUint16(row[x*2:x*2+2], pixels[y*width+x])
		}
		raw.Write(row)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}

// EncodePair builds the primary and channel-halved dimmed zlib blobs for
// the given pixel field, as required by the /fetchVOACAP*.pl responses.
func EncodePair(width, height int, pixels []uint16) (primary, dimmed []byte, err error) {
	primary, err = Encode(width, height, pixels)
	if err != nil {
		return nil, nil, err
	}
	dimmedPixels := make([]uint16, len(pixels))
	for i, p := range pixels {
		dimmedPixels[i] = Halve(p)
	}
	dimmed, err = Encode(width, height, dimmedPixels)
	if err != nil {
		return nil, nil, err
	}
	return primary, dimmed, nil
}

// Header24 builds a classic 14-byte BITMAPFILEHEADER + 40-byte
// BITMAPINFOHEADER prefix for a width x height 24-bpp BI_RGB bitmap (no
// explicit channel masks needed at 24 bpp, unlike the 16-bpp maps' V4
// header). Used only for SDO imagery, the one artifact this backend
// serves at a different bit depth than the propagation maps (spec.md §6:
// "/SDO/...bmp.z -> zlib-compressed 24-bpp bitmap"). Image size and X/Y
// resolution are left zeroed rather than filled in, per spec.md §4.E's
// SDO header normalization.
func Header24(width, height int) []byte {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("bitmap: invalid dimensions %dx%d", width, height))
	}
	const header24Size = 14 + 40
	rowBytes := (width*3 + 3) &^ 3 // rows padded to a 4-byte boundary
	pixelBytes := rowBytes * height
	fileSize := header24Size + pixelBytes

	buf := make([]byte, header24Size)
	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:6], uint32(fileSize))
	binary.LittleEndian.PutUint32(buf[10:14], uint32(header24Size))

	d := buf[14:]
	binary.LittleEndian.PutUint32(d[0:4], 40)
	binary.LittleEndian.PutUint32(d[4:8], uint32(int32(width)))
	binary.LittleEndian.PutUint32(d[8:12], uint32(int32(-height)))
	binary.LittleEndian.PutUint16(d[12:14], 1)
	binary.LittleEndian.PutUint16(d[14:16], 24)
	binary.LittleEndian.PutUint32(d[16:20], 0) // BI_RGB
	binary.LittleEndian.PutUint32(d[20:24], 0) // image size left zeroed, spec.md §4.E

	return buf
}

// Encode24 builds a full 24-bpp BGR bitmap (row-padded to 4 bytes) from
// 8-bit-per-channel RGB triples and zlib-compresses it.
func Encode24(width, height int, rgb [][3]uint8) ([]byte, error) {
	if len(rgb) != width*height {
		panic(fmt.Sprintf("bitmap: got %d pixels, want %d for %dx%d", len(rgb), width*height, width, height))
	}

	rowBytes := (width*3 + 3) &^ 3
	raw := bytes.NewBuffer(make([]byte, 0, 14+40+rowBytes*height))
	raw.Write(Header24(width, height))

	row := make([]byte, rowBytes)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := rgb[y*width+x]
			row[x*3+0] = c[2] // B
			row[x*3+1] = c[1] // G
			row[x*3+2] = c[0] // R
		}
		for i := width * 3; i < rowBytes; i++ {
			row[i] = 0
		}
		raw.Write(row)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}
