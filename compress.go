package esp

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec used to inflate records flagged compressed.
// Plugins written by the game use zlib.
type Compression uint8

const (
	CompZlib Compression = iota
	CompZSTD
	CompLZ4
	CompBR
)

func (c Compression) String() string {
	switch c {
	case CompZlib:
		return "zlib"
	case CompZSTD:
		return "zstd"
	case CompLZ4:
		return "lz4"
	case CompBR:
		return "brotli"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression maps a codec name as printed by String back to its value.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zlib":
		return CompZlib, nil
	case "zstd":
		return CompZSTD, nil
	case "lz4":
		return CompLZ4, nil
	case "br", "brotli":
		return CompBR, nil
	default:
		return 0, fmt.Errorf("esp: unknown compression %q", s)
	}
}

// Function variables for testing injection.
var (
	newZlibReader = func(r io.Reader) (io.ReadCloser, error) { return zlib.NewReader(r) }
	newZstdReader = func() (*zstd.Decoder, error) { return zstd.NewReader(nil) }
	readAll       = io.ReadAll
)

// decompressRecord inflates a compressed record payload. The result must be exactly
// expected bytes long.
func decompressRecord(comp Compression, in []byte, expected uint32) ([]byte, error) {
	var out []byte
	var err error
	switch comp {
	case CompZlib:
		out, err = zlibDecompress(in, expected)
	case CompZSTD:
		out, err = zstdDecompress(in, expected)
	case CompLZ4:
		out, err = lz4Decompress(in, expected)
	case CompBR:
		out, err = brotliDecompress(in, expected)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidPayload, comp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, comp, err)
	}
	if uint32(len(out)) != expected {
		return nil, fmt.Errorf("%w: decompressed length %d != expected %d", ErrInvalidPayload, len(out), expected)
	}
	return out, nil
}

// limited reads r up to one byte past expected so that oversized output is caught
// without inflating all of it.
func limited(r io.Reader, expected uint32) ([]byte, error) {
	b, err := readAll(io.LimitReader(r, int64(expected)+1))
	if err != nil {
		return nil, err
	}
	if uint32(len(b)) > expected {
		return nil, fmt.Errorf("expanded beyond %d bytes", expected)
	}
	return b, nil
}

func zlibDecompress(in []byte, expected uint32) ([]byte, error) {
	r, err := newZlibReader(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return limited(r, expected)
}

func zstdDecompress(in []byte, expected uint32) ([]byte, error) {
	dec, err := newZstdReader()
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(in, make([]byte, 0, expected))
	if err != nil {
		return nil, err
	}
	if uint32(len(out)) > expected {
		return nil, fmt.Errorf("expanded beyond %d bytes", expected)
	}
	return out, nil
}

func lz4Decompress(in []byte, expected uint32) ([]byte, error) {
	return limited(lz4.NewReader(bytes.NewReader(in)), expected)
}

func brotliDecompress(in []byte, expected uint32) ([]byte, error) {
	return limited(brotli.NewReader(bytes.NewReader(in)), expected)
}
