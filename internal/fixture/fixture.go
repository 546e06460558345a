// Package fixture assembles plugin bytes for tests and examples. Sizes are computed
// from the parts; the Raw variants take a declared size verbatim so that malformed
// input can be built too.
package fixture

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// FlagCompressed marks a record whose payload is a u32 inflated size plus packed data.
	FlagCompressed uint32 = 0x00040000
	// FlagLocalized marks a plugin whose lstrings are string-table ids.
	FlagLocalized uint32 = 0x00000080

	recordVersion = 44
)

func tag(code string) []byte {
	if len(code) != 4 {
		panic(fmt.Sprintf("fixture: type code %q must be 4 bytes long", code))
	}
	return []byte(code)
}

func U8(v uint8) []byte   { return []byte{v} }
func U16(v uint16) []byte { return binary.LittleEndian.AppendUint16(nil, v) }
func U32(v uint32) []byte { return binary.LittleEndian.AppendUint32(nil, v) }
func U64(v uint64) []byte { return binary.LittleEndian.AppendUint64(nil, v) }
func I16(v int16) []byte  { return U16(uint16(v)) }
func I32(v int32) []byte  { return U32(uint32(v)) }
func F32(v float32) []byte {
	return U32(math.Float32bits(v))
}

// ZString returns s followed by a zero byte.
func ZString(s string) []byte {
	return append([]byte(s), 0)
}

// Cat concatenates parts.
func Cat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Sub encodes a subrecord: tag, u16 size and the concatenated payload parts.
func Sub(code string, payload ...[]byte) []byte {
	body := Cat(payload...)
	if len(body) > math.MaxUint16 {
		panic(fmt.Sprintf("fixture: %s payload of %d bytes does not fit a subrecord", code, len(body)))
	}
	return RawSub(code, uint16(len(body)), body)
}

// RawSub encodes a subrecord with a declared size that need not match body.
func RawSub(code string, size uint16, body []byte) []byte {
	return Cat(tag(code), U16(size), body)
}

// Record encodes a record holding subs.
func Record(code string, flags, formID uint32, subs ...[]byte) []byte {
	body := Cat(subs...)
	return RawRecord(code, uint32(len(body)), flags, formID, body)
}

// RawRecord encodes a record with a declared size that need not match body.
func RawRecord(code string, size, flags, formID uint32, body []byte) []byte {
	return Cat(
		tag(code),
		U32(size),
		U32(flags),
		U32(formID),
		[]byte{0, 0, 0, 0}, // version control
		U16(recordVersion),
		U16(0),
		body,
	)
}

// CompressedRecord encodes a record whose subrecords are packed with pack. The
// compressed flag is added to flags.
func CompressedRecord(code string, flags, formID uint32, pack func([]byte) ([]byte, error), subs ...[]byte) ([]byte, error) {
	raw := Cat(subs...)
	packed, err := pack(raw)
	if err != nil {
		return nil, err
	}
	body := Cat(U32(uint32(len(raw))), packed)
	return RawRecord(code, uint32(len(body)), flags|FlagCompressed, formID, body), nil
}

// Header encodes a TES4 record.
func Header(flags uint32, subs ...[]byte) []byte {
	return Record("TES4", flags, 0, subs...)
}

// MinimalHeader is a TES4 record with only a HEDR subrecord.
func MinimalHeader() []byte {
	return Header(0, Sub("HEDR", F32(1.71), I32(0), U32(0x800)))
}

// Group encodes a top group labelled with a record tag.
func Group(label string, records ...[]byte) []byte {
	body := Cat(records...)
	return RawGroup(label, uint32(24+len(body)), body)
}

// RawGroup encodes a top group with a declared size that need not match body.
func RawGroup(label string, size uint32, body []byte) []byte {
	return Cat(
		[]byte("GRUP"),
		U32(size),
		tag(label),
		I32(0), // top
		U32(0),
		U32(0),
		body,
	)
}

// Plugin concatenates a header record and groups.
func Plugin(header []byte, groups ...[]byte) []byte {
	return Cat(append([][]byte{header}, groups...)...)
}
