package esp

import (
	"fmt"
	"math/bits"
)

// Tag is a raw 4-byte type code, stored as the big-endian value of its ASCII bytes
// so that Tag(0x54455334) prints as "TES4".
type Tag uint32

// TagOf converts a 4-character code such as "KYWD" to a Tag.
func TagOf(code string) (Tag, error) {
	if len(code) != 4 {
		return 0, fmt.Errorf("esp: type code %q must be 4 bytes long", code)
	}
	return Tag(uint32(code[0])<<24 | uint32(code[1])<<16 | uint32(code[2])<<8 | uint32(code[3])), nil
}

// Bytes returns the tag in file order.
func (t Tag) Bytes() [4]byte {
	return [4]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
}

func (t Tag) String() string {
	b := t.Bytes()
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", uint32(t))
		}
	}
	return string(b[:])
}

// tagFromLabel reinterprets a little-endian label word as the tag whose bytes it holds.
func tagFromLabel(label uint32) Tag {
	return Tag(bits.ReverseBytes32(label))
}

// RecordType classifies record tags. Values equal the tag they stand for.
type RecordType uint32

const (
	RecordUnknown         RecordType = 0
	RecordFileHeader      RecordType = 0x54455334 // TES4
	RecordGroup           RecordType = 0x47525550 // GRUP
	RecordKeyword         RecordType = 0x4B595744 // KYWD
	RecordGameSetting     RecordType = 0x474D5354 // GMST
	RecordGlobal          RecordType = 0x474C4F42 // GLOB
	RecordActionType      RecordType = 0x41414354 // AACT
	RecordLocationRefType RecordType = 0x4C435254 // LCRT
	RecordTextureSet      RecordType = 0x54585354 // TXST
	RecordClass           RecordType = 0x434C4153 // CLAS
)

var recordTypeNames = map[RecordType]string{
	RecordFileHeader:      "FileHeader",
	RecordGroup:           "Group",
	RecordKeyword:         "Keyword",
	RecordGameSetting:     "GameSetting",
	RecordGlobal:          "Global",
	RecordActionType:      "ActionType",
	RecordLocationRefType: "LocationRefType",
	RecordTextureSet:      "TextureSet",
	RecordClass:           "Class",
}

// RecordType classifies t, returning RecordUnknown for codes outside the catalogue.
func (t Tag) RecordType() RecordType {
	if _, ok := recordTypeNames[RecordType(t)]; ok {
		return RecordType(t)
	}
	return RecordUnknown
}

func (r RecordType) String() string {
	if r == RecordUnknown {
		return "Unknown"
	}
	return Tag(r).String()
}

// Name returns a readable name such as "Keyword".
func (r RecordType) Name() string {
	if n, ok := recordTypeNames[r]; ok {
		return n
	}
	return "Unknown"
}

// SubrecordType classifies subrecord tags. Values equal the tag they stand for.
type SubrecordType uint32

const (
	SubrecordUnknown SubrecordType = 0
	SubrecordHEDR    SubrecordType = 0x48454452
	SubrecordCNAM    SubrecordType = 0x434E414D
	SubrecordSNAM    SubrecordType = 0x534E414D
	SubrecordMAST    SubrecordType = 0x4D415354
	SubrecordDATA    SubrecordType = 0x44415441
	SubrecordONAM    SubrecordType = 0x4F4E414D
	SubrecordINTV    SubrecordType = 0x494E5456
	SubrecordINCC    SubrecordType = 0x494E4343
	SubrecordEDID    SubrecordType = 0x45444944
	SubrecordFULL    SubrecordType = 0x46554C4C
	SubrecordDESC    SubrecordType = 0x44455343
	SubrecordICON    SubrecordType = 0x49434F4E
	SubrecordFNAM    SubrecordType = 0x464E414D
	SubrecordFLTV    SubrecordType = 0x464C5456
	SubrecordOBND    SubrecordType = 0x4F424E44
	SubrecordTX00    SubrecordType = 0x54583030
	SubrecordTX01    SubrecordType = 0x54583031
	SubrecordTX02    SubrecordType = 0x54583032
	SubrecordTX03    SubrecordType = 0x54583033
	SubrecordTX04    SubrecordType = 0x54583034
	SubrecordTX05    SubrecordType = 0x54583035
	SubrecordTX06    SubrecordType = 0x54583036
	SubrecordTX07    SubrecordType = 0x54583037
	SubrecordDODT    SubrecordType = 0x444F4454
	SubrecordDNAM    SubrecordType = 0x444E414D
)

var knownSubrecords = map[SubrecordType]struct{}{
	SubrecordHEDR: {}, SubrecordCNAM: {}, SubrecordSNAM: {}, SubrecordMAST: {},
	SubrecordDATA: {}, SubrecordONAM: {}, SubrecordINTV: {}, SubrecordINCC: {},
	SubrecordEDID: {}, SubrecordFULL: {}, SubrecordDESC: {}, SubrecordICON: {},
	SubrecordFNAM: {}, SubrecordFLTV: {}, SubrecordOBND: {},
	SubrecordTX00: {}, SubrecordTX01: {}, SubrecordTX02: {}, SubrecordTX03: {},
	SubrecordTX04: {}, SubrecordTX05: {}, SubrecordTX06: {}, SubrecordTX07: {},
	SubrecordDODT: {}, SubrecordDNAM: {},
}

// SubrecordType classifies t, returning SubrecordUnknown for codes outside the catalogue.
func (t Tag) SubrecordType() SubrecordType {
	if _, ok := knownSubrecords[SubrecordType(t)]; ok {
		return SubrecordType(t)
	}
	return SubrecordUnknown
}

func (s SubrecordType) String() string {
	if s == SubrecordUnknown {
		return "Unknown"
	}
	return Tag(s).String()
}

// GroupType is the kind word of a group header.
type GroupType int32

const (
	GroupTop GroupType = iota
	GroupWorldChildren
	GroupInteriorCellBlock
	GroupInteriorCellSubBlock
	GroupExteriorCellBlock
	GroupExteriorCellSubBlock
	GroupCellChildren
	GroupTopicChildren
	GroupCellPersistentChildren
	GroupCellTemporaryChildren
	GroupUnknown
)

// GroupTypeFrom classifies a raw group kind, mapping out-of-range values to GroupUnknown.
func GroupTypeFrom(v int32) GroupType {
	if v < int32(GroupTop) || v >= int32(GroupUnknown) {
		return GroupUnknown
	}
	return GroupType(v)
}

var groupTypeNames = [...]string{
	"Top",
	"WorldChildren",
	"InteriorCellBlock",
	"InteriorCellSubBlock",
	"ExteriorCellBlock",
	"ExteriorCellSubBlock",
	"CellChildren",
	"TopicChildren",
	"CellPersistentChildren",
	"CellTemporaryChildren",
	"Unknown",
}

func (g GroupType) String() string {
	if g < GroupTop || g > GroupUnknown {
		return "Unknown"
	}
	return groupTypeNames[g]
}
