package esp

import (
	"encoding/binary"
)

const (
	// groupHeaderSize covers the GRUP tag and the five header words.
	groupHeaderSize = 24
	// recordHeaderSize excludes the record tag, which the caller reads first.
	recordHeaderSize = 20
)

// Color is a 4-byte RGBA value.
type Color struct {
	R, G, B, A uint8
}

// VersionControl is the 4-byte version-control block carried by every record header.
// It is kept as read and never interpreted.
type VersionControl struct {
	Day            uint8
	Month          uint8
	PreviousEditor uint8
	CurrentEditor  uint8
}

// RecordHeader is the fixed part of a record following its tag.
type RecordHeader[F ~uint32] struct {
	Size           uint32
	Flags          F
	FormID         uint32
	VersionControl VersionControl
	Version        uint16
	Unknown        uint16
}

// SubrecordHeader is the fixed part of a subrecord following its tag.
type SubrecordHeader struct {
	Size uint16
}

// GroupHeader is the fixed part of a group following its GRUP tag.
type GroupHeader struct {
	Size           uint32 // includes the 24 header bytes
	Label          uint32
	Type           GroupType
	VersionControl uint32
	Unknown        uint32
}

// LabelTag reinterprets the label as the record tag of a top group.
func (h GroupHeader) LabelTag() Tag {
	return tagFromLabel(h.Label)
}

func readRecordHeader[F ~uint32](c *Cursor) (RecordHeader[F], error) {
	buf, err := c.fill(recordHeaderSize)
	if err != nil {
		return RecordHeader[F]{}, err
	}
	var h RecordHeader[F]
	h.Size = binary.LittleEndian.Uint32(buf[0:4])
	h.Flags = F(binary.LittleEndian.Uint32(buf[4:8]))
	h.FormID = binary.LittleEndian.Uint32(buf[8:12])
	h.VersionControl = VersionControl{Day: buf[12], Month: buf[13], PreviousEditor: buf[14], CurrentEditor: buf[15]}
	h.Version = binary.LittleEndian.Uint16(buf[16:18])
	h.Unknown = binary.LittleEndian.Uint16(buf[18:20])
	return h, nil
}

func readSubrecordHeader(c *Cursor) (SubrecordHeader, error) {
	size, err := c.U16()
	return SubrecordHeader{Size: size}, err
}

func readGroupHeader(c *Cursor) (GroupHeader, error) {
	buf, err := c.fill(groupHeaderSize - 4)
	if err != nil {
		return GroupHeader{}, err
	}
	var h GroupHeader
	h.Size = binary.LittleEndian.Uint32(buf[0:4])
	h.Label = binary.LittleEndian.Uint32(buf[4:8])
	h.Type = GroupTypeFrom(int32(binary.LittleEndian.Uint32(buf[8:12])))
	h.VersionControl = binary.LittleEndian.Uint32(buf[12:16])
	h.Unknown = binary.LittleEndian.Uint32(buf[16:20])
	return h, nil
}
