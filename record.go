package esp

import (
	"bytes"
	"fmt"
)

// RecordFlags are the header flags shared by ordinary records.
type RecordFlags uint32

const (
	FlagDeleted               RecordFlags = 0x00000020
	FlagConstant              RecordFlags = 0x00000040
	FlagMustUpdateAnims       RecordFlags = 0x00000100
	FlagQuestItem             RecordFlags = 0x00000400
	FlagInitiallyDisabled     RecordFlags = 0x00000800
	FlagIgnored               RecordFlags = 0x00001000
	FlagVisibleWhenDistant    RecordFlags = 0x00008000
	FlagCompressed            RecordFlags = 0x00040000
	FlagCannotWait            RecordFlags = 0x00080000
	FlagIsMarker              RecordFlags = 0x00800000
	FlagNavMeshGenFilter      RecordFlags = 0x04000000
	FlagNavMeshGenBoundingBox RecordFlags = 0x08000000
	FlagNavMeshGenGround      RecordFlags = 0x10000000
)

func (f RecordFlags) Has(x RecordFlags) bool { return f&x == x }

// LString is a localizable string. Localized plugins store a string-table id
// instead of the text.
type LString struct {
	ID        uint32
	Value     string
	Localized bool
}

func (s LString) String() string {
	if s.Localized {
		return fmt.Sprintf("$%08x", s.ID)
	}
	return s.Value
}

// Record is a decoded record: the kind its tag classified to, the header and the
// payload produced by the kind's field table.
type Record[F ~uint32, D any] struct {
	Type   RecordType
	Header RecordHeader[F]
	Data   D
}

func (r *Record[F, D]) Kind() RecordType   { return r.Type }
func (r *Record[F, D]) FormID() uint32     { return r.Header.FormID }
func (r *Record[F, D]) Flags() RecordFlags { return RecordFlags(r.Header.Flags) }

// EditorID returns the EDID of the record, or "" when the kind has none.
func (r *Record[F, D]) EditorID() string {
	if e, ok := any(&r.Data).(interface{ editorID() string }); ok {
		return e.editorID()
	}
	return ""
}

// decodeRecord decodes a record whose tag the caller has already consumed.
func decodeRecord[F ~uint32, D any, PD recordData[D]](c *Cursor, kind RecordType) (*Record[F, D], error) {
	h, err := readRecordHeader[F](c)
	if err != nil {
		return nil, err
	}
	if h.Size > c.cfg.limits.MaxRecordSize {
		return nil, c.errorf(ErrLimitExceeded, "%s record %08x declares %d bytes", kind, h.FormID, h.Size)
	}
	c.EnterRecord(h.Size)

	rec := &Record[F, D]{Type: kind, Header: h}
	if kind != RecordFileHeader && RecordFlags(h.Flags).Has(FlagCompressed) {
		err = decodeCompressed(c, kind, PD(&rec.Data))
	} else {
		err = decodeFields(c, kind, PD(&rec.Data))
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// decodeCompressed inflates a compressed record payload and decodes it with a child
// cursor. The outer record budget is consumed in full before the payload is parsed.
func decodeCompressed(c *Cursor, kind RecordType, t fieldTable) error {
	if c.record < 4 {
		return c.errorf(ErrInvalidPayload, "compressed %s record has no size prefix", kind)
	}
	size, err := c.U32()
	if err != nil {
		return err
	}
	if size > c.cfg.limits.MaxDecompressedSize {
		return c.errorf(ErrLimitExceeded, "compressed %s record inflates to %d bytes", kind, size)
	}
	packed, err := c.Bytes(int(c.record))
	if err != nil {
		return err
	}
	raw, err := decompressRecord(c.cfg.compression, packed, size)
	if err != nil {
		return fmt.Errorf("%s record ending at offset %d: %w", kind, c.offset, err)
	}

	inner := newCursor(bytes.NewReader(raw), c.cfg)
	inner.localized = c.localized
	inner.EnterRecord(size)
	if err := decodeFields(inner, kind, t); err != nil {
		return fmt.Errorf("compressed %s record ending at offset %d: %w", kind, c.offset, err)
	}
	return nil
}
