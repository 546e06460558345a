package esp

// PluginFlags are the header flags of the TES4 record.
type PluginFlags uint32

const (
	PluginMaster    PluginFlags = 0x00000001
	PluginLocalized PluginFlags = 0x00000080
	PluginLight     PluginFlags = 0x00000200
)

func (f PluginFlags) Has(x PluginFlags) bool { return f&x == x }

// LatestHeaderVersion is the newest HEDR version written by the game tools.
const LatestHeaderVersion float32 = 1.71

// HeaderInfo is the HEDR subrecord.
type HeaderInfo struct {
	Version      float32
	NumRecords   int32
	NextObjectID uint32
}

// FileHeader is the payload of the TES4 record.
type FileHeader struct {
	HEDR *Subrecord[HeaderInfo]
	CNAM *Subrecord[string] // author
	SNAM *Subrecord[string] // description
	MAST *Subrecord[string]
	DATA *Subrecord[uint64]
	ONAM *Subrecord[[]uint32]
	INTV *Subrecord[uint32]
	INCC *Subrecord[uint32]
}

func (d *FileHeader) field(c *Cursor, t SubrecordType) (bool, error) {
	var err error
	switch t {
	case SubrecordHEDR:
		d.HEDR, err = decodeSubrecord(c, decodeHeaderInfo)
	case SubrecordCNAM:
		d.CNAM, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordSNAM:
		d.SNAM, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordMAST:
		d.MAST, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordDATA:
		d.DATA, err = decodeSubrecord(c, (*Cursor).U64)
	case SubrecordONAM:
		d.ONAM, err = decodeSubrecord(c, repeated((*Cursor).U32))
	case SubrecordINTV:
		d.INTV, err = decodeSubrecord(c, (*Cursor).U32)
	case SubrecordINCC:
		d.INCC, err = decodeSubrecord(c, (*Cursor).U32)
	default:
		return false, nil
	}
	return true, err
}

func decodeHeaderInfo(c *Cursor) (HeaderInfo, error) {
	var h HeaderInfo
	var err error
	if h.Version, err = c.F32(); err != nil {
		return h, err
	}
	if h.NumRecords, err = c.I32(); err != nil {
		return h, err
	}
	h.NextObjectID, err = c.U32()
	return h, err
}

// Author returns the CNAM string, or "".
func (d *FileHeader) Author() string { return optional(d.CNAM) }

// Description returns the SNAM string, or "".
func (d *FileHeader) Description() string { return optional(d.SNAM) }

// Master returns the MAST entry, or "". Only the last MAST in the header is kept.
func (d *FileHeader) Master() string { return optional(d.MAST) }

// Overrides returns the ONAM form ids.
func (d *FileHeader) Overrides() []uint32 {
	if d.ONAM == nil {
		return nil
	}
	return d.ONAM.Data
}

func optional[T any](s *Subrecord[T]) T {
	if s == nil {
		var zero T
		return zero
	}
	return s.Data
}
