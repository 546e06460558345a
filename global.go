package esp

// GlobalType is the FNAM code of a global variable.
type GlobalType uint8

const (
	GlobalShort GlobalType = 's'
	GlobalLong  GlobalType = 'l'
	GlobalFloat GlobalType = 'f'
)

func (g GlobalType) String() string {
	switch g {
	case GlobalShort:
		return "short"
	case GlobalLong:
		return "long"
	case GlobalFloat:
		return "float"
	default:
		return "unknown"
	}
}

// GlobalData is the payload of a GLOB record. The value is always stored as a float
// regardless of FNAM.
type GlobalData struct {
	EDID *Subrecord[string]
	FNAM *Subrecord[GlobalType]
	FLTV *Subrecord[float32]
}

func (d *GlobalData) field(c *Cursor, t SubrecordType) (bool, error) {
	var err error
	switch t {
	case SubrecordEDID:
		d.EDID, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordFNAM:
		d.FNAM, err = decodeSubrecord(c, func(c *Cursor) (GlobalType, error) {
			b, err := c.U8()
			return GlobalType(b), err
		})
	case SubrecordFLTV:
		d.FLTV, err = decodeSubrecord(c, (*Cursor).F32)
	default:
		return false, nil
	}
	return true, err
}

func (d *GlobalData) editorID() string { return optional(d.EDID) }

// Value returns FLTV converted to the declared type: int16 for short, int32 for long
// and float32 otherwise.
func (d *GlobalData) Value() any {
	v := optional(d.FLTV)
	switch optional(d.FNAM) {
	case GlobalShort:
		return int16(v)
	case GlobalLong:
		return int32(v)
	default:
		return v
	}
}
