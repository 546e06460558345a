package esp

import "fmt"

// SettingType is the value type of a game setting, taken from the first letter of
// its editor id.
type SettingType uint8

const (
	SettingUnknown SettingType = iota
	SettingBool
	SettingInt
	SettingUint
	SettingFloat
	SettingString
)

var settingTypeNames = [...]string{"unknown", "bool", "int", "uint", "float", "string"}

func (s SettingType) String() string {
	if int(s) < len(settingTypeNames) {
		return settingTypeNames[s]
	}
	return "unknown"
}

func settingTypeOf(editorID string) SettingType {
	if editorID == "" {
		return SettingUnknown
	}
	switch editorID[0] {
	case 'b':
		return SettingBool
	case 'i':
		return SettingInt
	case 'u':
		return SettingUint
	case 'f':
		return SettingFloat
	case 's':
		return SettingString
	default:
		return SettingUnknown
	}
}

// SettingValue is the DATA of a game setting. Only the field selected by Type is set;
// Raw holds the bytes when the type could not be determined.
type SettingValue struct {
	Type  SettingType
	Bool  bool
	Int   int32
	Uint  uint32
	Float float32
	Str   LString
	Raw   []byte
}

// Any returns the value held by v.
func (v SettingValue) Any() any {
	switch v.Type {
	case SettingBool:
		return v.Bool
	case SettingInt:
		return v.Int
	case SettingUint:
		return v.Uint
	case SettingFloat:
		return v.Float
	case SettingString:
		return v.Str.String()
	default:
		return v.Raw
	}
}

func (v SettingValue) String() string { return fmt.Sprint(v.Any()) }

// GameSettingData is the payload of a GMST record. DATA is typed by the EDID that
// precedes it.
type GameSettingData struct {
	EDID *Subrecord[string]
	DATA *Subrecord[SettingValue]
}

func (d *GameSettingData) field(c *Cursor, t SubrecordType) (bool, error) {
	var err error
	switch t {
	case SubrecordEDID:
		d.EDID, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordDATA:
		typ := settingTypeOf(d.editorID())
		d.DATA, err = decodeSubrecord(c, func(c *Cursor) (SettingValue, error) {
			return decodeSettingValue(c, typ)
		})
	default:
		return false, nil
	}
	return true, err
}

func (d *GameSettingData) editorID() string { return optional(d.EDID) }

func decodeSettingValue(c *Cursor, typ SettingType) (SettingValue, error) {
	v := SettingValue{Type: typ}
	var err error
	switch typ {
	case SettingBool:
		var u uint32
		u, err = c.U32()
		v.Bool = u != 0
	case SettingInt:
		v.Int, err = c.I32()
	case SettingUint:
		v.Uint, err = c.U32()
	case SettingFloat:
		v.Float, err = c.F32()
	case SettingString:
		v.Str, err = c.LString()
	default:
		v.Raw, err = c.Bytes(int(c.SubrecordRemaining()))
	}
	return v, err
}
