package esp

// KeywordData is the payload shared by KYWD, AACT and LCRT records.
type KeywordData struct {
	EDID *Subrecord[string]
	CNAM *Subrecord[Color]
}

type (
	ActionTypeData      = KeywordData
	LocationRefTypeData = KeywordData
)

func (d *KeywordData) field(c *Cursor, t SubrecordType) (bool, error) {
	var err error
	switch t {
	case SubrecordEDID:
		d.EDID, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordCNAM:
		d.CNAM, err = decodeSubrecord(c, (*Cursor).Color)
	default:
		return false, nil
	}
	return true, err
}

func (d *KeywordData) editorID() string { return optional(d.EDID) }
