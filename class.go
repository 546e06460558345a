package esp

type ClassFlags uint8

const ClassGuard ClassFlags = 0x01

// ClassInfo is the DATA subrecord of a CLAS record.
type ClassInfo struct {
	Unknown         uint32
	TrainingSkill   uint8
	TrainingLevel   uint8
	SkillWeights    [18]uint8
	BleedoutDefault float32
	VoicePoints     uint32
	HealthWeight    uint8
	MagickaWeight   uint8
	StaminaWeight   uint8
	Flags           ClassFlags
}

type ClassData struct {
	EDID *Subrecord[string]
	FULL *Subrecord[LString]
	DESC *Subrecord[LString]
	ICON *Subrecord[string]
	DATA *Subrecord[ClassInfo]
}

func (d *ClassData) field(c *Cursor, t SubrecordType) (bool, error) {
	var err error
	switch t {
	case SubrecordEDID:
		d.EDID, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordFULL:
		d.FULL, err = decodeSubrecord(c, (*Cursor).LString)
	case SubrecordDESC:
		d.DESC, err = decodeSubrecord(c, (*Cursor).LString)
	case SubrecordICON:
		d.ICON, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordDATA:
		d.DATA, err = decodeSubrecord(c, decodeClassInfo)
	default:
		return false, nil
	}
	return true, err
}

func (d *ClassData) editorID() string { return optional(d.EDID) }

func decodeClassInfo(c *Cursor) (ClassInfo, error) {
	var ci ClassInfo
	var err error
	if ci.Unknown, err = c.U32(); err != nil {
		return ci, err
	}
	if ci.TrainingSkill, err = c.U8(); err != nil {
		return ci, err
	}
	if ci.TrainingLevel, err = c.U8(); err != nil {
		return ci, err
	}
	weights, err := c.Bytes(len(ci.SkillWeights))
	if err != nil {
		return ci, err
	}
	copy(ci.SkillWeights[:], weights)
	if ci.BleedoutDefault, err = c.F32(); err != nil {
		return ci, err
	}
	if ci.VoicePoints, err = c.U32(); err != nil {
		return ci, err
	}
	for _, v := range []*uint8{&ci.HealthWeight, &ci.MagickaWeight, &ci.StaminaWeight} {
		if *v, err = c.U8(); err != nil {
			return ci, err
		}
	}
	var flags uint8
	flags, err = c.U8()
	ci.Flags = ClassFlags(flags)
	return ci, err
}
