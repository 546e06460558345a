package esp

// ObjectBounds is an OBND subrecord: two opposite corners of a bounding box.
type ObjectBounds struct {
	X1, Y1, Z1 int16
	X2, Y2, Z2 int16
}

type DecalFlags uint8

const (
	DecalParallax        DecalFlags = 0x01
	DecalAlphaBlending   DecalFlags = 0x02
	DecalAlphaTesting    DecalFlags = 0x04
	DecalNot4Subtextures DecalFlags = 0x08
)

type TextureFlags uint16

const (
	TextureNoSpecular       TextureFlags = 0x01
	TextureFacegen          TextureFlags = 0x02
	TextureModelSpaceNormal TextureFlags = 0x04
)

// Decal is the 36-byte DODT subrecord.
type Decal struct {
	MinWidth       float32
	MaxWidth       float32
	MinHeight      float32
	MaxHeight      float32
	Depth          float32
	Shininess      float32
	ParallaxScale  float32
	ParallaxPasses uint8
	Flags          DecalFlags
	Unknown        uint16
	Color          Color
}

// TextureSetData is the payload of a TXST record. Textures holds TX00 through TX07.
type TextureSetData struct {
	EDID     *Subrecord[string]
	OBND     *Subrecord[ObjectBounds]
	Textures [8]*Subrecord[string]
	DODT     *Subrecord[Decal]
	DNAM     *Subrecord[TextureFlags]
}

func (d *TextureSetData) field(c *Cursor, t SubrecordType) (bool, error) {
	var err error
	switch t {
	case SubrecordEDID:
		d.EDID, err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordOBND:
		d.OBND, err = decodeSubrecord(c, decodeObjectBounds)
	case SubrecordTX00, SubrecordTX01, SubrecordTX02, SubrecordTX03,
		SubrecordTX04, SubrecordTX05, SubrecordTX06, SubrecordTX07:
		d.Textures[t-SubrecordTX00], err = decodeSubrecord(c, (*Cursor).ZString)
	case SubrecordDODT:
		d.DODT, err = decodeSubrecord(c, decodeDecal)
	case SubrecordDNAM:
		d.DNAM, err = decodeSubrecord(c, func(c *Cursor) (TextureFlags, error) {
			v, err := c.U16()
			return TextureFlags(v), err
		})
	default:
		return false, nil
	}
	return true, err
}

func (d *TextureSetData) editorID() string { return optional(d.EDID) }

// Texture returns the path in slot i (0 for TX00), or "".
func (d *TextureSetData) Texture(i int) string {
	if i < 0 || i >= len(d.Textures) {
		return ""
	}
	return optional(d.Textures[i])
}

func decodeObjectBounds(c *Cursor) (ObjectBounds, error) {
	var b ObjectBounds
	for _, v := range []*int16{&b.X1, &b.Y1, &b.Z1, &b.X2, &b.Y2, &b.Z2} {
		var err error
		if *v, err = c.I16(); err != nil {
			return b, err
		}
	}
	return b, nil
}

func decodeDecal(c *Cursor) (Decal, error) {
	var d Decal
	var err error
	for _, v := range []*float32{&d.MinWidth, &d.MaxWidth, &d.MinHeight, &d.MaxHeight, &d.Depth, &d.Shininess, &d.ParallaxScale} {
		if *v, err = c.F32(); err != nil {
			return d, err
		}
	}
	if d.ParallaxPasses, err = c.U8(); err != nil {
		return d, err
	}
	var flags uint8
	if flags, err = c.U8(); err != nil {
		return d, err
	}
	d.Flags = DecalFlags(flags)
	if d.Unknown, err = c.U16(); err != nil {
		return d, err
	}
	d.Color, err = c.Color()
	return d, err
}
