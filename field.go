package esp

// decodeFunc decodes one value of T from the cursor.
type decodeFunc[T any] = func(*Cursor) (T, error)

// fieldTable is implemented by record payloads. field decodes one subrecord whose tag
// has already been read and reports false when the payload has no slot for t.
type fieldTable interface {
	field(c *Cursor, t SubrecordType) (handled bool, err error)
}

// recordData ties a payload type to its pointer, which carries the field table.
type recordData[D any] interface {
	*D
	fieldTable
}

// decodeFields runs the dispatch loop of a record payload until the record budget
// is spent. The budget must end at exactly zero.
func decodeFields(c *Cursor, kind RecordType, t fieldTable) error {
	for c.record > 0 {
		tag, err := c.Tag()
		if err != nil {
			return err
		}
		handled, err := t.field(c, tag.SubrecordType())
		if err != nil {
			return err
		}
		if handled {
			continue
		}
		if err := c.unknownSubrecord(kind, tag); err != nil {
			return err
		}
	}
	if c.record != 0 {
		return c.errorf(ErrBudgetOverrun, "%s record overran its declared size by %d bytes", kind, -c.record)
	}
	return nil
}

func (c *Cursor) unknownSubrecord(kind RecordType, tag Tag) error {
	if c.cfg.policyFor(kind) == RejectUnknown {
		return c.errorf(ErrUnknownSubrecord, "%s in %s", tag, kind)
	}
	h, err := readSubrecordHeader(c)
	if err != nil {
		return err
	}
	c.EnterSubrecord(h.Size)
	c.cfg.logger.Debug().
		Stringer("record", kind).
		Stringer("subrecord", tag).
		Uint16("size", h.Size).
		Msg("skipping unknown subrecord")
	return c.Skip(int(h.Size))
}

// Subrecord is a decoded subrecord payload with its header.
type Subrecord[D any] struct {
	Header SubrecordHeader
	Data   D
}

func decodeSubrecord[D any](c *Cursor, decode decodeFunc[D]) (*Subrecord[D], error) {
	h, err := readSubrecordHeader(c)
	if err != nil {
		return nil, err
	}
	c.EnterSubrecord(h.Size)
	data, err := decode(c)
	if err != nil {
		return nil, err
	}
	if c.cfg.strictSubrecords && c.subrecord != 0 {
		return nil, c.errorf(ErrBudgetOverrun, "subrecord declared %d bytes, %d left after decoding", h.Size, c.subrecord)
	}
	return &Subrecord[D]{Header: h, Data: data}, nil
}

// repeated decodes elements until the subrecord budget is spent.
func repeated[T any](elem decodeFunc[T]) decodeFunc[[]T] {
	return func(c *Cursor) ([]T, error) {
		var out []T
		for c.subrecord > 0 {
			v, err := elem(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

