package esp

// Form is the kind-independent view of a decoded record.
type Form interface {
	Kind() RecordType
	FormID() uint32
	EditorID() string
	Flags() RecordFlags
}

// DecodedGroup is a top-level group of any catalogued kind. It is implemented only
// by the *Group[D] instantiations this package decodes.
type DecodedGroup interface {
	Kind() RecordType
	GroupHeader() GroupHeader
	Len() int
	Forms() []Form
	sealed()
}

// Group is a homogeneous group: every record carries the group's kind.
type Group[D any] struct {
	Header  GroupHeader
	Records []*Record[RecordFlags, D]
	kind    RecordType
}

func (g *Group[D]) Kind() RecordType         { return g.kind }
func (g *Group[D]) GroupHeader() GroupHeader { return g.Header }
func (g *Group[D]) Len() int                 { return len(g.Records) }
func (g *Group[D]) sealed()                  {}

func (g *Group[D]) Forms() []Form {
	out := make([]Form, len(g.Records))
	for i, r := range g.Records {
		out[i] = r
	}
	return out
}

// decodeGroup decodes a group whose GRUP tag the caller has already consumed.
func decodeGroup[D any, PD recordData[D]](c *Cursor, kind RecordType) (*Group[D], error) {
	h, err := readGroupHeader(c)
	if err != nil {
		return nil, err
	}
	if h.Size < groupHeaderSize {
		return nil, c.errorf(ErrBudgetOverrun, "%s group declares %d bytes, less than its header", kind, h.Size)
	}
	if h.Size > c.cfg.limits.MaxGroupSize {
		return nil, c.errorf(ErrLimitExceeded, "%s group declares %d bytes", kind, h.Size)
	}
	c.EnterGroup(h.Size)

	g := &Group[D]{Header: h, kind: kind}
	for c.group > 0 {
		tag, err := c.Tag()
		if err != nil {
			return nil, err
		}
		if tag.RecordType() != kind {
			return nil, c.errorf(ErrUnexpectedTag, "%s record in %s group", tag, kind)
		}
		rec, err := decodeRecord[RecordFlags, D, PD](c, kind)
		if err != nil {
			return nil, err
		}
		g.Records = append(g.Records, rec)
	}
	if c.group != 0 {
		return nil, c.errorf(ErrBudgetOverrun, "%s group overran its declared size by %d bytes", kind, -c.group)
	}
	c.cfg.logger.Debug().
		Stringer("kind", kind).
		Int("records", len(g.Records)).
		Uint32("size", h.Size).
		Msg("decoded group")
	return g, nil
}
