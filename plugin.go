package esp

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/logicossoftware/go-esp/internal/mmfile"
)

// Plugin is a fully decoded plugin file.
type Plugin struct {
	Header *Record[PluginFlags, FileHeader]
	Groups map[RecordType]DecodedGroup

	order []RecordType
	index map[uint32]Form
}

type groupDecoder func(c *Cursor, kind RecordType) (DecodedGroup, error)

func groupOf[D any, PD recordData[D]](c *Cursor, kind RecordType) (DecodedGroup, error) {
	g, err := decodeGroup[D, PD](c, kind)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// groupDecoders is the closed set of top-level group kinds this package decodes.
var groupDecoders = map[RecordType]groupDecoder{
	RecordKeyword:         groupOf[KeywordData, *KeywordData],
	RecordActionType:      groupOf[ActionTypeData, *ActionTypeData],
	RecordLocationRefType: groupOf[LocationRefTypeData, *LocationRefTypeData],
	RecordGameSetting:     groupOf[GameSettingData, *GameSettingData],
	RecordGlobal:          groupOf[GlobalData, *GlobalData],
	RecordTextureSet:      groupOf[TextureSetData, *TextureSetData],
	RecordClass:           groupOf[ClassData, *ClassData],
}

// SupportedGroups lists the top-level group kinds Decode understands.
func SupportedGroups() []RecordType {
	out := make([]RecordType, 0, len(groupDecoders))
	for k := range groupDecoders {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Decode reads a whole plugin from r. It never returns a partial Plugin: on error the
// result is nil.
func Decode(r io.Reader, opts ...ReadOption) (*Plugin, error) {
	cfg := newReadConfig(opts)
	return decodePlugin(newCursor(r, &cfg))
}

// DecodeFile maps the file at path and decodes it.
func DecodeFile(path string, opts ...ReadOption) (*Plugin, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	p, err := Decode(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func decodePlugin(c *Cursor) (*Plugin, error) {
	tag, err := c.Tag()
	if err != nil {
		return nil, err
	}
	if tag.RecordType() != RecordFileHeader {
		return nil, c.errorf(ErrUnexpectedTag, "expected TES4, found %s", tag)
	}
	header, err := decodeRecord[PluginFlags, FileHeader, *FileHeader](c, RecordFileHeader)
	if err != nil {
		return nil, err
	}
	c.localized = header.Header.Flags.Has(PluginLocalized)

	p := &Plugin{Header: header, Groups: make(map[RecordType]DecodedGroup)}
	limit := c.cfg.groupCount
	for n := 0; limit <= 0 || n < limit; n++ {
		if limit <= 0 {
			eof, err := c.AtEOF()
			if err != nil {
				return nil, err
			}
			if eof {
				break
			}
		}
		if err := p.decodeTopGroup(c); err != nil {
			return nil, err
		}
	}
	if limit > 0 {
		eof, err := c.AtEOF()
		if err != nil {
			return nil, err
		}
		if !eof {
			return nil, c.errorf(ErrTrailingData, "bytes remain after %d groups", limit)
		}
	}
	p.buildIndex()
	return p, nil
}

func (p *Plugin) decodeTopGroup(c *Cursor) error {
	tag, err := c.Tag()
	if err != nil {
		return err
	}
	if tag.RecordType() != RecordGroup {
		return c.errorf(ErrUnexpectedTag, "expected GRUP, found %s", tag)
	}
	label, err := c.PeekTag(4)
	if err != nil {
		return err
	}
	kind := label.RecordType()
	decode, ok := groupDecoders[kind]
	if !ok {
		return c.errorf(ErrUnknownGroup, "%s", label)
	}
	if _, dup := p.Groups[kind]; dup {
		return c.errorf(ErrDuplicateGroup, "%s", kind)
	}
	g, err := decode(c, kind)
	if err != nil {
		return err
	}
	p.Groups[kind] = g
	p.order = append(p.order, kind)
	return nil
}

// buildIndex maps form ids to records. When ids repeat the record decoded last wins.
func (p *Plugin) buildIndex() {
	p.index = make(map[uint32]Form)
	for _, kind := range p.order {
		for _, f := range p.Groups[kind].Forms() {
			p.index[f.FormID()] = f
		}
	}
}

// Group returns the group of the given kind.
func (p *Plugin) Group(kind RecordType) (DecodedGroup, bool) {
	g, ok := p.Groups[kind]
	return g, ok
}

// GroupOf returns the group of the given kind with its payload type. It reports false
// when the plugin has no such group or D is not the kind's payload type.
func GroupOf[D any](p *Plugin, kind RecordType) (*Group[D], bool) {
	g, ok := p.Groups[kind].(*Group[D])
	return g, ok
}

// Kinds returns the group kinds in file order.
func (p *Plugin) Kinds() []RecordType { return slices.Clone(p.order) }

// Record looks up a record by form id.
func (p *Plugin) Record(formID uint32) (Form, bool) {
	f, ok := p.index[formID]
	return f, ok
}

// Len returns the number of records across all groups, excluding the file header.
func (p *Plugin) Len() int {
	n := 0
	for _, g := range p.Groups {
		n += g.Len()
	}
	return n
}

// Localized reports whether the plugin stores strings as string-table ids.
func (p *Plugin) Localized() bool { return p.Header.Header.Flags.Has(PluginLocalized) }
