package esp

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// Cursor is a forward-only reader over a plugin stream. It tracks three byte budgets,
// one per nesting scope (group, record, subrecord). Entering a scope assigns its
// budget; every read decrements all three, so a loop bounded by an outer budget stays
// correct while nested scopes consume bytes.
//
// A Cursor is owned by a single decode and is not safe for concurrent use.
type Cursor struct {
	r         *bufio.Reader
	cfg       *readConfig
	offset    int64
	group     int64
	record    int64
	subrecord int64
	localized bool
	scratch   [groupHeaderSize]byte
}

// NewCursor wraps r. Options are the same as for Decode.
func NewCursor(r io.Reader, opts ...ReadOption) *Cursor {
	cfg := newReadConfig(opts)
	return newCursor(r, &cfg)
}

func newCursor(r io.Reader, cfg *readConfig) *Cursor {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Cursor{r: br, cfg: cfg}
}

// EnterGroup starts a group scope. total is the declared group size, which includes
// the 24-byte group header already consumed by the caller.
func (c *Cursor) EnterGroup(total uint32) { c.group = int64(total) - groupHeaderSize }

// EnterRecord starts a record scope of n payload bytes.
func (c *Cursor) EnterRecord(n uint32) { c.record = int64(n) }

// EnterSubrecord starts a subrecord scope of n payload bytes.
func (c *Cursor) EnterSubrecord(n uint16) { c.subrecord = int64(n) }

func (c *Cursor) GroupRemaining() int64     { return c.group }
func (c *Cursor) RecordRemaining() int64    { return c.record }
func (c *Cursor) SubrecordRemaining() int64 { return c.subrecord }

// Offset is the number of bytes consumed so far.
func (c *Cursor) Offset() int64 { return c.offset }

// Localized reports whether the file header marked strings as string-table ids.
func (c *Cursor) Localized() bool { return c.localized }

func (c *Cursor) progress(n int) {
	d := int64(n)
	c.offset += d
	c.group -= d
	c.record -= d
	c.subrecord -= d
}

func (c *Cursor) errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", sentinel, c.offset, fmt.Sprintf(format, args...))
}

// unexpected turns a clean EOF in the middle of a structure into io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (c *Cursor) fill(n int) ([]byte, error) {
	b := c.scratch[:n]
	if _, err := io.ReadFull(c.r, b); err != nil {
		return nil, unexpected(err)
	}
	c.progress(n)
	return b, nil
}

func (c *Cursor) U8() (uint8, error) {
	b, err := c.fill(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) U16() (uint16, error) {
	b, err := c.fill(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) U32() (uint32, error) {
	b, err := c.fill(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) U64() (uint64, error) {
	b, err := c.fill(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

func (c *Cursor) F32() (float32, error) {
	v, err := c.U32()
	return math.Float32frombits(v), err
}

// Tag reads a 4-byte type code. Unlike every other field it is big-endian.
func (c *Cursor) Tag() (Tag, error) {
	b, err := c.fill(4)
	if err != nil {
		return 0, err
	}
	return Tag(binary.BigEndian.Uint32(b)), nil
}

// PeekTag returns the tag that starts offset bytes ahead without consuming anything
// or touching the budgets.
func (c *Cursor) PeekTag(offset int) (Tag, error) {
	b, err := c.r.Peek(offset + 4)
	if err != nil {
		return 0, unexpected(err)
	}
	return Tag(binary.BigEndian.Uint32(b[offset:])), nil
}

// AtEOF reports whether the stream ended exactly at the current position.
func (c *Cursor) AtEOF() (bool, error) {
	_, err := c.r.Peek(1)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF):
		return true, nil
	default:
		return false, err
	}
}

// ZString reads a zero-terminated string. The terminator is consumed and stripped.
func (c *Cursor) ZString() (string, error) {
	limit := c.cfg.limits.MaxStringLen
	var raw []byte
	for {
		chunk, err := c.r.ReadSlice(0)
		raw = append(raw, chunk...)
		c.progress(len(chunk))
		if err == nil {
			break
		}
		if !errors.Is(err, bufio.ErrBufferFull) {
			return "", unexpected(err)
		}
		if len(raw) > limit {
			return "", c.errorf(ErrLimitExceeded, "zstring longer than %d bytes", limit)
		}
	}
	raw = raw[:len(raw)-1]
	if len(raw) > limit {
		return "", c.errorf(ErrLimitExceeded, "zstring longer than %d bytes", limit)
	}
	return c.text(raw)
}

func (c *Cursor) text(raw []byte) (string, error) {
	if enc := c.cfg.encoding; enc != nil {
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", c.errorf(ErrInvalidString, "%v", err)
		}
		return string(out), nil
	}
	if !utf8.Valid(raw) {
		return "", c.errorf(ErrInvalidString, "%d bytes are not valid UTF-8", len(raw))
	}
	return string(raw), nil
}

// LString reads a localizable string: a string-table id when the plugin is
// localized, an inline zstring otherwise.
func (c *Cursor) LString() (LString, error) {
	if c.localized {
		id, err := c.U32()
		return LString{ID: id, Localized: true}, err
	}
	s, err := c.ZString()
	return LString{Value: s}, err
}

// Bytes reads n raw bytes into a new slice.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, c.errorf(ErrBudgetOverrun, "negative length %d", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(c.r, b); err != nil {
		return nil, unexpected(err)
	}
	c.progress(n)
	return b, nil
}

// Skip discards n bytes.
func (c *Cursor) Skip(n int) error {
	if n < 0 {
		return c.errorf(ErrBudgetOverrun, "negative length %d", n)
	}
	d, err := c.r.Discard(n)
	c.progress(d)
	if err != nil {
		return unexpected(err)
	}
	return nil
}

func (c *Cursor) Color() (Color, error) {
	b, err := c.fill(4)
	if err != nil {
		return Color{}, err
	}
	return Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func (c *Cursor) VersionControl() (VersionControl, error) {
	b, err := c.fill(4)
	if err != nil {
		return VersionControl{}, err
	}
	return VersionControl{Day: b[0], Month: b[1], PreviousEditor: b[2], CurrentEditor: b[3]}, nil
}
