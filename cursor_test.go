package esp

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func cursorOf(b []byte, opts ...ReadOption) *Cursor {
	return NewCursor(bytes.NewReader(b), opts...)
}

func TestCursor_U32LittleEndian(t *testing.T) {
	c := cursorOf([]byte{0x01, 0x00, 0x00, 0x00})
	v, err := c.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v)
	assert.Equal(t, int64(4), c.Offset())
}

func TestCursor_Primitives(t *testing.T) {
	c := cursorOf([]byte{
		0x7f,
		0x34, 0x12,
		0xfe, 0xff,
		0xfd, 0xff, 0xff, 0xff,
		0x00, 0x00, 0xc0, 0x3f, // 1.5
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	})
	u8, err := c.U8()
	require.NoError(t, err)
	u16, err := c.U16()
	require.NoError(t, err)
	i16, err := c.I16()
	require.NoError(t, err)
	i32, err := c.I32()
	require.NoError(t, err)
	f32, err := c.F32()
	require.NoError(t, err)
	u64, err := c.U64()
	require.NoError(t, err)

	assert.Equal(t, uint8(0x7f), u8)
	assert.Equal(t, uint16(0x1234), u16)
	assert.Equal(t, int16(-2), i16)
	assert.Equal(t, int32(-3), i32)
	assert.Equal(t, float32(1.5), f32)
	assert.Equal(t, uint64(0x0102030405060708), u64)
}

func TestCursor_TagBigEndian(t *testing.T) {
	c := cursorOf([]byte{0x54, 0x45, 0x53, 0x34})
	tag, err := c.Tag()
	require.NoError(t, err)
	assert.Equal(t, Tag(0x54455334), tag)
	assert.Equal(t, "TES4", tag.String())
	assert.Equal(t, RecordFileHeader, tag.RecordType())
}

func TestCursor_ReadsDecrementEveryBudget(t *testing.T) {
	c := cursorOf(make([]byte, 16))
	c.EnterGroup(100)
	c.EnterRecord(10)
	c.EnterSubrecord(4)
	assert.Equal(t, int64(76), c.GroupRemaining())

	_, err := c.U32()
	require.NoError(t, err)
	assert.Equal(t, int64(72), c.GroupRemaining())
	assert.Equal(t, int64(6), c.RecordRemaining())
	assert.Equal(t, int64(0), c.SubrecordRemaining())

	require.NoError(t, c.Skip(6))
	assert.Equal(t, int64(0), c.RecordRemaining())
	assert.Equal(t, int64(-6), c.SubrecordRemaining())
	assert.Equal(t, int64(10), c.Offset())
}

func TestCursor_PeekTagLeavesStateAlone(t *testing.T) {
	c := cursorOf([]byte("GRUP\x18\x00\x00\x00KYWD"))
	c.EnterRecord(12)

	tag, err := c.PeekTag(8)
	require.NoError(t, err)
	assert.Equal(t, RecordKeyword, tag.RecordType())
	assert.Equal(t, int64(0), c.Offset())
	assert.Equal(t, int64(12), c.RecordRemaining())

	first, err := c.Tag()
	require.NoError(t, err)
	assert.Equal(t, RecordGroup, first.RecordType())
}

func TestCursor_PeekTagPastEnd(t *testing.T) {
	c := cursorOf([]byte("GRUP"))
	_, err := c.PeekTag(4)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCursor_ZString(t *testing.T) {
	c := cursorOf([]byte{0x41, 0x42, 0x00, 0xff})
	c.EnterSubrecord(3)
	s, err := c.ZString()
	require.NoError(t, err)
	assert.Equal(t, "AB", s)
	assert.Equal(t, int64(3), c.Offset())
	assert.Equal(t, int64(0), c.SubrecordRemaining())
}

func TestCursor_ZStringLongerThanBuffer(t *testing.T) {
	want := strings.Repeat("a", 5000)
	c := cursorOf(append([]byte(want), 0))
	s, err := c.ZString()
	require.NoError(t, err)
	assert.Equal(t, want, s)
	assert.Equal(t, int64(5001), c.Offset())
}

func TestCursor_ZStringErrors(t *testing.T) {
	t.Run("unterminated", func(t *testing.T) {
		_, err := cursorOf([]byte("abc")).ZString()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.False(t, IsFormatError(err))
	})
	t.Run("invalid utf8", func(t *testing.T) {
		_, err := cursorOf([]byte{0xc3, 0x28, 0x00}).ZString()
		require.ErrorIs(t, err, ErrInvalidString)
		assert.True(t, IsFormatError(err))
	})
	t.Run("too long", func(t *testing.T) {
		_, err := cursorOf([]byte("ABCD\x00"), WithReadLimits(Limits{MaxStringLen: 3})).ZString()
		require.ErrorIs(t, err, ErrLimitExceeded)
	})
}

func TestCursor_ZStringCodePage(t *testing.T) {
	c := cursorOf([]byte{'C', 'a', 'f', 0xe9, 0x00}, WithStringEncoding(charmap.Windows1252))
	s, err := c.ZString()
	require.NoError(t, err)
	assert.Equal(t, "Café", s)
}

func TestCursor_LString(t *testing.T) {
	c := cursorOf([]byte("Iron\x00"))
	s, err := c.LString()
	require.NoError(t, err)
	assert.Equal(t, LString{Value: "Iron"}, s)
	assert.Equal(t, "Iron", s.String())

	c = cursorOf([]byte{0x34, 0x12, 0x00, 0x00})
	c.localized = true
	s, err = c.LString()
	require.NoError(t, err)
	assert.Equal(t, LString{ID: 0x1234, Localized: true}, s)
	assert.Equal(t, "$00001234", s.String())
}

func TestCursor_BytesSkipAndEOF(t *testing.T) {
	c := cursorOf([]byte{1, 2, 3, 4, 5})
	b, err := c.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	require.NoError(t, c.Skip(2))
	eof, err := c.AtEOF()
	require.NoError(t, err)
	assert.False(t, eof)

	_, err = c.Bytes(2)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = c.Bytes(-1)
	require.ErrorIs(t, err, ErrBudgetOverrun)
	require.ErrorIs(t, c.Skip(-1), ErrBudgetOverrun)
}

func TestCursor_AtEOF(t *testing.T) {
	c := cursorOf([]byte{0})
	_, err := c.U8()
	require.NoError(t, err)
	eof, err := c.AtEOF()
	require.NoError(t, err)
	assert.True(t, eof)

	require.ErrorIs(t, c.Skip(1), io.ErrUnexpectedEOF)
}

func TestCursor_ColorAndVersionControl(t *testing.T) {
	c := cursorOf([]byte{10, 20, 30, 255, 15, 6, 2, 3})
	col, err := c.Color()
	require.NoError(t, err)
	assert.Equal(t, Color{R: 10, G: 20, B: 30, A: 255}, col)

	vc, err := c.VersionControl()
	require.NoError(t, err)
	assert.Equal(t, VersionControl{Day: 15, Month: 6, PreviousEditor: 2, CurrentEditor: 3}, vc)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestCursor_IOErrorPassesThrough(t *testing.T) {
	boom := io.ErrClosedPipe
	c := NewCursor(failingReader{err: boom})
	_, err := c.U32()
	require.ErrorIs(t, err, boom)
	assert.False(t, IsFormatError(err))

	_, err = NewCursor(failingReader{err: boom}).AtEOF()
	require.ErrorIs(t, err, boom)
}
