package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteInt8(-7)
	w.WriteUint8(200)
	w.WriteBool(true)
	w.WriteBool(false)
	w.WriteInt16(-1000)
	w.WriteUint16(60000)
	w.WriteInt32(-100000)
	w.WriteUint32(4000000000)
	w.WriteInt64(-1 << 40)
	w.WriteUint64(1 << 40)
	w.WriteFloat32(3.5)
	w.WriteUTF16String("hello, maps")

	r := NewReader(w.Bytes())
	i8, err := r.Int8()
	require.NoError(t, err)
	assert.Equal(t, int8(-7), i8)

	u8, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)

	b1, err := r.Bool()
	require.NoError(t, err)
	assert.True(t, b1)
	b2, err := r.Bool()
	require.NoError(t, err)
	assert.False(t, b2)

	i16, err := r.Int16()
	require.NoError(t, err)
	assert.Equal(t, int16(-1000), i16)

	u16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(60000), u16)

	i32, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-100000), i32)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(4000000000), u32)

	i64, err := r.Int64()
	require.NoError(t, err)
	assert.EqualValues(t, -1<<40, i64)

	u64, err := r.Uint64()
	require.NoError(t, err)
	assert.EqualValues(t, 1<<40, u64)

	f32, err := r.Float32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)

	s, err := r.UTF16String()
	require.NoError(t, err)
	assert.Equal(t, "hello, maps", s)
}

func TestReaderShortBufferErrors(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.Uint32()
	assert.Error(t, err)
}

func TestReaderAlignAndPadding(t *testing.T) {
	w := NewWriter()
	w.WriteUint8(1)
	w.Align(8)
	assert.Equal(t, int64(8), w.Pos())

	r := NewReader(w.Bytes())
	_, err := r.Uint8()
	require.NoError(t, err)
	require.NoError(t, r.AssertPadding(7))
}

func TestReaderAssertPaddingRejectsNonzero(t *testing.T) {
	r := NewReader([]byte{0, 0, 1, 0})
	err := r.AssertPadding(4)
	assert.Error(t, err)
}

func TestPeekUint32AtDoesNotMoveCursor(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(1)
	w.WriteUint32(0xDEADBEEF)
	r := NewReader(w.Bytes())
	before := r.Pos()
	v, err := r.PeekUint32At(4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
	assert.Equal(t, before, r.Pos())
}

func TestWriterPatchUint32And64At(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(0)
	w.WriteUint64(0)
	require.NoError(t, w.PatchUint32At(0, 7))
	require.NoError(t, w.PatchUint64At(4, 1234567890123))

	r := NewReader(w.Bytes())
	v32, err := r.Uint32()
	require.NoError(t, err)
	assert.EqualValues(t, 7, v32)
	v64, err := r.Uint64()
	require.NoError(t, err)
	assert.EqualValues(t, 1234567890123, v64)
}

func TestWriterPatchOutOfRangeErrors(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(0)
	assert.Error(t, w.PatchUint64At(0, 1))
}
