package stream

import (
	"math"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Writer accumulates a growing MSB buffer. Unlike the teacher's BlockBackend
// (which WriteAt's into a pre-sized file), MSB files are built bottom-up with
// unknown final size, so Writer appends and the Reserver patches offsets
// in after the fact.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Pos returns the current write position (== length written so far).
func (w *Writer) Pos() int64 { return int64(len(w.buf)) }

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteInt8 appends a signed byte.
func (w *Writer) WriteInt8(v int8) { w.buf = append(w.buf, byte(v)) }

// WriteUint8 appends an unsigned byte.
func (w *Writer) WriteUint8(v uint8) { w.buf = append(w.buf, v) }

// WriteBool appends a byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

// WriteInt16 appends a little-endian signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

// WriteUint16 appends a little-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v), byte(v>>8))
}

// WriteInt32 appends a little-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) { w.WriteBytes(toLittleEndian32(uint32(v))) }

// WriteUint32 appends a little-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) { w.WriteBytes(toLittleEndian32(v)) }

// WriteInt64 appends a little-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) { w.WriteBytes(toLittleEndian64(uint64(v))) }

// WriteUint64 appends a little-endian unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) { w.WriteBytes(toLittleEndian64(v)) }

// WriteFloat32 appends a little-endian IEEE-754 single-precision float.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

// WriteUTF16String appends s encoded as null-terminated UTF-16LE.
func (w *Writer) WriteUTF16String(s string) {
	for _, u := range utf16.Encode([]rune(s)) {
		w.WriteUint16(u)
	}
	w.WriteUint16(0)
}

// WritePadding appends n zero bytes.
func (w *Writer) WritePadding(n int64) {
	for i := int64(0); i < n; i++ {
		w.WriteUint8(0)
	}
}

// PatchUint32At overwrites 4 bytes already written, at absolute offset pos.
// Used by Reserver to fill in offsets once their target is known.
func (w *Writer) PatchUint32At(pos int64, v uint32) error {
	if pos < 0 || pos+4 > int64(len(w.buf)) {
		return errors.Errorf("patch offset %d out of range (buffer length %d)", pos, len(w.buf))
	}
	copy(w.buf[pos:pos+4], toLittleEndian32(v))
	return nil
}

// PatchUint64At overwrites 8 bytes already written, at absolute offset pos.
func (w *Writer) PatchUint64At(pos int64, v uint64) error {
	if pos < 0 || pos+8 > int64(len(w.buf)) {
		return errors.Errorf("patch offset %d out of range (buffer length %d)", pos, len(w.buf))
	}
	copy(w.buf[pos:pos+8], toLittleEndian64(v))
	return nil
}

// Align pads the buffer with zero bytes until Pos() is a multiple of n.
func (w *Writer) Align(n int64) {
	for w.Pos()%n != 0 {
		w.WriteUint8(0)
	}
}

// PadTo appends zero bytes until Pos() equals start+size.
func (w *Writer) PadTo(start int64, size int64) error {
	target := start + size
	if w.Pos() > target {
		return errors.Errorf("padding target %d already exceeded at %d", target, w.Pos())
	}
	for w.Pos() < target {
		w.WriteUint8(0)
	}
	return nil
}
