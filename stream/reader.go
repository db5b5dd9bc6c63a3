package stream

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// Reader is a cursor over an in-memory MSB buffer. All MSB fields are
// little-endian, so every fixed-width read goes through this type rather
// than raw encoding/binary calls scattered through msb.
type Reader struct {
	buf []byte
	pos int64
}

// NewReader wraps buf for sequential and offset-relative reads.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read cursor, relative to the start of buf.
func (r *Reader) Pos() int64 { return r.pos }

// Seek moves the cursor to an absolute offset from the start of buf.
func (r *Reader) Seek(pos int64) {
	r.pos = pos
}

// Len returns the total size of the underlying buffer.
func (r *Reader) Len() int64 { return int64(len(r.buf)) }

func (r *Reader) need(n int64) error {
	if r.pos < 0 || r.pos+n > int64(len(r.buf)) {
		return errors.Errorf("read past end of buffer at offset %d (need %d bytes, have %d)", r.pos, n, int64(len(r.buf))-r.pos)
	}
	return nil
}

// Bytes reads n raw bytes and advances the cursor.
func (r *Reader) Bytes(n int64) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// Int8 reads a signed byte.
func (r *Reader) Int8() (int8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

// Uint8 reads an unsigned byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads a single byte as a boolean (nonzero is true).
func (r *Reader) Bool() (bool, error) {
	b, err := r.Uint8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// Int16 reads a little-endian signed 16-bit integer.
func (r *Reader) Int16() (int16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// Uint16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Int32 reads a little-endian signed 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// Uint32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int64 reads a little-endian signed 64-bit integer.
func (r *Reader) Int64() (int64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// Uint64 reads a little-endian unsigned 64-bit integer.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Float32 reads a little-endian IEEE-754 single-precision float.
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// UTF16String reads a null-terminated UTF-16LE string at the current
// position (BMP-limited, as MSB never stores surrogate pairs).
func (r *Reader) UTF16String() (string, error) {
	var units []uint16
	for {
		u, err := r.Uint16()
		if err != nil {
			return "", errors.Wrap(err, "reading UTF-16 string")
		}
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units)), nil
}

// PeekUint32At reads a uint32 at an absolute offset without disturbing the
// cursor ("peek-seek-restore"), used to sniff a subtype tag before
// dispatching to the right concrete Entry deserializer.
func (r *Reader) PeekUint32At(pos int64) (uint32, error) {
	saved := r.pos
	defer func() { r.pos = saved }()
	r.pos = pos
	return r.Uint32()
}

// AssertZero returns a FormatError-flavored error if v is not 0. Used for
// header fields the format requires to be zero/reserved.
func AssertZero(name string, v int64) error {
	if v != 0 {
		return errors.Errorf("%s must be 0, found %d", name, v)
	}
	return nil
}

// AssertNonZero returns an error if v is 0. Used for offset fields that the
// format requires to always be populated.
func AssertNonZero(name string, v int64) error {
	if v == 0 {
		return errors.Errorf("%s must not be 0", name)
	}
	return nil
}

// AssertValue returns an error if v does not equal want. Used for reserved
// fields the format fixes to a specific constant (e.g. always -1).
func AssertValue(name string, want, v int64) error {
	if v != want {
		return errors.Errorf("%s must be %d, found %d", name, want, v)
	}
	return nil
}

// Align advances the cursor to the next multiple of n, verifying that every
// skipped byte is zero (MSB pads with zero, never garbage).
func (r *Reader) Align(n int64) error {
	for r.pos%n != 0 {
		b, err := r.Uint8()
		if err != nil {
			return err
		}
		if b != 0 {
			return errors.Errorf("expected zero padding at offset %d, found 0x%02x", r.pos-1, b)
		}
	}
	return nil
}

// AssertPadding reads n bytes and errors if any of them is nonzero.
func (r *Reader) AssertPadding(n int64) error {
	b, err := r.Bytes(n)
	if err != nil {
		return err
	}
	for i, v := range b {
		if v != 0 {
			return errors.Errorf("expected %d zero padding bytes at offset %d, found nonzero byte at index %d", n, r.pos-n, i)
		}
	}
	return nil
}

// AssertAllEqual reads count int32s and errors if any does not equal want.
// Used for reserved filler arrays the format fixes to a repeated constant
// (e.g. a run of -1s) rather than true zero padding.
func (r *Reader) AssertAllEqual(count int, want int32) error {
	for i := 0; i < count; i++ {
		v, err := r.Int32()
		if err != nil {
			return err
		}
		if v != want {
			return errors.Errorf("expected all values equal to %d, found %d at index %d", want, v, i)
		}
	}
	return nil
}

// ReadAll reads the full contents of rd into a buffer for NewReader.
func ReadAll(rd io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(rd)
	if err != nil {
		return nil, errors.Wrap(err, "reading MSB stream")
	}
	return buf, nil
}
