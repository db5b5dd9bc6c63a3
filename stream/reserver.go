package stream

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reserver tracks write-time offset fields whose value is only known after
// the bytes they point to have themselves been written. A caller reserves a
// placeholder slot (4 or 8 bytes, zeroed) at the current write position,
// keeps going, and later fills the slot once the real offset is known. This
// is the Go equivalent of the C++ Reserver's RAII-finalized offset patching.
//
// Every reservation must be filled before Finish is called; every Reserver
// must have Finish called before it goes out of scope, or Check reports the
// leak (Go has no destructor to enforce this at compile time, so Reserver
// relies on the caller calling Finish, with Check available for tests and
// defer-based guards to catch a forgotten one).
type Reserver struct {
	w        *Writer
	relative bool // if true, FillOffset values are relative to base
	base     int64
	pending  map[string]reservation
	finished bool
}

type reservation struct {
	pos   int64
	width int // 4 or 8
}

// NewReserver creates a Reserver writing into w. If relative is true, offsets
// filled via FillOffsetWithRelativePosition are measured from base rather
// than from the start of the buffer — mirroring the per-Param, per-Entry
// "start" position the C++ Reserver is constructed with.
func NewReserver(w *Writer, relative bool, base int64) *Reserver {
	return &Reserver{w: w, relative: relative, base: base, pending: make(map[string]reservation)}
}

// ReserveOffset writes a zeroed 8-byte placeholder under name and records its
// position for a later Fill call.
func (rv *Reserver) ReserveOffset(name string) {
	rv.pending[name] = reservation{pos: rv.w.Pos(), width: 8}
	rv.w.WriteUint64(0)
}

// ReserveOffset32 writes a zeroed 4-byte placeholder, for the rarer 32-bit
// offset fields.
func (rv *Reserver) ReserveOffset32(name string) {
	rv.pending[name] = reservation{pos: rv.w.Pos(), width: 4}
	rv.w.WriteUint32(0)
}

// ReserveValidatedStruct reserves size zeroed bytes for a fixed-layout
// header struct whose fields (including any offsets it contains) are only
// finalized once the entry body following it has been written.
func (rv *Reserver) ReserveValidatedStruct(name string, size int64) {
	rv.pending[name] = reservation{pos: rv.w.Pos(), width: int(size)}
	rv.w.WritePadding(size)
}

// FillOffsetWithPosition fills a previously reserved offset with the
// absolute write position pos.
func (rv *Reserver) FillOffsetWithPosition(name string, pos int64) error {
	res, ok := rv.pending[name]
	if !ok {
		return errors.Errorf("no reservation named %q", name)
	}
	delete(rv.pending, name)
	return rv.patch(res, uint64(pos))
}

// FillOffsetWithRelativePosition fills a previously reserved offset with
// pos measured relative to this Reserver's base.
func (rv *Reserver) FillOffsetWithRelativePosition(name string, pos int64) error {
	if !rv.relative {
		return errors.Errorf("reservation %q filled as relative, but Reserver is absolute", name)
	}
	return rv.FillOffsetWithPosition(name, pos-rv.base)
}

func (rv *Reserver) patch(res reservation, v uint64) error {
	switch res.width {
	case 4:
		return rv.w.PatchUint32At(res.pos, uint32(v))
	case 8:
		return rv.w.PatchUint64At(res.pos, v)
	default:
		return errors.Errorf("cannot patch a %d-byte reservation as a scalar offset", res.width)
	}
}

// FillValidatedStruct overwrites a struct-sized reservation with the bytes
// produced by encode, which must return exactly as many bytes as were
// reserved.
func (rv *Reserver) FillValidatedStruct(name string, encode func() []byte) error {
	res, ok := rv.pending[name]
	if !ok {
		return errors.Errorf("no reservation named %q", name)
	}
	data := encode()
	if int(res.width) != len(data) {
		return errors.Errorf("struct %q reserved %d bytes but encoded %d", name, res.width, len(data))
	}
	delete(rv.pending, name)
	copy(rv.w.buf[res.pos:res.pos+int64(res.width)], data)
	return nil
}

// Finish marks the Reserver as complete. It is an error to Finish while any
// reservation is still unfilled.
func (rv *Reserver) Finish() error {
	if rv.finished {
		return errors.New("Reserver.Finish called twice")
	}
	rv.finished = true
	if len(rv.pending) > 0 {
		names := make([]string, 0, len(rv.pending))
		for name := range rv.pending {
			names = append(names, name)
		}
		return errors.Errorf("Reserver.Finish called with unfilled reservations: %v", names)
	}
	return nil
}

// Check reports whether Finish was ever called, for use in defer-based
// guards (the Go analogue of the C++ destructor assertion: a Reserver that
// is dropped without Finish indicates a logic error in the caller).
func (rv *Reserver) Check() error {
	if !rv.finished {
		return fmt.Errorf("Reserver dropped without Finish being called (%d pending reservation(s))", len(rv.pending))
	}
	return nil
}
