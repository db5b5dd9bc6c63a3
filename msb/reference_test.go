package msb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelReferenceInvariant(t *testing.T) {
	m := &Model{Entry: Entry{Name: "m000000"}}

	var r1, r2 ModelReference
	r1.Set(m)
	r2.Set(m)

	assert.Same(t, m, r1.Get())
	assert.Same(t, m, r2.Get())
	assert.Len(t, m.incoming, 2)
	assert.Contains(t, m.incoming, referrer(&r1))
	assert.Contains(t, m.incoming, referrer(&r2))

	r1.Clear()
	assert.Nil(t, r1.Get())
	assert.Len(t, m.incoming, 1)
	assert.Contains(t, m.incoming, referrer(&r2))
}

func TestModelReferenceSetRetargetsCleanly(t *testing.T) {
	a := &Model{Entry: Entry{Name: "a"}}
	b := &Model{Entry: Entry{Name: "b"}}

	var r ModelReference
	r.Set(a)
	r.Set(b)

	assert.Same(t, b, r.Get())
	assert.Empty(t, a.incoming)
	assert.Len(t, b.incoming, 1)
}

func TestModelReferenceClone(t *testing.T) {
	m := &Model{Entry: Entry{Name: "m000000"}}
	var r ModelReference
	r.Set(m)

	c := r.Clone()
	assert.Same(t, m, c.Get())
	assert.Len(t, m.incoming, 2)

	r.Clear()
	// Clone is independently registered; it must still resolve after the
	// original clears.
	assert.Same(t, m, c.Get())
	assert.Len(t, m.incoming, 1)
}

func TestDestructionInvalidatesAllReferrers(t *testing.T) {
	p := &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "p"}}}

	var r1, r2 PartReference
	r1.Set(p)
	r2.Set(p)

	p.Destroy()

	assert.Nil(t, r1.Get())
	assert.Nil(t, r2.Get())
	assert.Empty(t, p.incoming)
}

func TestToIndexReportsDanglingReferenceAsMinusOne(t *testing.T) {
	m := &Model{Entry: Entry{Name: "m000000"}}
	var r ModelReference
	r.Set(m)

	// m is not present in this slice (simulating a broken graph), so
	// ToIndex must log and return -1 rather than erroring.
	idx := r.ToIndex("source", []*Model{{Entry: Entry{Name: "other"}}})
	assert.Equal(t, int32(-1), idx)
}

func TestToIndex16OverflowProducesFormatError(t *testing.T) {
	targets := make([]*Part, 0x8000+1)
	for i := range targets {
		targets[i] = &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "p"}}}
	}
	var r PartReference
	r.Set(targets[0x8000]) // index 32768, overflows int16

	idx, err := r.ToIndex16("source", "Some.Field", targets)
	require.Error(t, err)
	assert.Equal(t, int16(0), idx)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Some.Field", fe.Field)
}

func TestToIndex16WithinRangeSucceeds(t *testing.T) {
	targets := []*Part{
		{EntityEntry: EntityEntry{Entry: Entry{Name: "p0"}}},
		{EntityEntry: EntityEntry{Entry: Entry{Name: "p1"}}},
	}
	var r PartReference
	r.Set(targets[1])

	idx, err := r.ToIndex16("source", "Some.Field", targets)
	require.NoError(t, err)
	assert.Equal(t, int16(1), idx)
}

func TestSetFromIndexMinusOneClears(t *testing.T) {
	m := &Model{Entry: Entry{Name: "m000000"}}
	var r ModelReference
	r.Set(m)

	r.SetFromIndex([]*Model{m}, -1)
	assert.Nil(t, r.Get())
	assert.Empty(t, m.incoming)
}
