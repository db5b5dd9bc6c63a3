package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserverFillAllSucceeds(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	rv.ReserveOffset("a")
	rv.ReserveOffset32("b")
	w.WriteUint8(0xFF) // some body bytes between reservation and fill

	// Fill in reverse order; Reserver doesn't care about permutation.
	require.NoError(t, rv.FillOffsetWithRelativePosition("b", 5))
	require.NoError(t, rv.FillOffsetWithPosition("a", 9))
	require.NoError(t, rv.Finish())
	require.NoError(t, rv.Check())
}

func TestReserverFinishWithUnfilledReservationErrors(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	rv.ReserveOffset("dangling")
	err := rv.Finish()
	assert.Error(t, err)
	assert.ErrorContains(t, err, "dangling")
}

func TestReserverDoubleFinishErrors(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	require.NoError(t, rv.Finish())
	assert.Error(t, rv.Finish())
}

func TestReserverCheckCatchesMissingFinish(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	assert.Error(t, rv.Check())
	require.NoError(t, rv.Finish())
	assert.NoError(t, rv.Check())
}

func TestReserverFillUnknownNameErrors(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	err := rv.FillOffsetWithPosition("nope", 0)
	assert.Error(t, err)
}

func TestReserverRelativePositionRejectedOnAbsoluteReserver(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, false, 0)
	rv.ReserveOffset("x")
	err := rv.FillOffsetWithRelativePosition("x", 4)
	assert.Error(t, err)
}

func TestReserverValidatedStructRoundTrip(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	rv.ReserveValidatedStruct("Header", 4)

	err := rv.FillValidatedStruct("Header", func() []byte { return []byte{1, 2, 3, 4} })
	require.NoError(t, err)
	require.NoError(t, rv.Finish())

	assert.Equal(t, []byte{1, 2, 3, 4}, w.Bytes())
}

func TestReserverValidatedStructSizeMismatchErrors(t *testing.T) {
	w := NewWriter()
	rv := NewReserver(w, true, 0)
	rv.ReserveValidatedStruct("Header", 4)
	err := rv.FillValidatedStruct("Header", func() []byte { return []byte{1, 2, 3} })
	assert.Error(t, err)
}
