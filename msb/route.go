package msb

import "github.com/Grimrukh/msb-go/stream"

// RouteKind tags which of the three Route subtypes an entry is.
type RouteKind int32

const (
	RouteKindMufflingPortalLink RouteKind = 3
	RouteKindMufflingBoxLink    RouteKind = 4
	RouteKindOther              RouteKind = -1
)

const routePaddingSize = 0x68

// Route is an MSB Route entry. Routes are the simplest supertype: no
// variant payload beyond the subtype tag itself, and a large reserved
// padding block the original leaves entirely unused.
type Route struct {
	Entry

	Kind  RouteKind
	Unk08 int32
	Unk0C int32

	// SubtypeIndexOverride preserves the on-disk subtype index for the
	// Other kind, whose type tag (0xFFFFFFFF) does not correspond to a
	// stable position in the type-ordered subtype count the way the other
	// two kinds' do.
	SubtypeIndexOverride int32
}

const routeHeaderSize = 8 + 4 + 4 + 4 + 4 + routePaddingSize

type routeHeader struct {
	nameOffset   int64
	unk08        int32
	unk0C        int32
	routeType    int32
	subtypeIndex int32
}

func readRouteHeader(r *stream.Reader) (routeHeader, error) {
	var h routeHeader
	var err error
	if h.nameOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.unk08, err = r.Int32(); err != nil {
		return h, err
	}
	if h.unk0C, err = r.Int32(); err != nil {
		return h, err
	}
	if h.routeType, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtypeIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if err := r.AssertPadding(routePaddingSize); err != nil {
		return h, err
	}
	if err := stream.AssertNonZero("RouteHeader.nameOffset", h.nameOffset); err != nil {
		return h, &FormatError{Field: "RouteHeader.nameOffset", Reason: err.Error()}
	}
	return h, nil
}

// DeserializeRoute reads one Route entry starting at start.
func DeserializeRoute(r *stream.Reader, start int64, kind RouteKind) (*Route, error) {
	h, err := readRouteHeader(r)
	if err != nil {
		return nil, err
	}
	if RouteKind(h.routeType) != kind {
		return nil, &FormatError{Field: "RouteHeader.routeType", Reason: "does not match dispatched subtype"}
	}

	rt := &Route{Kind: kind, Unk08: h.unk08, Unk0C: h.unk0C}
	if kind == RouteKindOther {
		rt.SubtypeIndexOverride = h.subtypeIndex
	}

	r.Seek(start + h.nameOffset)
	name, err := r.UTF16String()
	if err != nil {
		return nil, err
	}
	rt.Name = name

	return rt, nil
}

// Serialize writes this Route entry.
func (rt *Route) Serialize(w *stream.Writer, subtypeIndex int32) error {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("RouteHeader", routeHeaderSize)

	nameOffset := w.Pos() - start
	w.WriteUTF16String(rt.Name)
	w.Align(8)

	effectiveIndex := subtypeIndex
	if rt.Kind == RouteKindOther {
		effectiveIndex = rt.SubtypeIndexOverride
	}

	h := routeHeader{
		nameOffset:   nameOffset,
		unk08:        rt.Unk08,
		unk0C:        rt.Unk0C,
		routeType:    int32(rt.Kind),
		subtypeIndex: effectiveIndex,
	}
	if err := rv.FillValidatedStruct("RouteHeader", func() []byte { return encodeRouteHeader(h) }); err != nil {
		return err
	}
	return rv.Finish()
}

func encodeRouteHeader(h routeHeader) []byte {
	w := stream.NewWriter()
	w.WriteInt64(h.nameOffset)
	w.WriteInt32(h.unk08)
	w.WriteInt32(h.unk0C)
	w.WriteInt32(h.routeType)
	w.WriteInt32(h.subtypeIndex)
	w.WritePadding(routePaddingSize)
	return w.Bytes()
}
