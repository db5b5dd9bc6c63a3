package msb

import "github.com/Grimrukh/msb-go/stream"

// paramHeader is the fixed layout shared by all six Params: a version tag,
// an entry count stored as count+1 (the extra one is the nextParamOffset
// slot, which follows the entry offsets in the same run of int64 offsets),
// the Param's own name, an offset table pointing at each entry, and a
// pointer to the next Param (0 for the last one, Part).
type paramHeader struct {
	version        int32
	entryCountPlus1 int32
	nameOffset     int64
	entryOffsets   []int64
	nextParamOffset int64
}

const paramHeaderFixedSize = 4 + 4 + 8 + 8 // version, count+1, nameOffset, nextParamOffset (entryOffsets is variable)

func readParamHeader(r *stream.Reader) (paramHeader, error) {
	var h paramHeader
	var err error
	if h.version, err = r.Int32(); err != nil {
		return h, err
	}
	if h.entryCountPlus1, err = r.Int32(); err != nil {
		return h, err
	}
	if h.nameOffset, err = r.Int64(); err != nil {
		return h, err
	}
	count := h.entryCountPlus1 - 1
	if count < 0 {
		return h, &FormatError{Field: "ParamHeader.entryCount", Reason: "entry count underflows (entryCountPlus1 < 1)"}
	}
	h.entryOffsets = make([]int64, count)
	for i := range h.entryOffsets {
		if h.entryOffsets[i], err = r.Int64(); err != nil {
			return h, err
		}
	}
	if h.nextParamOffset, err = r.Int64(); err != nil {
		return h, err
	}
	return h, nil
}

func encodeParamHeader(h paramHeader) []byte {
	w := stream.NewWriter()
	w.WriteInt32(h.version)
	w.WriteInt32(h.entryCountPlus1)
	w.WriteInt64(h.nameOffset)
	for _, o := range h.entryOffsets {
		w.WriteInt64(o)
	}
	w.WriteInt64(h.nextParamOffset)
	return w.Bytes()
}

// ModelParam is the Model supertype's Param container.
type ModelParam struct {
	Version int32
	Name    string
	Entries []*Model
}

// DeserializeModelParam reads a Model Param starting at paramStart.
func DeserializeModelParam(r *stream.Reader, paramStart int64) (*ModelParam, error) {
	r.Seek(paramStart)
	h, err := readParamHeader(r)
	if err != nil {
		return nil, err
	}
	p := &ModelParam{Version: h.version}
	r.Seek(paramStart + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	p.Entries = make([]*Model, len(h.entryOffsets))
	for i, off := range h.entryOffsets {
		entryStart := paramStart + off
		kindTag, err := r.PeekUint32At(entryStart + 8)
		if err != nil {
			return nil, err
		}
		r.Seek(entryStart)
		m, err := DeserializeModel(r, entryStart, ModelKind(int32(kindTag)))
		if err != nil {
			return nil, err
		}
		p.Entries[i] = m
	}
	return p, nil
}

// Serialize writes this Param and returns the absolute offset of
// nextParamOffset's slot, so the caller (MSB.Write) can patch it once
// the next Param's position is known.
func (p *ModelParam) Serialize(w *stream.Writer) (nextParamOffsetPos int64, err error) {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("ParamHeader", paramHeaderFixedSize+8*int64(len(p.Entries)))

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)
	w.Align(8)

	bySubtype := groupModelsBySubtype(p.Entries)
	offsets := make([]int64, len(p.Entries))
	for i, m := range p.Entries {
		offsets[i] = w.Pos() - start
		subtypeIdx := bySubtype[m]
		if err := m.Serialize(w, subtypeIdx); err != nil {
			return 0, err
		}
	}

	h := paramHeader{
		version:         p.Version,
		entryCountPlus1: int32(len(p.Entries)) + 1,
		nameOffset:      nameOffset,
		entryOffsets:    offsets,
	}
	if err := rv.FillValidatedStruct("ParamHeader", func() []byte { return encodeParamHeader(h) }); err != nil {
		return 0, err
	}
	nextParamOffsetPos = start + paramHeaderFixedSize - 8 + 8*int64(len(p.Entries))
	if err := rv.Finish(); err != nil {
		return 0, err
	}
	return nextParamOffsetPos, nil
}

func groupModelsBySubtype(entries []*Model) map[*Model]int32 {
	counts := map[ModelKind]int32{}
	out := make(map[*Model]int32, len(entries))
	for _, m := range entries {
		out[m] = counts[m.Kind]
		counts[m.Kind]++
	}
	return out
}

// EventParam is the Event supertype's Param container.
type EventParam struct {
	Version int32
	Name    string
	Entries []*Event
}

func DeserializeEventParam(r *stream.Reader, paramStart int64) (*EventParam, error) {
	r.Seek(paramStart)
	h, err := readParamHeader(r)
	if err != nil {
		return nil, err
	}
	p := &EventParam{Version: h.version}
	r.Seek(paramStart + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	p.Entries = make([]*Event, len(h.entryOffsets))
	for i, off := range h.entryOffsets {
		entryStart := paramStart + off
		kindTag, err := r.PeekUint32At(entryStart + 12)
		if err != nil {
			return nil, err
		}
		r.Seek(entryStart)
		e, err := DeserializeEvent(r, entryStart, EventKind(int32(kindTag)))
		if err != nil {
			return nil, err
		}
		p.Entries[i] = e
	}
	return p, nil
}

func (p *EventParam) Serialize(w *stream.Writer) (nextParamOffsetPos int64, err error) {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("ParamHeader", paramHeaderFixedSize+8*int64(len(p.Entries)))

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)
	w.Align(8)

	counts := map[EventKind]int32{}
	offsets := make([]int64, len(p.Entries))
	for i, e := range p.Entries {
		offsets[i] = w.Pos() - start
		subtypeIdx := counts[e.Kind]
		counts[e.Kind]++
		if err := e.Serialize(w, int32(i), subtypeIdx); err != nil {
			return 0, err
		}
	}

	h := paramHeader{
		version:         p.Version,
		entryCountPlus1: int32(len(p.Entries)) + 1,
		nameOffset:      nameOffset,
		entryOffsets:    offsets,
	}
	if err := rv.FillValidatedStruct("ParamHeader", func() []byte { return encodeParamHeader(h) }); err != nil {
		return 0, err
	}
	nextParamOffsetPos = start + paramHeaderFixedSize - 8 + 8*int64(len(p.Entries))
	if err := rv.Finish(); err != nil {
		return 0, err
	}
	return nextParamOffsetPos, nil
}

// RegionParam is the Region supertype's Param container.
type RegionParam struct {
	Version int32
	Name    string
	Entries []*Region
}

func DeserializeRegionParam(r *stream.Reader, paramStart int64) (*RegionParam, error) {
	r.Seek(paramStart)
	h, err := readParamHeader(r)
	if err != nil {
		return nil, err
	}
	p := &RegionParam{Version: h.version}
	r.Seek(paramStart + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	p.Entries = make([]*Region, len(h.entryOffsets))
	for i, off := range h.entryOffsets {
		entryStart := paramStart + off
		kindTag, err := r.PeekUint32At(entryStart + 8)
		if err != nil {
			return nil, err
		}
		r.Seek(entryStart)
		reg, err := DeserializeRegion(r, entryStart, RegionKind(int32(kindTag)))
		if err != nil {
			return nil, err
		}
		p.Entries[i] = reg
	}
	return p, nil
}

func (p *RegionParam) Serialize(w *stream.Writer) (nextParamOffsetPos int64, err error) {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("ParamHeader", paramHeaderFixedSize+8*int64(len(p.Entries)))

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)
	w.Align(8)

	counts := map[RegionKind]int32{}
	offsets := make([]int64, len(p.Entries))
	for i, reg := range p.Entries {
		offsets[i] = w.Pos() - start
		subtypeIdx := counts[reg.Kind]
		counts[reg.Kind]++
		if err := reg.Serialize(w, int32(i), subtypeIdx); err != nil {
			return 0, err
		}
	}

	h := paramHeader{
		version:         p.Version,
		entryCountPlus1: int32(len(p.Entries)) + 1,
		nameOffset:      nameOffset,
		entryOffsets:    offsets,
	}
	if err := rv.FillValidatedStruct("ParamHeader", func() []byte { return encodeParamHeader(h) }); err != nil {
		return 0, err
	}
	nextParamOffsetPos = start + paramHeaderFixedSize - 8 + 8*int64(len(p.Entries))
	if err := rv.Finish(); err != nil {
		return 0, err
	}
	return nextParamOffsetPos, nil
}

// RouteParam is the Route supertype's Param container.
type RouteParam struct {
	Version int32
	Name    string
	Entries []*Route
}

func DeserializeRouteParam(r *stream.Reader, paramStart int64) (*RouteParam, error) {
	r.Seek(paramStart)
	h, err := readParamHeader(r)
	if err != nil {
		return nil, err
	}
	p := &RouteParam{Version: h.version}
	r.Seek(paramStart + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	p.Entries = make([]*Route, len(h.entryOffsets))
	for i, off := range h.entryOffsets {
		entryStart := paramStart + off
		kindTag, err := r.PeekUint32At(entryStart + 16)
		if err != nil {
			return nil, err
		}
		r.Seek(entryStart)
		rt, err := DeserializeRoute(r, entryStart, RouteKind(int32(kindTag)))
		if err != nil {
			return nil, err
		}
		p.Entries[i] = rt
	}
	return p, nil
}

func (p *RouteParam) Serialize(w *stream.Writer) (nextParamOffsetPos int64, err error) {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("ParamHeader", paramHeaderFixedSize+8*int64(len(p.Entries)))

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)
	w.Align(8)

	counts := map[RouteKind]int32{}
	offsets := make([]int64, len(p.Entries))
	for i, rt := range p.Entries {
		offsets[i] = w.Pos() - start
		subtypeIdx := counts[rt.Kind]
		counts[rt.Kind]++
		if err := rt.Serialize(w, subtypeIdx); err != nil {
			return 0, err
		}
	}

	h := paramHeader{
		version:         p.Version,
		entryCountPlus1: int32(len(p.Entries)) + 1,
		nameOffset:      nameOffset,
		entryOffsets:    offsets,
	}
	if err := rv.FillValidatedStruct("ParamHeader", func() []byte { return encodeParamHeader(h) }); err != nil {
		return 0, err
	}
	nextParamOffsetPos = start + paramHeaderFixedSize - 8 + 8*int64(len(p.Entries))
	if err := rv.Finish(); err != nil {
		return 0, err
	}
	return nextParamOffsetPos, nil
}

// LayerParam is the Layer supertype's Param container. Real files carry it
// with zero entries, but the read/write path is identical to the other
// five so there is no special-casing in MSB.
type LayerParam struct {
	Version int32
	Name    string
	Entries []*Layer
}

func DeserializeLayerParam(r *stream.Reader, paramStart int64) (*LayerParam, error) {
	r.Seek(paramStart)
	h, err := readParamHeader(r)
	if err != nil {
		return nil, err
	}
	p := &LayerParam{Version: h.version}
	r.Seek(paramStart + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	p.Entries = make([]*Layer, len(h.entryOffsets))
	for i := range h.entryOffsets {
		// No retail file has ever been observed with a populated Layer
		// Param, so there is no concrete Layer entry layout to dispatch to.
		p.Entries[i] = &Layer{Kind: LayerKindNone}
	}
	return p, nil
}

func (p *LayerParam) Serialize(w *stream.Writer) (nextParamOffsetPos int64, err error) {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("ParamHeader", paramHeaderFixedSize+8*int64(len(p.Entries)))

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)
	w.Align(8)

	h := paramHeader{
		version:         p.Version,
		entryCountPlus1: int32(len(p.Entries)) + 1,
		nameOffset:      nameOffset,
		entryOffsets:    make([]int64, len(p.Entries)),
	}
	if err := rv.FillValidatedStruct("ParamHeader", func() []byte { return encodeParamHeader(h) }); err != nil {
		return 0, err
	}
	nextParamOffsetPos = start + paramHeaderFixedSize - 8 + 8*int64(len(p.Entries))
	if err := rv.Finish(); err != nil {
		return 0, err
	}
	return nextParamOffsetPos, nil
}

// PartParam is the Part supertype's Param container. It is always the last
// Param in a file (nextParamOffset == 0).
type PartParam struct {
	Version int32
	Name    string
	Entries []*Part
}

func DeserializePartParam(r *stream.Reader, paramStart int64) (*PartParam, error) {
	r.Seek(paramStart)
	h, err := readParamHeader(r)
	if err != nil {
		return nil, err
	}
	p := &PartParam{Version: h.version}
	r.Seek(paramStart + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	p.Entries = make([]*Part, len(h.entryOffsets))
	for i, off := range h.entryOffsets {
		entryStart := paramStart + off
		kindTag, err := r.PeekUint32At(entryStart + 12)
		if err != nil {
			return nil, err
		}
		r.Seek(entryStart)
		part, err := DeserializePart(r, entryStart, PartKind(int32(kindTag)))
		if err != nil {
			return nil, err
		}
		p.Entries[i] = part
	}
	return p, nil
}

func (p *PartParam) Serialize(w *stream.Writer) (nextParamOffsetPos int64, err error) {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("ParamHeader", paramHeaderFixedSize+8*int64(len(p.Entries)))

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)
	w.Align(8)

	counts := map[PartKind]int32{}
	offsets := make([]int64, len(p.Entries))
	for i, part := range p.Entries {
		offsets[i] = w.Pos() - start
		subtypeIdx := counts[part.Kind]
		counts[part.Kind]++
		if err := part.Serialize(w, subtypeIdx); err != nil {
			return 0, err
		}
	}

	h := paramHeader{
		version:         p.Version,
		entryCountPlus1: int32(len(p.Entries)) + 1,
		nameOffset:      nameOffset,
		entryOffsets:    offsets,
	}
	if err := rv.FillValidatedStruct("ParamHeader", func() []byte { return encodeParamHeader(h) }); err != nil {
		return 0, err
	}
	nextParamOffsetPos = start + paramHeaderFixedSize - 8 + 8*int64(len(p.Entries))
	if err := rv.Finish(); err != nil {
		return 0, err
	}
	return nextParamOffsetPos, nil
}

// CollisionParts returns the subset of p.Entries with Kind ==
// PartKindCollision, in Param order — the index space ConnectCollision's
// 16-bit Collision reference and the original's dedicated
// "collision parts" lookup resolve against, not the full Part list.
func (p *PartParam) CollisionParts() []*Part {
	var out []*Part
	for _, part := range p.Entries {
		if part.Kind == PartKindCollision {
			out = append(out, part)
		}
	}
	return out
}
