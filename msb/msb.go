package msb

import "github.com/Grimrukh/msb-go/stream"

// fileHeader is MSB's fixed 16-byte preamble. unicodeFlag is always 1 in
// every retail file (names are UTF-16); this port errors rather than
// silently reinterpreting bytes if it is ever anything else, since there is
// no ASCII-name code path anywhere in this package.
type fileHeader struct {
	signature      [4]byte
	version        uint32
	headerSize     uint32
	isBigEndian    bool
	isBitBigEndian bool
	unicodeFlag    bool
	reserved       uint8
}

var msbSignature = [4]byte{'M', 'S', 'B', ' '}

const (
	msbVersion    = 1
	msbHeaderSize = 16
	msbReserved   = 0xFF
)

func readFileHeader(r *stream.Reader) (fileHeader, error) {
	var h fileHeader
	sig, err := r.Bytes(4)
	if err != nil {
		return h, err
	}
	copy(h.signature[:], sig)
	if h.signature != msbSignature {
		return h, &FormatError{Field: "FileHeader.signature", Reason: "not an MSB file (bad magic)"}
	}
	version, err := r.Uint32()
	if err != nil {
		return h, err
	}
	h.version = version
	headerSize, err := r.Uint32()
	if err != nil {
		return h, err
	}
	h.headerSize = headerSize
	if h.headerSize != msbHeaderSize {
		return h, &FormatError{Field: "FileHeader.headerSize", Reason: "unexpected header size"}
	}
	isBigEndian, err := r.Bool()
	if err != nil {
		return h, err
	}
	h.isBigEndian = isBigEndian
	if h.isBigEndian {
		return h, &FormatError{Field: "FileHeader.isBigEndian", Reason: "big-endian MSB files are not supported"}
	}
	isBitBigEndian, err := r.Bool()
	if err != nil {
		return h, err
	}
	h.isBitBigEndian = isBitBigEndian
	unicode, err := r.Bool()
	if err != nil {
		return h, err
	}
	h.unicodeFlag = unicode
	if !h.unicodeFlag {
		return h, &FormatError{Field: "FileHeader.unicodeFlag", Reason: "non-Unicode MSB files are not supported"}
	}
	reserved, err := r.Uint8()
	if err != nil {
		return h, err
	}
	h.reserved = reserved
	return h, nil
}

func writeFileHeader(w *stream.Writer) {
	w.WriteBytes(msbSignature[:])
	w.WriteUint32(msbVersion)
	w.WriteUint32(msbHeaderSize)
	w.WriteBool(false) // isBigEndian
	w.WriteBool(false) // isBitBigEndian
	w.WriteBool(true)  // unicodeFlag
	w.WriteUint8(msbReserved)
}

// MSB is a fully deserialized MapStudio Binary file: the six Params, each
// holding its entries with all cross-references resolved into live
// pointers rather than raw indices.
type MSB struct {
	Models  *ModelParam
	Events  *EventParam
	Regions *RegionParam
	Routes  *RouteParam
	Layers  *LayerParam
	Parts   *PartParam
}

// patrolRouteEvents returns the Events of kind PatrolRoute, in Param order —
// the index space CharacterPart.PatrolRouteEvent resolves against.
func (m *MSB) patrolRouteEvents() []*Event {
	var out []*Event
	for _, e := range m.Events.Entries {
		if e.Kind == EventKindPatrolRoute {
			out = append(out, e)
		}
	}
	return out
}

// Read parses a complete MSB file from buf, returning an MSB with every
// cross-entry reference already resolved to a live pointer.
func Read(buf []byte) (*MSB, error) {
	r := stream.NewReader(buf)
	if _, err := readFileHeader(r); err != nil {
		return nil, err
	}

	m := &MSB{}
	pos := r.Pos()

	var err error
	if m.Models, err = DeserializeModelParam(r, pos); err != nil {
		return nil, err
	}
	pos = nextParamPos(r, pos, len(m.Models.Entries))

	if m.Events, err = DeserializeEventParam(r, pos); err != nil {
		return nil, err
	}
	pos = nextParamPos(r, pos, len(m.Events.Entries))

	if m.Regions, err = DeserializeRegionParam(r, pos); err != nil {
		return nil, err
	}
	pos = nextParamPos(r, pos, len(m.Regions.Entries))

	if m.Routes, err = DeserializeRouteParam(r, pos); err != nil {
		return nil, err
	}
	pos = nextParamPos(r, pos, len(m.Routes.Entries))

	if m.Layers, err = DeserializeLayerParam(r, pos); err != nil {
		return nil, err
	}
	pos = nextParamPos(r, pos, len(m.Layers.Entries))

	if m.Parts, err = DeserializePartParam(r, pos); err != nil {
		return nil, err
	}

	collisionParts := m.Parts.CollisionParts()
	patrolRoutes := m.patrolRouteEvents()

	for _, e := range m.Events.Entries {
		e.WireReferences(m.Parts.Entries, m.Regions.Entries)
	}
	for _, reg := range m.Regions.Entries {
		reg.WireReferences(m.Parts.Entries, m.Regions.Entries)
	}
	for _, part := range m.Parts.Entries {
		part.WireReferences(m.Models.Entries, m.Parts.Entries, patrolRoutes, collisionParts)
	}

	return m, nil
}

// nextParamPos reads the nextParamOffset field (the last 8 bytes of the
// just-deserialized Param's header) at paramStart, an absolute offset
// relative to the file start, using the same "peek-seek-restore" approach
// as entry subtype dispatch.
func nextParamPos(r *stream.Reader, paramStart int64, entryCount int) int64 {
	headerFixedAndOffsets := int64(16) + 8*int64(entryCount) // version+count+1+nameOffset, then entry offsets
	offsetPos := paramStart + headerFixedAndOffsets
	next, err := peekUint64At(r, offsetPos)
	if err != nil {
		// Truncated buffer; readParamHeader for the next Param will raise
		// the same short-read error properly.
		return offsetPos
	}
	return paramStart + int64(next)
}

func peekUint64At(r *stream.Reader, pos int64) (uint64, error) {
	low, err := r.PeekUint32At(pos)
	if err != nil {
		return 0, err
	}
	high, err := r.PeekUint32At(pos + 4)
	if err != nil {
		return 0, err
	}
	return uint64(low) | uint64(high)<<32, nil
}

// Write serializes m into a complete MSB file buffer. Model instance
// counts are recomputed from live Part references, matching the original's
// write-time behavior (InstanceCount is never trusted from a prior read).
func (m *MSB) Write() ([]byte, error) {
	collisionParts := m.Parts.CollisionParts()
	patrolRoutes := m.patrolRouteEvents()

	for _, e := range m.Events.Entries {
		e.StageIndices(m.Parts.Entries, m.Regions.Entries)
	}
	for _, reg := range m.Regions.Entries {
		reg.StageIndices(m.Parts.Entries, m.Regions.Entries)
	}
	for _, part := range m.Parts.Entries {
		if err := part.StageIndices(m.Models.Entries, m.Parts.Entries, patrolRoutes, collisionParts); err != nil {
			return nil, err
		}
	}
	recomputeModelInstanceCounts(m.Models.Entries, m.Parts.Entries)

	w := stream.NewWriter()
	writeFileHeader(w)

	type serializable interface {
		Serialize(w *stream.Writer) (int64, error)
	}
	params := []serializable{m.Models, m.Events, m.Regions, m.Routes, m.Layers, m.Parts}

	starts := make([]int64, len(params))
	nextOffsetPositions := make([]int64, len(params))
	for i, p := range params {
		starts[i] = w.Pos()
		pos, err := p.Serialize(w)
		if err != nil {
			return nil, err
		}
		nextOffsetPositions[i] = pos
	}

	// Patch every Param's nextParamOffset (relative to its own start) except
	// the last (Part), which stays 0.
	for i := 0; i < len(params)-1; i++ {
		if err := w.PatchUint64At(nextOffsetPositions[i], uint64(starts[i+1]-starts[i])); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}

func recomputeModelInstanceCounts(models []*Model, parts []*Part) {
	counts := make(map[*Model]int32, len(models))
	for _, p := range parts {
		if dest := p.Model.Get(); dest != nil {
			counts[dest]++
		}
	}
	for _, mdl := range models {
		mdl.InstanceCount = counts[mdl]
	}
}

