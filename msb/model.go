package msb

import (
	"github.com/Grimrukh/msb-go/stream"
)

// ModelKind tags which of the five Model subtypes an entry is. Values match
// the on-disk subtype tag exactly.
type ModelKind int32

const (
	ModelKindMapPiece  ModelKind = 0
	ModelKindCharacter ModelKind = 2
	ModelKindPlayer    ModelKind = 4
	ModelKindCollision ModelKind = 5
	ModelKindAsset     ModelKind = 10
)

// defaultModelNameStems mirrors Model::GetTypeNames: the placeholder SIB
// path stem used when a Model of this kind is created without one.
var defaultModelNameStems = map[ModelKind]string{
	ModelKindMapPiece:  "m999999",
	ModelKindAsset:     "AEG999_999",
	ModelKindCharacter: "c9999",
	ModelKindPlayer:    "c0000", // Human model backing player-equipped Parts only.
	ModelKindCollision: "h999999",
}

// Model is an MSB Model entry: a reference to a FLVER/asset/collision
// resource, plus the SIB (scene) path it came from. None of the five
// subtypes add fields beyond what every Model already carries, so Model
// has no variant Data field the way Region and Part do.
type Model struct {
	Entry

	Kind ModelKind

	SibPath       string
	InstanceCount int32 // recomputed from Part references on Serialize; ignored on read
	Unk1C         int32
}

type modelHeader struct {
	nameOffset       int64
	modelDataType    int32
	subtypeIndex     int32
	sibPathOffset    int64
	instanceCount    int32
	unk1C            int32
	subtypeDataOffset int64
}

const modelHeaderSize = 8 + 4 + 4 + 8 + 4 + 4 + 8

func readModelHeader(r *stream.Reader) (modelHeader, error) {
	var h modelHeader
	var err error
	if h.nameOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.modelDataType, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtypeIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if h.sibPathOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.instanceCount, err = r.Int32(); err != nil {
		return h, err
	}
	if h.unk1C, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtypeDataOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if err := stream.AssertNonZero("ModelHeader.nameOffset", h.nameOffset); err != nil {
		return h, &FormatError{Field: "ModelHeader.nameOffset", Reason: err.Error()}
	}
	if err := stream.AssertNonZero("ModelHeader.sibPathOffset", h.sibPathOffset); err != nil {
		return h, &FormatError{Field: "ModelHeader.sibPathOffset", Reason: err.Error()}
	}
	if err := stream.AssertZero("ModelHeader.subtypeDataOffset", h.subtypeDataOffset); err != nil {
		return h, &FormatError{Field: "ModelHeader.subtypeDataOffset", Reason: err.Error()}
	}
	return h, nil
}

// DeserializeModel reads one Model entry starting at start (the position of
// its header), with the entry's on-disk subtype tag already known to the
// caller from peeking ahead (see DeserializeModelParam).
func DeserializeModel(r *stream.Reader, start int64, kind ModelKind) (*Model, error) {
	h, err := readModelHeader(r)
	if err != nil {
		return nil, err
	}
	if ModelKind(h.modelDataType) != kind {
		return nil, &FormatError{Field: "ModelHeader.modelDataType", Reason: "does not match dispatched subtype"}
	}

	m := &Model{Kind: kind, InstanceCount: h.instanceCount, Unk1C: h.unk1C}

	r.Seek(start + h.nameOffset)
	name, err := r.UTF16String()
	if err != nil {
		return nil, err
	}
	m.Name = name

	r.Seek(start + h.sibPathOffset)
	sib, err := r.UTF16String()
	if err != nil {
		return nil, err
	}
	m.SibPath = sib

	return m, nil
}

// Serialize writes this Model entry. Model headers carry no supertype-index
// field, so only the subtype index is passed.
func (m *Model) Serialize(w *stream.Writer, subtypeIndex int32) error {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)

	rv.ReserveValidatedStruct("ModelHeader", modelHeaderSize)

	nameOffset := w.Pos() - start
	w.WriteUTF16String(m.Name)

	sibPathOffset := w.Pos() - start
	w.WriteUTF16String(m.SibPath)

	w.Align(8)

	h := modelHeader{
		nameOffset:    nameOffset,
		modelDataType: int32(m.Kind),
		subtypeIndex:  subtypeIndex,
		sibPathOffset: sibPathOffset,
		instanceCount: m.InstanceCount,
		unk1C:         m.Unk1C,
	}
	if err := rv.FillValidatedStruct("ModelHeader", func() []byte { return encodeModelHeader(h) }); err != nil {
		return err
	}
	return rv.Finish()
}

func encodeModelHeader(h modelHeader) []byte {
	w := stream.NewWriter()
	w.WriteInt64(h.nameOffset)
	w.WriteInt32(h.modelDataType)
	w.WriteInt32(h.subtypeIndex)
	w.WriteInt64(h.sibPathOffset)
	w.WriteInt32(h.instanceCount)
	w.WriteInt32(h.unk1C)
	w.WriteInt64(h.subtypeDataOffset)
	return w.Bytes()
}

// DefaultNameStem returns the placeholder SIB path stem for kind.
func DefaultNameStem(kind ModelKind) string {
	return defaultModelNameStems[kind]
}
