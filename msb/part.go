package msb

import "github.com/Grimrukh/msb-go/stream"

// PartKind tags which of the eight Part subtypes an entry is. Unlike Event
// and Region, Part has no "Other" catch-all subtype.
type PartKind int32

const (
	PartKindMapPiece         PartKind = 0
	PartKindCharacter        PartKind = 2
	PartKindPlayerStart      PartKind = 4
	PartKindCollision        PartKind = 5
	PartKindDummyAsset       PartKind = 9
	PartKindDummyCharacter   PartKind = 10
	PartKindConnectCollision PartKind = 11
	PartKindAsset            PartKind = 13
)

// partStructSchema records which of Part's nine optional trailing structs a
// given subtype uses. This is the Go equivalent of the original's
// ASSERT_ZERO_STRUCT_OFFSET/READ_STRUCT/WRITE_STRUCT macro chain: instead
// of per-subtype macro invocations, DeserializePart and Part.Serialize
// consult one table, with one check per slot.
type partStructSchema struct {
	DrawInfo1      bool
	DrawInfo2      bool
	GParam         bool
	SceneGParam    bool
	GrassConfig    bool
	UnkStruct8     bool
	UnkStruct9     bool
	TileLoadConfig bool
	UnkStruct11    bool
}

var partSchemas = map[PartKind]partStructSchema{
	PartKindMapPiece: {
		DrawInfo1: true, GParam: true, GrassConfig: true, UnkStruct8: true,
		UnkStruct9: true, TileLoadConfig: true, UnkStruct11: true,
	},
	PartKindCharacter: {
		DrawInfo1: true, GParam: true, UnkStruct8: true, TileLoadConfig: true,
	},
	PartKindPlayerStart: {
		DrawInfo1: true, UnkStruct8: true, TileLoadConfig: true,
	},
	PartKindCollision: {
		DrawInfo1: true, DrawInfo2: true, GParam: true, SceneGParam: true,
		UnkStruct8: true, TileLoadConfig: true, UnkStruct11: true,
	},
	PartKindDummyAsset: {
		DrawInfo1: true, GParam: true, UnkStruct8: true, TileLoadConfig: true,
	},
	PartKindDummyCharacter: {
		DrawInfo1: true, GParam: true, UnkStruct8: true, TileLoadConfig: true,
	},
	PartKindConnectCollision: {},
	PartKindAsset: {
		DrawInfo1: true, DrawInfo2: true, GParam: true, GrassConfig: true,
		UnkStruct8: true, UnkStruct9: true, TileLoadConfig: true, UnkStruct11: true,
	},
}

// DrawInfo1 holds a Part's display/draw/collision group bitmasks. The
// original packs these as fixed-width bit arrays (GroupBitSet<256>,
// GroupBitSet<1024>); this port keeps them as plain uint32 arrays rather
// than introducing a bitset type, since MSB never interprets the bit
// semantics itself (that's purely game-logic, out of scope per this
// format's Non-goals).
type DrawInfo1 struct {
	DisplayGroups [8]uint32
	DrawGroups    [8]uint32
	CollisionMask [32]uint32
	Condition1A   uint8
	Condition1B   uint8
	UnkC2         uint8
	UnkC3         uint8
	UnkC4         int16
	UnkC6         int16
}

func readDrawInfo1(r *stream.Reader) (DrawInfo1, error) {
	var d DrawInfo1
	var err error
	for i := range d.DisplayGroups {
		if d.DisplayGroups[i], err = r.Uint32(); err != nil {
			return d, err
		}
	}
	for i := range d.DrawGroups {
		if d.DrawGroups[i], err = r.Uint32(); err != nil {
			return d, err
		}
	}
	for i := range d.CollisionMask {
		if d.CollisionMask[i], err = r.Uint32(); err != nil {
			return d, err
		}
	}
	if d.Condition1A, err = r.Uint8(); err != nil {
		return d, err
	}
	if d.Condition1B, err = r.Uint8(); err != nil {
		return d, err
	}
	if d.UnkC2, err = r.Uint8(); err != nil {
		return d, err
	}
	if d.UnkC3, err = r.Uint8(); err != nil {
		return d, err
	}
	if d.UnkC4, err = r.Int16(); err != nil {
		return d, err
	}
	if d.UnkC6, err = r.Int16(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(0xC0); err != nil {
		return d, err
	}
	return d, nil
}

func writeDrawInfo1(w *stream.Writer, d DrawInfo1) {
	for _, v := range d.DisplayGroups {
		w.WriteUint32(v)
	}
	for _, v := range d.DrawGroups {
		w.WriteUint32(v)
	}
	for _, v := range d.CollisionMask {
		w.WriteUint32(v)
	}
	w.WriteUint8(d.Condition1A)
	w.WriteUint8(d.Condition1B)
	w.WriteUint8(d.UnkC2)
	w.WriteUint8(d.UnkC3)
	w.WriteInt16(d.UnkC4)
	w.WriteInt16(d.UnkC6)
	w.WritePadding(0xC0)
}

// DrawInfo2 holds a Part's secondary draw condition and group mask,
// present only on subtypes with a "condition2" concept (currently
// Collision and Asset).
type DrawInfo2 struct {
	Condition2    int32
	DisplayGroups [8]uint32
	Unk24         int16
	Unk26         int16
}

func readDrawInfo2(r *stream.Reader) (DrawInfo2, error) {
	var d DrawInfo2
	var err error
	if d.Condition2, err = r.Int32(); err != nil {
		return d, err
	}
	for i := range d.DisplayGroups {
		if d.DisplayGroups[i], err = r.Uint32(); err != nil {
			return d, err
		}
	}
	if d.Unk24, err = r.Int16(); err != nil {
		return d, err
	}
	if d.Unk26, err = r.Int16(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(0x20); err != nil {
		return d, err
	}
	return d, nil
}

func writeDrawInfo2(w *stream.Writer, d DrawInfo2) {
	w.WriteInt32(d.Condition2)
	for _, v := range d.DisplayGroups {
		w.WriteUint32(v)
	}
	w.WriteInt16(d.Unk24)
	w.WriteInt16(d.Unk26)
	w.WritePadding(0x20)
}

// GParam references the four lighting/fog parameter IDs a Part can
// override.
type GParam struct {
	LightSetID        int32
	FogID             int32
	LightScatteringID int32
	EnvironmentMapID  int32
}

func readGParam(r *stream.Reader) (GParam, error) {
	var d GParam
	var err error
	if d.LightSetID, err = r.Int32(); err != nil {
		return d, err
	}
	if d.FogID, err = r.Int32(); err != nil {
		return d, err
	}
	if d.LightScatteringID, err = r.Int32(); err != nil {
		return d, err
	}
	if d.EnvironmentMapID, err = r.Int32(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(16); err != nil {
		return d, err
	}
	return d, nil
}

func writeGParam(w *stream.Writer, d GParam) {
	w.WriteInt32(d.LightSetID)
	w.WriteInt32(d.FogID)
	w.WriteInt32(d.LightScatteringID)
	w.WriteInt32(d.EnvironmentMapID)
	w.WritePadding(16)
}

// SceneGParam is Collision-only: the transition timing used when the
// camera crosses into this Collision's lighting scene.
type SceneGParam struct {
	TransitionTime float32
	Unk18          [6]int8
	Unk20          int8
	Unk21          int8
}

func readSceneGParam(r *stream.Reader) (SceneGParam, error) {
	var d SceneGParam
	var err error
	if err := r.AssertPadding(16); err != nil {
		return d, err
	}
	if d.TransitionTime, err = r.Float32(); err != nil {
		return d, err
	}
	reserved, err := r.Int32()
	if err != nil {
		return d, err
	}
	if err := stream.AssertZero("SceneGParam.reserved", int64(reserved)); err != nil {
		return d, &FormatError{Field: "SceneGParam.reserved", Reason: err.Error()}
	}
	for i := range d.Unk18 {
		if d.Unk18[i], err = r.Int8(); err != nil {
			return d, err
		}
	}
	if err := r.AssertPadding(2); err != nil {
		return d, err
	}
	if d.Unk20, err = r.Int8(); err != nil {
		return d, err
	}
	if d.Unk21, err = r.Int8(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(2 + 0x44); err != nil {
		return d, err
	}
	return d, nil
}

func writeSceneGParam(w *stream.Writer, d SceneGParam) {
	w.WritePadding(16)
	w.WriteFloat32(d.TransitionTime)
	w.WriteInt32(0)
	for _, v := range d.Unk18 {
		w.WriteInt8(v)
	}
	w.WritePadding(2)
	w.WriteInt8(d.Unk20)
	w.WriteInt8(d.Unk21)
	w.WritePadding(2 + 0x44)
}

// GrassConfig holds grass-density tuning values for a MapPiece or Asset.
type GrassConfig struct {
	Unk00, Unk04, Unk08, Unk0C, Unk10, Unk14, Unk18 int32
}

func readGrassConfig(r *stream.Reader) (GrassConfig, error) {
	var d GrassConfig
	var err error
	if d.Unk00, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk04, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk08, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk0C, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk10, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk14, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk18, err = r.Int32(); err != nil {
		return d, err
	}
	zero, err := r.Int32()
	if err != nil {
		return d, err
	}
	if err := stream.AssertZero("GrassConfig.zero", int64(zero)); err != nil {
		return d, &FormatError{Field: "GrassConfig.zero", Reason: err.Error()}
	}
	return d, nil
}

func writeGrassConfig(w *stream.Writer, d GrassConfig) {
	w.WriteInt32(d.Unk00)
	w.WriteInt32(d.Unk04)
	w.WriteInt32(d.Unk08)
	w.WriteInt32(d.Unk0C)
	w.WriteInt32(d.Unk10)
	w.WriteInt32(d.Unk14)
	w.WriteInt32(d.Unk18)
	w.WriteInt32(0)
}

// UnkPartStruct8 is always present on MapPiece, Character, PlayerStart,
// DummyAsset, DummyCharacter and Asset Parts; its single real value is
// restricted to 0 or 1 in every retail file.
type UnkPartStruct8 struct{ Unk00 int32 }

func readUnkPartStruct8(r *stream.Reader) (UnkPartStruct8, error) {
	var d UnkPartStruct8
	var err error
	if d.Unk00, err = r.Int32(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(0x1C); err != nil {
		return d, err
	}
	return d, nil
}

func writeUnkPartStruct8(w *stream.Writer, d UnkPartStruct8) {
	w.WriteInt32(d.Unk00)
	w.WritePadding(0x1C)
}

// UnkPartStruct9 is present only on MapPiece and Asset Parts.
type UnkPartStruct9 struct{ Unk00 int32 }

func readUnkPartStruct9(r *stream.Reader) (UnkPartStruct9, error) {
	var d UnkPartStruct9
	var err error
	if d.Unk00, err = r.Int32(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(0x1C); err != nil {
		return d, err
	}
	return d, nil
}

func writeUnkPartStruct9(w *stream.Writer, d UnkPartStruct9) {
	w.WriteInt32(d.Unk00)
	w.WritePadding(0x1C)
}

// TileLoadConfig controls which map tile a Part loads with, for large
// maps split into streamable tiles.
type TileLoadConfig struct {
	MapID int32
	Unk04 int32
	Unk0C int32
	Unk10 int32 // always 0 or 1?
	Unk14 int32
}

func readTileLoadConfig(r *stream.Reader) (TileLoadConfig, error) {
	var d TileLoadConfig
	var err error
	if d.MapID, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk04, err = r.Int32(); err != nil {
		return d, err
	}
	zero, err := r.Int32()
	if err != nil {
		return d, err
	}
	if err := stream.AssertZero("TileLoadConfig.zero", int64(zero)); err != nil {
		return d, &FormatError{Field: "TileLoadConfig.zero", Reason: err.Error()}
	}
	if d.Unk0C, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk10, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk14, err = r.Int32(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(0x8); err != nil {
		return d, err
	}
	return d, nil
}

func writeTileLoadConfig(w *stream.Writer, d TileLoadConfig) {
	w.WriteInt32(d.MapID)
	w.WriteInt32(d.Unk04)
	w.WriteInt32(0)
	w.WriteInt32(d.Unk0C)
	w.WriteInt32(d.Unk10)
	w.WriteInt32(d.Unk14)
	w.WritePadding(0x8)
}

// UnkPartStruct11 is present only on MapPiece, Collision and Asset Parts.
type UnkPartStruct11 struct{ Unk00, Unk04 int32 }

func readUnkPartStruct11(r *stream.Reader) (UnkPartStruct11, error) {
	var d UnkPartStruct11
	var err error
	if d.Unk00, err = r.Int32(); err != nil {
		return d, err
	}
	if d.Unk04, err = r.Int32(); err != nil {
		return d, err
	}
	if err := r.AssertPadding(0x18); err != nil {
		return d, err
	}
	return d, nil
}

func writeUnkPartStruct11(w *stream.Writer, d UnkPartStruct11) {
	w.WriteInt32(d.Unk00)
	w.WriteInt32(d.Unk04)
	w.WritePadding(0x18)
}

func readRaw(r *stream.Reader, n int) ([]byte, error) { return r.Bytes(int64(n)) }

// PartData is the marker interface for a Part's subtype-specific payload.
type PartData interface {
	partData()
}

// MapPiecePartData is MapPiece's subtype payload: empty, since MapPiece has
// no fields beyond the shared supertype data and its struct slots.
type MapPiecePartData struct{}

func (MapPiecePartData) partData() {}

// CharacterPartData is the subtype payload shared by Character and
// DummyCharacter (the latter is, per the original, identical to Character
// in every field — only its Kind tag differs).
type CharacterPartData struct {
	AIID                      int32
	CharacterID               int32
	TalkID                    int32
	SUnk15                    int8
	PlatoonID                 int16
	PlayerID                  int32
	DrawParent                PartReference
	drawParentIdx             int32
	PatrolRouteEvent          EventReference
	patrolRouteEventIdx       int16
	SUnk24, SUnk28            int32
	SUnk34, SUnk3C            int32
	ActivateConditionParamID  int32
	BackAwayEventAnimationID  int32
	SpecialEffectSetParamIDs  [4]int32
	SUnk84                    float32
}

func (CharacterPartData) partData() {}

// PlayerStartPartData is PlayerStart's subtype payload.
type PlayerStartPartData struct {
	SUnk00 int32
}

func (PlayerStartPartData) partData() {}

// CollisionPartData is Collision's subtype payload.
type CollisionPartData struct {
	HitFilterID            uint8
	SUnk01, SUnk02, SUnk03, SUnk04 int8
	SUnk14, SUnk18, SUnk1C  int32
	PlayRegionID            int32
	SUnk24                  int32
	SUnk26                  int16
	SUnk30                  int32
	SUnk34, SUnk35          int8
	DisableTorrent          bool
	SUnk3C                  int32
	SUnk3E                  int16
	SUnk40                  int16
	EnableFastTravelFlagID  uint32
	SUnk4C                  int32
	SUnk4E                  int16
}

func (CollisionPartData) partData() {}

// DummyAssetPartData is DummyAsset's subtype payload.
type DummyAssetPartData struct {
	SUnk18 int32
}

func (DummyAssetPartData) partData() {}

// ConnectCollisionPartData is ConnectCollision's subtype payload. Collision
// is referenced by its Collision-subtype index (16-bit), not the Part
// supertype index — callers resolve it against the Collision-kind subset
// of the Part Param's entries, not the full Part list.
type ConnectCollisionPartData struct {
	Collision       PartReference
	collisionIdx    int16
	ConnectedMapID  [4]int8
	SUnk08          int8
	SUnk09          bool
	SUnk0A          int8
	SUnk0B          bool
}

func (ConnectCollisionPartData) partData() {}

// ExtraAssetData is one of Asset's four extra fixed-size data blocks.
// Fields have not been recovered; kept opaque per this format's Non-goals.
type ExtraAssetData struct{ Raw [0x10]byte }

// AssetPartData is Asset's subtype payload.
type AssetPartData struct {
	SUnk02             int16
	SUnk10             uint8
	SUnk11             bool
	SUnk12             uint8
	SFXParamRelativeID int16
	SUnk1E             int16
	SUnk24, SUnk28     int32
	SUnk30, SUnk34     int32
	DrawParentParts    [32]PartReference
	drawParentPartsIdx [32]int32
	SUnk50             bool
	SUnk51             uint8
	SUnk53             uint8
	SUnk54, SUnk58     int32
	SUnk5C, SUnk60     int32
	SUnk64             int32
	ExtraData1         ExtraAssetData
	ExtraData2         ExtraAssetData
	ExtraData3         ExtraAssetData
	ExtraData4         ExtraAssetData
}

func (AssetPartData) partData() {}

// Part is an MSB Part entry: a placed, renderable/collidable object
// (map geometry, a collision mesh, an enemy, the player start, a dynamic
// asset, or a link between two map pieces' collision).
type Part struct {
	EntityEntry

	Kind PartKind
	Data PartData

	ModelInstanceID int32
	Model           ModelReference
	modelIdx        int32
	SibPath         string

	Translate [3]float32
	Rotate    [3]float32
	Scale     [3]float32
	Unk44     int32
	EventLayer int32

	SUnk04                   uint8
	LodID                    int8
	SUnk09                   uint8
	IsPointLightShadowSource int8 // always 0 or -1?
	SUnk0B                   uint8
	IsShadowSource           bool
	IsStaticShadowSource     uint8
	IsCascade3ShadowSource   uint8
	SUnk0F                   uint8
	SUnk10                   uint8
	IsShadowDestination      bool
	IsShadowOnly             bool
	DrawByReflectCam         bool
	DrawOnlyReflectCam       bool
	EnableOnAboveShadow      uint8
	DisablePointLightEffect  bool
	SUnk17                   uint8
	SUnk18                   int32
	EntityGroupIDs           [8]uint32
	SUnk3C                   int16
	SUnk3E                   int16

	DrawInfo1      *DrawInfo1
	DrawInfo2      *DrawInfo2
	GParam         *GParam
	SceneGParam    *SceneGParam
	GrassConfig    *GrassConfig
	UnkStruct8     *UnkPartStruct8
	UnkStruct9     *UnkPartStruct9
	TileLoadConfig *TileLoadConfig
	UnkStruct11    *UnkPartStruct11
}

const partHeaderSize = 8 + 4 + 4 + 4 + 4 + 8 + (4 * 9) + 4 + 4 + 4 + (8 * 11) + 24

type partHeader struct {
	nameOffset          int64
	modelInstanceID     int32
	subtype             int32
	subtypeIndex        int32
	modelIndex          int32
	sibPathOffset       int64
	translate           [3]float32
	rotate              [3]float32
	scale               [3]float32
	unk44               int32
	eventLayer          int32
	zero                int32
	drawInfo1Offset     int64
	drawInfo2Offset     int64
	supertypeDataOffset int64
	subtypeDataOffset   int64
	gparamOffset        int64
	sceneGparamOffset   int64
	grassConfigOffset   int64
	unkStruct8Offset    int64
	unkStruct9Offset    int64
	tileLoadConfigOffset int64
	unkStruct11Offset   int64
}

func readPartHeader(r *stream.Reader) (partHeader, error) {
	var h partHeader
	var err error
	if h.nameOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.modelInstanceID, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtype, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtypeIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if h.modelIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if h.sibPathOffset, err = r.Int64(); err != nil {
		return h, err
	}
	for i := range h.translate {
		if h.translate[i], err = r.Float32(); err != nil {
			return h, err
		}
	}
	for i := range h.rotate {
		if h.rotate[i], err = r.Float32(); err != nil {
			return h, err
		}
	}
	for i := range h.scale {
		if h.scale[i], err = r.Float32(); err != nil {
			return h, err
		}
	}
	if h.unk44, err = r.Int32(); err != nil {
		return h, err
	}
	if h.eventLayer, err = r.Int32(); err != nil {
		return h, err
	}
	if h.zero, err = r.Int32(); err != nil {
		return h, err
	}
	offs := []*int64{
		&h.drawInfo1Offset, &h.drawInfo2Offset, &h.supertypeDataOffset, &h.subtypeDataOffset,
		&h.gparamOffset, &h.sceneGparamOffset, &h.grassConfigOffset, &h.unkStruct8Offset,
		&h.unkStruct9Offset, &h.tileLoadConfigOffset, &h.unkStruct11Offset,
	}
	for _, o := range offs {
		if *o, err = r.Int64(); err != nil {
			return h, err
		}
	}
	if err := r.AssertPadding(24); err != nil {
		return h, err
	}

	if err := stream.AssertNonZero("PartHeader.nameOffset", h.nameOffset); err != nil {
		return h, &FormatError{Field: "PartHeader.nameOffset", Reason: err.Error()}
	}
	if err := stream.AssertZero("PartHeader.zero", int64(h.zero)); err != nil {
		return h, &FormatError{Field: "PartHeader.zero", Reason: err.Error()}
	}
	if err := stream.AssertNonZero("PartHeader.supertypeDataOffset", h.supertypeDataOffset); err != nil {
		return h, &FormatError{Field: "PartHeader.supertypeDataOffset", Reason: err.Error()}
	}
	return h, nil
}

// DeserializePart reads one Part entry starting at start.
func DeserializePart(r *stream.Reader, start int64, kind PartKind) (*Part, error) {
	h, err := readPartHeader(r)
	if err != nil {
		return nil, err
	}
	if PartKind(h.subtype) != kind {
		return nil, &FormatError{Field: "PartHeader.subtype", Reason: "does not match dispatched subtype"}
	}
	schema, ok := partSchemas[kind]
	if !ok {
		return nil, &FormatError{Field: "PartHeader.subtype", Reason: "unrecognized part kind"}
	}

	p := &Part{
		Kind:            kind,
		ModelInstanceID: h.modelInstanceID,
		modelIdx:        h.modelIndex,
		Translate:       h.translate,
		Rotate:          h.rotate,
		Scale:           h.scale,
		Unk44:           h.unk44,
		EventLayer:      h.eventLayer,
	}

	r.Seek(start + h.nameOffset)
	if p.Name, err = r.UTF16String(); err != nil {
		return nil, err
	}
	if h.sibPathOffset != 0 {
		r.Seek(start + h.sibPathOffset)
		if p.SibPath, err = r.UTF16String(); err != nil {
			return nil, err
		}
	}

	if err := readPartSupertypeData(r, start+h.supertypeDataOffset, p); err != nil {
		return nil, err
	}

	if schema.DrawInfo1 {
		if err := readPartOptionalStruct(r, start, h.drawInfo1Offset, true, func() error {
			d, err := readDrawInfo1(r)
			if err != nil {
				return err
			}
			p.DrawInfo1 = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.DrawInfo2 {
		if err := readPartOptionalStruct(r, start, h.drawInfo2Offset, true, func() error {
			d, err := readDrawInfo2(r)
			if err != nil {
				return err
			}
			p.DrawInfo2 = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.GParam {
		if err := readPartOptionalStruct(r, start, h.gparamOffset, true, func() error {
			d, err := readGParam(r)
			if err != nil {
				return err
			}
			p.GParam = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.SceneGParam {
		if err := readPartOptionalStruct(r, start, h.sceneGparamOffset, true, func() error {
			d, err := readSceneGParam(r)
			if err != nil {
				return err
			}
			p.SceneGParam = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.GrassConfig {
		if err := readPartOptionalStruct(r, start, h.grassConfigOffset, true, func() error {
			d, err := readGrassConfig(r)
			if err != nil {
				return err
			}
			p.GrassConfig = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.UnkStruct8 {
		if err := readPartOptionalStruct(r, start, h.unkStruct8Offset, true, func() error {
			d, err := readUnkPartStruct8(r)
			if err != nil {
				return err
			}
			p.UnkStruct8 = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.UnkStruct9 {
		if err := readPartOptionalStruct(r, start, h.unkStruct9Offset, true, func() error {
			d, err := readUnkPartStruct9(r)
			if err != nil {
				return err
			}
			p.UnkStruct9 = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.TileLoadConfig {
		if err := readPartOptionalStruct(r, start, h.tileLoadConfigOffset, true, func() error {
			d, err := readTileLoadConfig(r)
			if err != nil {
				return err
			}
			p.TileLoadConfig = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}
	if schema.UnkStruct11 {
		if err := readPartOptionalStruct(r, start, h.unkStruct11Offset, true, func() error {
			d, err := readUnkPartStruct11(r)
			if err != nil {
				return err
			}
			p.UnkStruct11 = &d
			return nil
		}); err != nil {
			return nil, err
		}
	}

	if h.subtypeDataOffset != 0 {
		r.Seek(start + h.subtypeDataOffset)
		data, err := deserializePartData(r, kind)
		if err != nil {
			return nil, err
		}
		p.Data = data
	} else if kind != PartKindMapPiece && kind != PartKindConnectCollision {
		return nil, &FormatError{Field: "PartHeader.subtypeDataOffset", Reason: "expected subtype data for this part kind"}
	} else if kind == PartKindMapPiece {
		p.Data = MapPiecePartData{}
	}

	return p, nil
}

func readPartOptionalStruct(r *stream.Reader, start, offset int64, required bool, read func() error) error {
	if offset == 0 {
		if required {
			return &FormatError{Field: "PartHeader", Reason: "expected struct offset to be set for this part kind"}
		}
		return nil
	}
	r.Seek(start + offset)
	return read()
}

func readPartSupertypeData(r *stream.Reader, pos int64, p *Part) error {
	r.Seek(pos)
	var err error
	if p.EntityID, err = r.Uint32(); err != nil {
		return err
	}
	if p.SUnk04, err = r.Uint8(); err != nil {
		return err
	}
	if err := r.AssertPadding(3); err != nil {
		return err
	}
	if p.LodID, err = r.Int8(); err != nil {
		return err
	}
	if p.SUnk09, err = r.Uint8(); err != nil {
		return err
	}
	if p.IsPointLightShadowSource, err = r.Int8(); err != nil {
		return err
	}
	if p.SUnk0B, err = r.Uint8(); err != nil {
		return err
	}
	if p.IsShadowSource, err = r.Bool(); err != nil {
		return err
	}
	if p.IsStaticShadowSource, err = r.Uint8(); err != nil {
		return err
	}
	if p.IsCascade3ShadowSource, err = r.Uint8(); err != nil {
		return err
	}
	if p.SUnk0F, err = r.Uint8(); err != nil {
		return err
	}
	if p.SUnk10, err = r.Uint8(); err != nil {
		return err
	}
	if p.IsShadowDestination, err = r.Bool(); err != nil {
		return err
	}
	if p.IsShadowOnly, err = r.Bool(); err != nil {
		return err
	}
	if p.DrawByReflectCam, err = r.Bool(); err != nil {
		return err
	}
	if p.DrawOnlyReflectCam, err = r.Bool(); err != nil {
		return err
	}
	if p.EnableOnAboveShadow, err = r.Uint8(); err != nil {
		return err
	}
	if p.DisablePointLightEffect, err = r.Bool(); err != nil {
		return err
	}
	if p.SUnk17, err = r.Uint8(); err != nil {
		return err
	}
	if p.SUnk18, err = r.Int32(); err != nil {
		return err
	}
	for i := range p.EntityGroupIDs {
		if p.EntityGroupIDs[i], err = r.Uint32(); err != nil {
			return err
		}
	}
	if p.SUnk3C, err = r.Int16(); err != nil {
		return err
	}
	if p.SUnk3E, err = r.Int16(); err != nil {
		return err
	}
	return nil
}

func writePartSupertypeData(w *stream.Writer, p *Part) {
	w.WriteUint32(p.EntityID)
	w.WriteUint8(p.SUnk04)
	w.WritePadding(3)
	w.WriteInt8(p.LodID)
	w.WriteUint8(p.SUnk09)
	w.WriteInt8(p.IsPointLightShadowSource)
	w.WriteUint8(p.SUnk0B)
	w.WriteBool(p.IsShadowSource)
	w.WriteUint8(p.IsStaticShadowSource)
	w.WriteUint8(p.IsCascade3ShadowSource)
	w.WriteUint8(p.SUnk0F)
	w.WriteUint8(p.SUnk10)
	w.WriteBool(p.IsShadowDestination)
	w.WriteBool(p.IsShadowOnly)
	w.WriteBool(p.DrawByReflectCam)
	w.WriteBool(p.DrawOnlyReflectCam)
	w.WriteUint8(p.EnableOnAboveShadow)
	w.WriteBool(p.DisablePointLightEffect)
	w.WriteUint8(p.SUnk17)
	w.WriteInt32(p.SUnk18)
	for _, v := range p.EntityGroupIDs {
		w.WriteUint32(v)
	}
	w.WriteInt16(p.SUnk3C)
	w.WriteInt16(p.SUnk3E)
}

func deserializePartData(r *stream.Reader, kind PartKind) (PartData, error) {
	switch kind {
	case PartKindMapPiece:
		return MapPiecePartData{}, nil
	case PartKindCharacter, PartKindDummyCharacter:
		var d CharacterPartData
		var err error
		if d.AIID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.CharacterID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.TalkID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk15, err = r.Int8(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		if d.PlatoonID, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		if d.PlayerID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.drawParentIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.patrolRouteEventIdx, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		if d.SUnk24, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk28, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk34, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk3C, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.ActivateConditionParamID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.BackAwayEventAnimationID, err = r.Int32(); err != nil {
			return nil, err
		}
		for i := range d.SpecialEffectSetParamIDs {
			if d.SpecialEffectSetParamIDs[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		if d.SUnk84, err = r.Float32(); err != nil {
			return nil, err
		}
		return &d, nil
	case PartKindPlayerStart:
		var d PlayerStartPartData
		var err error
		if d.SUnk00, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case PartKindCollision:
		var d CollisionPartData
		var err error
		if d.HitFilterID, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.SUnk01, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.SUnk02, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.SUnk03, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.SUnk04, err = r.Int8(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(15); err != nil {
			return nil, err
		}
		if d.SUnk14, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk18, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk1C, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.PlayRegionID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk24, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk26, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(8); err != nil {
			return nil, err
		}
		if d.SUnk30, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk34, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.SUnk35, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.DisableTorrent, err = r.Bool(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(1); err != nil {
			return nil, err
		}
		if d.SUnk3C, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk3E, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.SUnk40, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		if d.EnableFastTravelFlagID, err = r.Uint32(); err != nil {
			return nil, err
		}
		if d.SUnk4C, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk4E, err = r.Int16(); err != nil {
			return nil, err
		}
		return &d, nil
	case PartKindDummyAsset:
		var d DummyAssetPartData
		var err error
		if d.SUnk18, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case PartKindConnectCollision:
		var d ConnectCollisionPartData
		var err error
		if d.collisionIdx, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		for i := range d.ConnectedMapID {
			if d.ConnectedMapID[i], err = r.Int8(); err != nil {
				return nil, err
			}
		}
		if d.SUnk08, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.SUnk09, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.SUnk0A, err = r.Int8(); err != nil {
			return nil, err
		}
		if d.SUnk0B, err = r.Bool(); err != nil {
			return nil, err
		}
		return &d, nil
	case PartKindAsset:
		var d AssetPartData
		var err error
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		if d.SUnk02, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(12); err != nil {
			return nil, err
		}
		if d.SUnk10, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.SUnk11, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.SUnk12, err = r.Uint8(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(1); err != nil {
			return nil, err
		}
		if d.SFXParamRelativeID, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(12); err != nil {
			return nil, err
		}
		if d.SUnk1E, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(4); err != nil {
			return nil, err
		}
		if d.SUnk24, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk28, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk30, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk34, err = r.Int32(); err != nil {
			return nil, err
		}
		for i := range d.drawParentPartsIdx {
			if d.drawParentPartsIdx[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		if d.SUnk50, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.SUnk51, err = r.Uint8(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(1); err != nil {
			return nil, err
		}
		if d.SUnk53, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.SUnk54, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk58, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk5C, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk60, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SUnk64, err = r.Int32(); err != nil {
			return nil, err
		}
		for _, extra := range []*ExtraAssetData{&d.ExtraData1, &d.ExtraData2, &d.ExtraData3, &d.ExtraData4} {
			raw, err := readRaw(r, 0x10)
			if err != nil {
				return nil, err
			}
			copy(extra.Raw[:], raw)
		}
		return &d, nil
	default:
		return nil, &FormatError{Field: "PartHeader.subtype", Reason: "unrecognized part kind"}
	}
}

// WireReferences resolves this Part's staged raw indices against the
// fully-deserialized Model and Part lists. patrolRouteEvents are those
// events of kind PatrolRoute, in Event Param order, the index space
// CharacterPartData.PatrolRouteEvent resolves against. collisionParts are
// those parts of kind Collision, in Part Param order.
func (p *Part) WireReferences(models []*Model, parts []*Part, patrolRouteEvents []*Event, collisionParts []*Part) {
	p.Model.SetFromIndex(models, p.modelIdx)

	switch d := p.Data.(type) {
	case *CharacterPartData:
		d.DrawParent.SetFromIndex(parts, d.drawParentIdx)
		d.PatrolRouteEvent.SetFromIndex16(patrolRouteEvents, d.patrolRouteEventIdx)
	case *ConnectCollisionPartData:
		d.Collision.SetFromIndex16(collisionParts, d.collisionIdx)
	case *AssetPartData:
		for i := range d.DrawParentParts {
			d.DrawParentParts[i].SetFromIndex(parts, d.drawParentPartsIdx[i])
		}
	}
}

// StageIndices resolves this Part's live references back to raw indices
// ahead of Serialize. Returns a FormatError if a 16-bit index field
// (PatrolRouteEvent, Collision) can't represent its target's position.
func (p *Part) StageIndices(models []*Model, parts []*Part, patrolRouteEvents []*Event, collisionParts []*Part) error {
	p.modelIdx = p.Model.ToIndex(p.Name, models)

	switch d := p.Data.(type) {
	case *CharacterPartData:
		d.drawParentIdx = d.DrawParent.ToIndex(p.Name, parts)
		idx, err := d.PatrolRouteEvent.ToIndex16(p.Name, "CharacterPart.PatrolRouteEventIndex", patrolRouteEvents)
		if err != nil {
			return err
		}
		d.patrolRouteEventIdx = idx
	case *ConnectCollisionPartData:
		idx, err := d.Collision.ToIndex16(p.Name, "ConnectCollisionPart.CollisionIndex", collisionParts)
		if err != nil {
			return err
		}
		d.collisionIdx = idx
	case *AssetPartData:
		for i := range d.DrawParentParts {
			d.drawParentPartsIdx[i] = d.DrawParentParts[i].ToIndex(p.Name, parts)
		}
	}
	return nil
}

// Serialize writes this Part entry. Unlike Region, Part headers carry no
// separate supertype-index field (nor do Model and Route headers), so only
// the subtype index is threaded through.
func (p *Part) Serialize(w *stream.Writer, subtypeIndex int32) error {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("PartHeader", partHeaderSize)

	nameOffset := w.Pos() - start
	w.WriteUTF16String(p.Name)

	var sibPathOffset int64
	if p.SibPath != "" {
		sibPathOffset = w.Pos() - start
		w.WriteUTF16String(p.SibPath)
	}
	w.Align(8)

	supertypeDataOffset := w.Pos() - start
	writePartSupertypeData(w, p)

	schema := partSchemas[p.Kind]
	var drawInfo1Off, drawInfo2Off, gparamOff, sceneGparamOff, grassOff, unk8Off, unk9Off, tileOff, unk11Off int64
	if schema.DrawInfo1 && p.DrawInfo1 != nil {
		drawInfo1Off = w.Pos() - start
		writeDrawInfo1(w, *p.DrawInfo1)
	}
	if schema.DrawInfo2 && p.DrawInfo2 != nil {
		drawInfo2Off = w.Pos() - start
		writeDrawInfo2(w, *p.DrawInfo2)
	}
	if schema.GParam && p.GParam != nil {
		gparamOff = w.Pos() - start
		writeGParam(w, *p.GParam)
	}
	if schema.SceneGParam && p.SceneGParam != nil {
		sceneGparamOff = w.Pos() - start
		writeSceneGParam(w, *p.SceneGParam)
	}
	if schema.GrassConfig && p.GrassConfig != nil {
		grassOff = w.Pos() - start
		writeGrassConfig(w, *p.GrassConfig)
	}
	if schema.UnkStruct8 && p.UnkStruct8 != nil {
		unk8Off = w.Pos() - start
		writeUnkPartStruct8(w, *p.UnkStruct8)
	}
	if schema.UnkStruct9 && p.UnkStruct9 != nil {
		unk9Off = w.Pos() - start
		writeUnkPartStruct9(w, *p.UnkStruct9)
	}
	if schema.TileLoadConfig && p.TileLoadConfig != nil {
		tileOff = w.Pos() - start
		writeTileLoadConfig(w, *p.TileLoadConfig)
	}
	if schema.UnkStruct11 && p.UnkStruct11 != nil {
		unk11Off = w.Pos() - start
		writeUnkPartStruct11(w, *p.UnkStruct11)
	}

	var subtypeDataOffset int64
	if p.Data != nil {
		if _, isMapPiece := p.Data.(MapPiecePartData); !isMapPiece {
			subtypeDataOffset = w.Pos() - start
			serializePartData(w, p.Data)
		}
	}
	w.Align(8)

	h := partHeader{
		nameOffset:           nameOffset,
		modelInstanceID:      p.ModelInstanceID,
		subtype:              int32(p.Kind),
		subtypeIndex:         subtypeIndex,
		modelIndex:           p.modelIdx,
		sibPathOffset:        sibPathOffset,
		translate:            p.Translate,
		rotate:               p.Rotate,
		scale:                p.Scale,
		unk44:                p.Unk44,
		eventLayer:           p.EventLayer,
		drawInfo1Offset:      drawInfo1Off,
		drawInfo2Offset:      drawInfo2Off,
		supertypeDataOffset:  supertypeDataOffset,
		subtypeDataOffset:    subtypeDataOffset,
		gparamOffset:         gparamOff,
		sceneGparamOffset:    sceneGparamOff,
		grassConfigOffset:    grassOff,
		unkStruct8Offset:     unk8Off,
		unkStruct9Offset:     unk9Off,
		tileLoadConfigOffset: tileOff,
		unkStruct11Offset:    unk11Off,
	}
	if err := rv.FillValidatedStruct("PartHeader", func() []byte { return encodePartHeader(h) }); err != nil {
		return err
	}
	return rv.Finish()
}

func encodePartHeader(h partHeader) []byte {
	w := stream.NewWriter()
	w.WriteInt64(h.nameOffset)
	w.WriteInt32(h.modelInstanceID)
	w.WriteInt32(h.subtype)
	w.WriteInt32(h.subtypeIndex)
	w.WriteInt32(h.modelIndex)
	w.WriteInt64(h.sibPathOffset)
	for _, v := range h.translate {
		w.WriteFloat32(v)
	}
	for _, v := range h.rotate {
		w.WriteFloat32(v)
	}
	for _, v := range h.scale {
		w.WriteFloat32(v)
	}
	w.WriteInt32(h.unk44)
	w.WriteInt32(h.eventLayer)
	w.WriteInt32(h.zero)
	for _, o := range []int64{
		h.drawInfo1Offset, h.drawInfo2Offset, h.supertypeDataOffset, h.subtypeDataOffset,
		h.gparamOffset, h.sceneGparamOffset, h.grassConfigOffset, h.unkStruct8Offset,
		h.unkStruct9Offset, h.tileLoadConfigOffset, h.unkStruct11Offset,
	} {
		w.WriteInt64(o)
	}
	w.WritePadding(24)
	return w.Bytes()
}

func serializePartData(w *stream.Writer, data PartData) {
	switch d := data.(type) {
	case *CharacterPartData:
		w.WriteInt32(d.AIID)
		w.WriteInt32(d.CharacterID)
		w.WriteInt32(d.TalkID)
		w.WriteInt8(d.SUnk15)
		w.WritePadding(2)
		w.WriteInt16(d.PlatoonID)
		w.WritePadding(2)
		w.WriteInt32(d.PlayerID)
		w.WriteInt32(d.drawParentIdx)
		w.WriteInt16(d.patrolRouteEventIdx)
		w.WritePadding(2)
		w.WriteInt32(d.SUnk24)
		w.WriteInt32(d.SUnk28)
		w.WriteInt32(d.SUnk34)
		w.WriteInt32(d.SUnk3C)
		w.WriteInt32(d.ActivateConditionParamID)
		w.WriteInt32(d.BackAwayEventAnimationID)
		for _, v := range d.SpecialEffectSetParamIDs {
			w.WriteInt32(v)
		}
		w.WriteFloat32(d.SUnk84)
	case *PlayerStartPartData:
		w.WriteInt32(d.SUnk00)
	case *CollisionPartData:
		w.WriteUint8(d.HitFilterID)
		w.WriteInt8(d.SUnk01)
		w.WriteInt8(d.SUnk02)
		w.WriteInt8(d.SUnk03)
		w.WriteInt8(d.SUnk04)
		w.WritePadding(15)
		w.WriteInt32(d.SUnk14)
		w.WriteInt32(d.SUnk18)
		w.WriteInt32(d.SUnk1C)
		w.WriteInt32(d.PlayRegionID)
		w.WriteInt32(d.SUnk24)
		w.WriteInt16(d.SUnk26)
		w.WritePadding(8)
		w.WriteInt32(d.SUnk30)
		w.WriteInt8(d.SUnk34)
		w.WriteInt8(d.SUnk35)
		w.WriteBool(d.DisableTorrent)
		w.WritePadding(1)
		w.WriteInt32(d.SUnk3C)
		w.WriteInt16(d.SUnk3E)
		w.WriteInt16(d.SUnk40)
		w.WritePadding(2)
		w.WriteUint32(d.EnableFastTravelFlagID)
		w.WriteInt32(d.SUnk4C)
		w.WriteInt16(d.SUnk4E)
	case *DummyAssetPartData:
		w.WriteInt32(d.SUnk18)
	case *ConnectCollisionPartData:
		w.WriteInt16(d.collisionIdx)
		w.WritePadding(2)
		for _, b := range d.ConnectedMapID {
			w.WriteInt8(b)
		}
		w.WriteInt8(d.SUnk08)
		w.WriteBool(d.SUnk09)
		w.WriteInt8(d.SUnk0A)
		w.WriteBool(d.SUnk0B)
	case *AssetPartData:
		w.WritePadding(2)
		w.WriteInt16(d.SUnk02)
		w.WritePadding(12)
		w.WriteUint8(d.SUnk10)
		w.WriteBool(d.SUnk11)
		w.WriteUint8(d.SUnk12)
		w.WritePadding(1)
		w.WriteInt16(d.SFXParamRelativeID)
		w.WritePadding(12)
		w.WriteInt16(d.SUnk1E)
		w.WritePadding(4)
		w.WriteInt32(d.SUnk24)
		w.WriteInt32(d.SUnk28)
		w.WriteInt32(d.SUnk30)
		w.WriteInt32(d.SUnk34)
		for _, idx := range d.drawParentPartsIdx {
			w.WriteInt32(idx)
		}
		w.WriteBool(d.SUnk50)
		w.WriteUint8(d.SUnk51)
		w.WritePadding(1)
		w.WriteUint8(d.SUnk53)
		w.WriteInt32(d.SUnk54)
		w.WriteInt32(d.SUnk58)
		w.WriteInt32(d.SUnk5C)
		w.WriteInt32(d.SUnk60)
		w.WriteInt32(d.SUnk64)
		for _, extra := range []ExtraAssetData{d.ExtraData1, d.ExtraData2, d.ExtraData3, d.ExtraData4} {
			w.WriteBytes(extra.Raw[:])
		}
	}
}
