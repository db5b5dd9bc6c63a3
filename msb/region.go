package msb

import "github.com/Grimrukh/msb-go/stream"

// RegionKind tags which of the Region subtypes an entry is. Values match
// the on-disk subtype tag; Other uses -1 here for 0xFFFFFFFF as an int32.
type RegionKind int32

const (
	RegionKindInvasionPoint             RegionKind = 1
	RegionKindEnvironmentMapPoint       RegionKind = 2
	RegionKindSound                     RegionKind = 4
	RegionKindVFX                       RegionKind = 5
	RegionKindWindVFX                   RegionKind = 6
	RegionKindSpawnPoint                RegionKind = 8
	RegionKindMessage                   RegionKind = 9
	RegionKindEnvironmentMapEffectBox   RegionKind = 17
	RegionKindWindArea                  RegionKind = 18
	RegionKindConnection                RegionKind = 21
	RegionKindPatrolRoute22             RegionKind = 22
	RegionKindBuddySummonPoint          RegionKind = 26
	RegionKindMufflingBox               RegionKind = 28
	RegionKindMufflingPortal            RegionKind = 29
	RegionKindOtherSound                RegionKind = 30
	RegionKindMufflingPlane             RegionKind = 31
	RegionKindPatrolRoute               RegionKind = 32
	RegionKindMapPoint                  RegionKind = 33
	RegionKindWeatherOverride           RegionKind = 35
	RegionKindAutoDrawGroupPoint        RegionKind = 36
	RegionKindGroupDefeatReward         RegionKind = 37
	RegionKindMapPointDiscoveryOverride RegionKind = 38
	RegionKindMapPointParticipationOverride RegionKind = 39
	RegionKindHitset                    RegionKind = 40
	RegionKindFastTravelRestriction     RegionKind = 41
	RegionKindWeatherCreateAssetPoint   RegionKind = 42
	RegionKindPlayArea                  RegionKind = 43
	RegionKindEnvironmentMapOutput      RegionKind = 44
	RegionKindMountJump                 RegionKind = 46
	RegionKindDummy                     RegionKind = 48
	RegionKindFallPreventionRemoval     RegionKind = 49
	RegionKindNavmeshCutting            RegionKind = 50
	RegionKindMapNameOverride           RegionKind = 51
	RegionKindMountJumpFall             RegionKind = 52
	RegionKindHorseRideOverride         RegionKind = 53
	RegionKindOther                     RegionKind = -1
)

// alignsBeforeSubtypeData reproduces Region::Serialize's fragile,
// kind-dependent alignment rule exactly: "newer" region kinds (those
// numbered above BuddySummonPoint, excluding the catch-all Other) 8-byte
// align the stream before writing subtype data; all other kinds align
// after. Grounded on Region.cpp's two mirrored "if" conditions rather than
// inferred, since there is no way to derive this from the format's regular
// structure.
func alignsBeforeSubtypeData(kind RegionKind) bool {
	return kind > RegionKindBuddySummonPoint && kind != RegionKindOther
}

// RegionData is the marker interface for a Region's subtype-specific
// payload. The six kinds that write no subtype data carry EmptyRegionData;
// every other kind has its own payload type.
type RegionData interface {
	regionData()
}

// EmptyRegionData is used by every Region kind that writes no subtype data
// at all (a zero subtypeDataOffset): WindArea, MufflingPlane,
// MapPointDiscoveryOverride, MapPointParticipationOverride,
// EnvironmentMapOutput, and Other. Every other kind below has its own
// payload type, even when that payload carries no named field (some
// originals store only validated constants).
type EmptyRegionData struct{}

func (EmptyRegionData) regionData() {}

// InvasionPointData is the payload for an InvasionPoint region.
type InvasionPointData struct {
	Priority int32
}

func (InvasionPointData) regionData() {}

// EnvironmentMapPointData is the payload for an EnvironmentMapPoint region.
type EnvironmentMapPointData struct {
	Unk00 float32
	Unk04 int32
	Unk0D bool
	Unk0E bool
	Unk0F bool
	Unk10 float32
	Unk14 float32
	MapID int32
	Unk20 int32
	Unk24 int32
	Unk28 int32
	Unk2C uint8
	Unk2D uint8
}

func (EnvironmentMapPointData) regionData() {}

// SoundData is the payload for a Sound region. ChildRegions is a live
// reference array wired against the Region Param, resolved the same way as
// every other cross-reference in this package.
type SoundData struct {
	SoundType      int32
	SoundID        int32
	ChildRegions   [16]RegionReference
	childRegionIdx [16]int32
	Unk49          bool
}

func (SoundData) regionData() {}

// SpawnPointData is the payload for a SpawnPoint region (player/NPC warp
// destination). The original struct stores no real field: its sole int32 is
// always -1 and validated on read.
type SpawnPointData struct{}

func (SpawnPointData) regionData() {}

// MessageData is the payload for a Message (soapstone) region.
type MessageData struct {
	MessageID          int16
	Unk02              int16
	Hidden             bool
	Unk08              int32
	Unk0C              int32
	EnableEventFlagID  uint32
	CharacterModelName int32
	CharacterID        int32
	AnimationID        int32
	PlayerID           int32
}

func (MessageData) regionData() {}

// EnvironmentMapEffectBoxData is the payload for an
// EnvironmentMapEffectBox region.
type EnvironmentMapEffectBoxData struct {
	EnableDist     float32
	TransitionDist float32
	Unk08          uint8
	Unk09          uint8
	Unk0A          int16
	Unk24          float32
	Unk28          float32
	Unk2C          int16
	Unk2E          bool
	Unk2F          bool
	Unk30          int16
	Unk33          bool
	Unk34          int16
	Unk36          int16
}

func (EnvironmentMapEffectBoxData) regionData() {}

// ConnectionData is the payload for a Connection (map-transition trigger)
// region.
type ConnectionData struct {
	TargetMapID [4]int8
}

func (ConnectionData) regionData() {}

// PatrolRoute22Data is the payload for the older PatrolRoute22 region kind.
// The original struct stores no real field: both int32s are constants
// validated on read (-1, then 0).
type PatrolRoute22Data struct{}

func (PatrolRoute22Data) regionData() {}

// BuddySummonPointData is the payload for a BuddySummonPoint region: 16
// bytes of unexplained padding in the original, with no named field.
type BuddySummonPointData struct{}

func (BuddySummonPointData) regionData() {}

// MufflingBoxData is the payload for a MufflingBox (sound-occlusion volume)
// region.
type MufflingBoxData struct {
	Unk00 int32
	Unk24 float32
	Unk34 float32
	Unk3C float32
	Unk40 float32
	Unk44 float32
}

func (MufflingBoxData) regionData() {}

// MufflingPortalData is the payload for a MufflingPortal region.
type MufflingPortalData struct {
	Unk00 int32
}

func (MufflingPortalData) regionData() {}

// OtherSoundData is the payload for the OtherSound region kind.
type OtherSoundData struct {
	Unk00 uint8
	Unk01 uint8
	Unk02 uint8
	Unk03 uint8
	Unk04 int32
	Unk08 int16
	Unk0A int16
	Unk0C uint8
}

func (OtherSoundData) regionData() {}

// PatrolRouteRegionData is the payload for a PatrolRoute region (distinct
// from the Event PatrolRouteData, which lists waypoints; this is a single
// raw value on the Region itself).
type PatrolRouteRegionData struct {
	Unk00 int32
}

func (PatrolRouteRegionData) regionData() {}

// MapPointData is the payload for a MapPoint region.
type MapPointData struct {
	Unk00 int32
	Unk04 int32
	Unk08 float32
	Unk0C float32
	Unk14 float32
	Unk18 float32
}

func (MapPointData) regionData() {}

// WeatherOverrideData is the payload for a WeatherOverride region.
type WeatherOverrideData struct {
	WeatherLotID int32
}

func (WeatherOverrideData) regionData() {}

// AutoDrawGroupPointData is the payload for an AutoDrawGroupPoint region.
type AutoDrawGroupPointData struct {
	Unk00 int32
}

func (AutoDrawGroupPointData) regionData() {}

// GroupDefeatRewardData is the payload for a GroupDefeatReward region.
// GroupParts is a live reference array (8 slots) into the Part Param,
// resolved the same way as every other cross-reference in this package.
type GroupDefeatRewardData struct {
	Unk00         int32
	Unk04         int32
	Unk08         int32
	GroupParts    [8]PartReference
	groupPartsIdx [8]int32
	Unk34         int32
	Unk38         int32
	Unk54         int32
}

func (GroupDefeatRewardData) regionData() {}

// HitsetData is the payload for a Hitset region.
type HitsetData struct {
	Unk00 int32
}

func (HitsetData) regionData() {}

// FastTravelRestrictionData is the payload for a FastTravelRestriction
// region.
type FastTravelRestrictionData struct {
	EventFlagID int32
}

func (FastTravelRestrictionData) regionData() {}

// WeatherCreateAssetPointData is the payload for a
// WeatherCreateAssetPoint region: a single reserved zero int32 in the
// original, with no named field.
type WeatherCreateAssetPointData struct{}

func (WeatherCreateAssetPointData) regionData() {}

// PlayAreaData is the payload for a PlayArea region.
type PlayAreaData struct {
	Unk00 int32
	Unk04 int32
}

func (PlayAreaData) regionData() {}

// MountJumpData is the payload for a MountJump region.
type MountJumpData struct {
	JumpHeight float32
	Unk04      int32
}

func (MountJumpData) regionData() {}

// DummyData is the payload for a Dummy region.
type DummyData struct {
	Unk00 int32
}

func (DummyData) regionData() {}

// FallPreventionRemovalData is the payload for a FallPreventionRemoval
// region: two reserved zero int32s in the original, with no named field.
type FallPreventionRemovalData struct{}

func (FallPreventionRemovalData) regionData() {}

// NavmeshCuttingData is the payload for a NavmeshCutting region: two
// reserved zero int32s in the original, with no named field.
type NavmeshCuttingData struct{}

func (NavmeshCuttingData) regionData() {}

// MapNameOverrideData is the payload for a MapNameOverride region.
type MapNameOverrideData struct {
	MapNameID int32
}

func (MapNameOverrideData) regionData() {}

// MountJumpFallData is the payload for a MountJumpFall region: a reserved
// constant -1 int32 followed by a reserved zero int32, with no named field.
type MountJumpFallData struct{}

func (MountJumpFallData) regionData() {}

// HorseRideOverrideType enumerates the horse-riding override behaviors a
// HorseRideOverride region can apply.
type HorseRideOverrideType int32

// HorseRideOverrideData is the payload for a HorseRideOverride region.
type HorseRideOverrideData struct {
	OverrideType HorseRideOverrideType
}

func (HorseRideOverrideData) regionData() {}

// VFXData is the payload for a VFX region.
type VFXData struct {
	EffectID int32
	Unk04    int32
}

func (VFXData) regionData() {}

// WindVFXData is the payload for a WindVFX region. WindRegion is a live
// reference into the Region Param, resolved the same way as every other
// cross-reference in this package.
type WindVFXData struct {
	EffectID      int32
	WindRegion    RegionReference
	windRegionIdx int32
	Unk08         float32
}

func (WindVFXData) regionData() {}

// Region is an MSB Region entry: a point, volume, or composite of other
// Regions used as a trigger, spawn point, camera boundary, or similar.
type Region struct {
	EntityEntry

	Kind  RegionKind
	Shape Shape
	Data  RegionData

	Translate [3]float32
	Rotate    [3]float32 // Euler angles, radians
	Unk40     int32
	EventLayer int32

	UnkShortsA []int16
	UnkShortsB []int16

	AttachedPart   PartReference
	attachedPartIdx int32
	Unk08          uint8

	MapID [4]int8
	ExtraUnk04 int32
	ExtraUnk0C int32

	// CompositeChildren holds the 8 (region, unk04) pairs for a Composite
	// shape. Populated only when Shape.Type == ShapeComposite.
	CompositeChildren [8]CompositeChildRef
}

const regionHeaderSize = 8 + 4 + 4 + 4 + 12 + 12 + 4 + 8 + 8 + 4 + 4 + 8 + 8 + 8 + 8

type regionHeader struct {
	nameOffset          int64
	subtype             int32
	subtypeIndex        int32
	shapeType           uint32
	translate           [3]float32
	rotate              [3]float32
	supertypeIndex      int32
	unkShortsAOffset    int64
	unkShortsBOffset    int64
	unk40               int32
	eventLayer          int32
	shapeDataOffset     int64
	supertypeDataOffset int64
	subtypeDataOffset   int64
	extraDataOffset     int64
}

func readRegionHeader(r *stream.Reader) (regionHeader, error) {
	var h regionHeader
	var err error
	if h.nameOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.subtype, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtypeIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if h.shapeType, err = r.Uint32(); err != nil {
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
	if h.supertypeIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if h.unkShortsAOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.unkShortsBOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.unk40, err = r.Int32(); err != nil {
		return h, err
	}
	if h.eventLayer, err = r.Int32(); err != nil {
		return h, err
	}
	if h.shapeDataOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.supertypeDataOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.subtypeDataOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.extraDataOffset, err = r.Int64(); err != nil {
		return h, err
	}

	for _, check := range []struct {
		name string
		v    int64
	}{
		{"RegionHeader.nameOffset", h.nameOffset},
		{"RegionHeader.unkShortsAOffset", h.unkShortsAOffset},
		{"RegionHeader.unkShortsBOffset", h.unkShortsBOffset},
		{"RegionHeader.supertypeDataOffset", h.supertypeDataOffset},
		{"RegionHeader.extraDataOffset", h.extraDataOffset},
	} {
		if err := stream.AssertNonZero(check.name, check.v); err != nil {
			return h, &FormatError{Field: check.name, Reason: err.Error()}
		}
	}
	return h, nil
}

func readInt16Array(r *stream.Reader) ([]int16, error) {
	count, err := r.Int16()
	if err != nil {
		return nil, err
	}
	out := make([]int16, count)
	for i := range out {
		if out[i], err = r.Int16(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeInt16Array(w *stream.Writer, vals []int16) {
	w.WriteInt16(int16(len(vals)))
	for _, v := range vals {
		w.WriteInt16(v)
	}
}

// DeserializeRegion reads one Region entry starting at start.
func DeserializeRegion(r *stream.Reader, start int64, kind RegionKind) (*Region, error) {
	h, err := readRegionHeader(r)
	if err != nil {
		return nil, err
	}
	if RegionKind(h.subtype) != kind {
		return nil, &FormatError{Field: "RegionHeader.subtype", Reason: "does not match dispatched subtype"}
	}

	reg := &Region{
		Kind:       kind,
		Translate:  h.translate,
		Rotate:     h.rotate,
		Unk40:      h.unk40,
		EventLayer: h.eventLayer,
		Shape:      Shape{Type: ShapeType(h.shapeType)},
	}

	r.Seek(start + h.nameOffset)
	name, err := r.UTF16String()
	if err != nil {
		return nil, err
	}
	reg.Name = name

	r.Seek(start + h.unkShortsAOffset)
	if reg.UnkShortsA, err = readInt16Array(r); err != nil {
		return nil, err
	}
	r.Seek(start + h.unkShortsBOffset)
	if reg.UnkShortsB, err = readInt16Array(r); err != nil {
		return nil, err
	}

	if reg.Shape.HasShapeData() {
		if err := stream.AssertNonZero("RegionHeader.shapeDataOffset", h.shapeDataOffset); err != nil {
			return nil, &FormatError{Field: "RegionHeader.shapeDataOffset", Reason: err.Error()}
		}
		r.Seek(start + h.shapeDataOffset)
		if kind := reg.Shape.Type; kind == ShapeComposite {
			for i := range reg.CompositeChildren {
				idx, err := r.Int32()
				if err != nil {
					return nil, err
				}
				unk04, err := r.Int32()
				if err != nil {
					return nil, err
				}
				reg.CompositeChildren[i].regionIndex = idx
				reg.CompositeChildren[i].Unk04 = unk04
			}
		} else if err := reg.Shape.DeserializeShapeData(r); err != nil {
			return nil, err
		}
	} else if h.shapeDataOffset != 0 {
		return nil, &FormatError{Field: "RegionHeader.shapeDataOffset", Reason: "must be 0 for a shape with no shape data"}
	}

	r.Seek(start + h.supertypeDataOffset)
	partIdx, err := r.Int32()
	if err != nil {
		return nil, err
	}
	entityID, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	unk08, err := r.Uint8()
	if err != nil {
		return nil, err
	}
	if err := r.AssertPadding(7); err != nil {
		return nil, err
	}
	reg.attachedPartIdx = partIdx
	reg.EntityID = entityID
	reg.Unk08 = unk08

	r.Seek(start + h.extraDataOffset)
	mapID, err := r.Int32()
	if err != nil {
		return nil, err
	}
	extraUnk04, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if err := r.AssertPadding(4); err != nil {
		return nil, err
	}
	extraUnk0C, err := r.Int32()
	if err != nil {
		return nil, err
	}
	if err := r.AssertPadding(16); err != nil {
		return nil, err
	}
	reg.ExtraUnk04 = extraUnk04
	reg.ExtraUnk0C = extraUnk0C
	for i := range reg.MapID {
		reg.MapID[i] = int8(mapID >> (8 * i))
	}

	if alignsBeforeSubtypeData(kind) {
		if err := r.Align(8); err != nil {
			return nil, err
		}
	}
	if h.subtypeDataOffset != 0 {
		r.Seek(start + h.subtypeDataOffset)
		data, err := deserializeRegionData(r, kind)
		if err != nil {
			return nil, err
		}
		reg.Data = data
	} else {
		reg.Data = EmptyRegionData{}
	}
	if !alignsBeforeSubtypeData(kind) {
		if err := r.Align(8); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func deserializeRegionData(r *stream.Reader, kind RegionKind) (RegionData, error) {
	switch kind {
	case RegionKindInvasionPoint:
		var d InvasionPointData
		var err error
		if d.Priority, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindEnvironmentMapPoint:
		var d EnvironmentMapPointData
		var err error
		if d.Unk00, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk0D, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.Unk0E, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.Unk0F, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.Unk10, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk14, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.MapID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk20, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk24, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk28, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk2C, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk2D, err = r.Uint8(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindSound:
		var d SoundData
		var err error
		if d.SoundType, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SoundID, err = r.Int32(); err != nil {
			return nil, err
		}
		for i := range d.childRegionIdx {
			if d.childRegionIdx[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		zero, err := r.Uint8()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("SoundRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "SoundRegionData.zero", Reason: err.Error()}
		}
		if d.Unk49, err = r.Bool(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(2); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindSpawnPoint:
		minusOne, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("SpawnPointRegionData.minusOne", -1, int64(minusOne)); err != nil {
			return nil, &FormatError{Field: "SpawnPointRegionData.minusOne", Reason: err.Error()}
		}
		if err := r.AssertPadding(3); err != nil {
			return nil, err
		}
		return &SpawnPointData{}, nil
	case RegionKindMessage:
		var d MessageData
		var err error
		if d.MessageID, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.Unk02, err = r.Int16(); err != nil {
			return nil, err
		}
		hidden, err := r.Int32()
		if err != nil {
			return nil, err
		}
		d.Hidden = hidden == 1
		if d.Unk08, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk0C, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.EnableEventFlagID, err = r.Uint32(); err != nil {
			return nil, err
		}
		if d.CharacterModelName, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.CharacterID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.AnimationID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.PlayerID, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindEnvironmentMapEffectBox:
		var d EnvironmentMapEffectBoxData
		var err error
		if d.EnableDist, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.TransitionDist, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk08, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk09, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk0A, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(0x18); err != nil {
			return nil, err
		}
		if d.Unk24, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk28, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk2C, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.Unk2E, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.Unk2F, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.Unk30, err = r.Int16(); err != nil {
			return nil, err
		}
		zero, err := r.Uint8()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("EnvironmentMapEffectBoxRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "EnvironmentMapEffectBoxRegionData.zero", Reason: err.Error()}
		}
		if d.Unk33, err = r.Bool(); err != nil {
			return nil, err
		}
		if d.Unk34, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.Unk36, err = r.Int16(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(4); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindConnection:
		var d ConnectionData
		for i := range d.TargetMapID {
			b, err := r.Int8()
			if err != nil {
				return nil, err
			}
			d.TargetMapID[i] = b
		}
		if err := r.AssertPadding(12); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindPatrolRoute22:
		minusOne, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("PatrolRoute22RegionData.minusOne", -1, int64(minusOne)); err != nil {
			return nil, &FormatError{Field: "PatrolRoute22RegionData.minusOne", Reason: err.Error()}
		}
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("PatrolRoute22RegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "PatrolRoute22RegionData.zero", Reason: err.Error()}
		}
		return &PatrolRoute22Data{}, nil
	case RegionKindBuddySummonPoint:
		if err := r.AssertPadding(16); err != nil {
			return nil, err
		}
		return &BuddySummonPointData{}, nil
	case RegionKindMufflingBox:
		var d MufflingBoxData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(20); err != nil {
			return nil, err
		}
		x32, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("MufflingBoxRegionData.x24_32", 32, int64(x32)); err != nil {
			return nil, &FormatError{Field: "MufflingBoxRegionData.x24_32", Reason: err.Error()}
		}
		if err := r.AssertPadding(8); err != nil {
			return nil, err
		}
		if d.Unk24, err = r.Float32(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(12); err != nil {
			return nil, err
		}
		if d.Unk34, err = r.Float32(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(4); err != nil {
			return nil, err
		}
		if d.Unk3C, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk40, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk44, err = r.Float32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindMufflingPortal:
		var d MufflingPortalData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(20); err != nil {
			return nil, err
		}
		x32, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("MufflingPortalRegionData.x24_32", 32, int64(x32)); err != nil {
			return nil, &FormatError{Field: "MufflingPortalRegionData.x24_32", Reason: err.Error()}
		}
		if err := r.AssertPadding(24); err != nil {
			return nil, err
		}
		minusOne, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("MufflingPortalRegionData.minusOne", -1, int64(minusOne)); err != nil {
			return nil, &FormatError{Field: "MufflingPortalRegionData.minusOne", Reason: err.Error()}
		}
		return &d, nil
	case RegionKindOtherSound:
		var d OtherSoundData
		var err error
		if d.Unk00, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk01, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk02, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk03, err = r.Uint8(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk08, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.Unk0A, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.Unk0C, err = r.Uint8(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(19); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindPatrolRoute:
		var d PatrolRouteRegionData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindMapPoint:
		var d MapPointData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk08, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk0C, err = r.Float32(); err != nil {
			return nil, err
		}
		minusOne, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("MapPointRegionData.minusOne", -1, int64(minusOne)); err != nil {
			return nil, &FormatError{Field: "MapPointRegionData.minusOne", Reason: err.Error()}
		}
		if d.Unk14, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk18, err = r.Float32(); err != nil {
			return nil, err
		}
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("MapPointRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "MapPointRegionData.zero", Reason: err.Error()}
		}
		return &d, nil
	case RegionKindWeatherOverride:
		var d WeatherOverrideData
		var err error
		if d.WeatherLotID, err = r.Int32(); err != nil {
			return nil, err
		}
		minusOne, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("WeatherOverrideRegionData.minusOne", -1, int64(minusOne)); err != nil {
			return nil, &FormatError{Field: "WeatherOverrideRegionData.minusOne", Reason: err.Error()}
		}
		if err := r.AssertPadding(24); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindAutoDrawGroupPoint:
		var d AutoDrawGroupPointData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(28); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindGroupDefeatReward:
		var d GroupDefeatRewardData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk08, err = r.Int32(); err != nil {
			return nil, err
		}
		if err := r.AssertAllEqual(4, -1); err != nil {
			return nil, &FormatError{Field: "GroupDefeatRewardRegionData.minusOnes0", Reason: err.Error()}
		}
		for i := range d.groupPartsIdx {
			if d.groupPartsIdx[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		if d.Unk34, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk38, err = r.Int32(); err != nil {
			return nil, err
		}
		if err := r.AssertAllEqual(24, -1); err != nil {
			return nil, &FormatError{Field: "GroupDefeatRewardRegionData.minusOnes1", Reason: err.Error()}
		}
		if d.Unk54, err = r.Int32(); err != nil {
			return nil, err
		}
		if err := r.AssertPadding(8); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindMapPointDiscoveryOverride, RegionKindMapPointParticipationOverride:
		return EmptyRegionData{}, nil
	case RegionKindHitset:
		var d HitsetData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindFastTravelRestriction:
		var d FastTravelRestrictionData
		var err error
		if d.EventFlagID, err = r.Int32(); err != nil {
			return nil, err
		}
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("FastTravelRestrictionRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "FastTravelRestrictionRegionData.zero", Reason: err.Error()}
		}
		return &d, nil
	case RegionKindWeatherCreateAssetPoint:
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("WeatherCreateAssetPointRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "WeatherCreateAssetPointRegionData.zero", Reason: err.Error()}
		}
		return &WeatherCreateAssetPointData{}, nil
	case RegionKindPlayArea:
		var d PlayAreaData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindMountJump:
		var d MountJumpData
		var err error
		if d.JumpHeight, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindDummy:
		var d DummyData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("DummyRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "DummyRegionData.zero", Reason: err.Error()}
		}
		return &d, nil
	case RegionKindFallPreventionRemoval:
		if err := r.AssertPadding(8); err != nil {
			return nil, err
		}
		return &FallPreventionRemovalData{}, nil
	case RegionKindNavmeshCutting:
		if err := r.AssertPadding(8); err != nil {
			return nil, err
		}
		return &NavmeshCuttingData{}, nil
	case RegionKindMapNameOverride:
		var d MapNameOverrideData
		var err error
		if d.MapNameID, err = r.Int32(); err != nil {
			return nil, err
		}
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("MapNameOverrideRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "MapNameOverrideRegionData.zero", Reason: err.Error()}
		}
		return &d, nil
	case RegionKindMountJumpFall:
		minusOne, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertValue("MountJumpFallRegionData.minusOne", -1, int64(minusOne)); err != nil {
			return nil, &FormatError{Field: "MountJumpFallRegionData.minusOne", Reason: err.Error()}
		}
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("MountJumpFallRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "MountJumpFallRegionData.zero", Reason: err.Error()}
		}
		return &MountJumpFallData{}, nil
	case RegionKindHorseRideOverride:
		var d HorseRideOverrideData
		overrideType, err := r.Int32()
		if err != nil {
			return nil, err
		}
		d.OverrideType = HorseRideOverrideType(overrideType)
		zero, err := r.Int32()
		if err != nil {
			return nil, err
		}
		if err := stream.AssertZero("HorseRideOverrideRegionData.zero", int64(zero)); err != nil {
			return nil, &FormatError{Field: "HorseRideOverrideRegionData.zero", Reason: err.Error()}
		}
		return &d, nil
	case RegionKindVFX:
		var d VFXData
		var err error
		if d.EffectID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case RegionKindWindVFX:
		var d WindVFXData
		var err error
		if d.EffectID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.windRegionIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk08, err = r.Float32(); err != nil {
			return nil, err
		}
		return &d, nil
	default:
		return EmptyRegionData{}, nil
	}
}

// SetShapeType replaces this Region's shape, clearing the Composite
// child-reference sidecar (deregistering each child reference so no
// referrer entry leaks) when leaving Composite, and leaving it freshly
// zeroed when entering it. Any old Radius/Height/Width/Depth value is
// dropped along with the old Type, since it belongs to the shape being
// replaced.
func (reg *Region) SetShapeType(t ShapeType) {
	if reg.Shape.Type == ShapeComposite && t != ShapeComposite {
		for i := range reg.CompositeChildren {
			reg.CompositeChildren[i].Region.Clear()
			reg.CompositeChildren[i].Unk04 = 0
		}
	}
	reg.Shape = Shape{Type: t}
}

// WireReferences resolves this Region's staged raw indices (AttachedPart,
// and Composite shape children) against the fully-deserialized Part and
// Region lists.
func (reg *Region) WireReferences(parts []*Part, regions []*Region) {
	reg.AttachedPart.SetFromIndex(parts, reg.attachedPartIdx)
	if reg.Shape.Type == ShapeComposite {
		for i := range reg.CompositeChildren {
			reg.CompositeChildren[i].Region.SetFromIndex(regions, reg.CompositeChildren[i].regionIndex)
		}
	}
	switch d := reg.Data.(type) {
	case *SoundData:
		for i := range d.ChildRegions {
			d.ChildRegions[i].SetFromIndex(regions, d.childRegionIdx[i])
		}
	case *WindVFXData:
		d.WindRegion.SetFromIndex(regions, d.windRegionIdx)
	case *GroupDefeatRewardData:
		for i := range d.GroupParts {
			d.GroupParts[i].SetFromIndex(parts, d.groupPartsIdx[i])
		}
	}
}

// StageIndices resolves this Region's live references back to raw indices
// ahead of Serialize.
func (reg *Region) StageIndices(parts []*Part, regions []*Region) {
	reg.attachedPartIdx = reg.AttachedPart.ToIndex(reg.Name, parts)
	if reg.Shape.Type == ShapeComposite {
		for i := range reg.CompositeChildren {
			reg.CompositeChildren[i].regionIndex = reg.CompositeChildren[i].Region.ToIndex(reg.Name, regions)
		}
	}
	switch d := reg.Data.(type) {
	case *SoundData:
		for i := range d.ChildRegions {
			d.childRegionIdx[i] = d.ChildRegions[i].ToIndex(reg.Name, regions)
		}
	case *WindVFXData:
		d.windRegionIdx = d.WindRegion.ToIndex(reg.Name, regions)
	case *GroupDefeatRewardData:
		for i := range d.GroupParts {
			d.groupPartsIdx[i] = d.GroupParts[i].ToIndex(reg.Name, parts)
		}
	}
}

// Serialize writes this Region entry.
func (reg *Region) Serialize(w *stream.Writer, supertypeIndex, subtypeIndex int32) error {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("RegionHeader", regionHeaderSize)

	nameOffset := w.Pos() - start
	w.WriteUTF16String(reg.Name)
	w.Align(2)

	unkAOffset := w.Pos() - start
	writeInt16Array(w, reg.UnkShortsA)
	unkBOffset := w.Pos() - start
	writeInt16Array(w, reg.UnkShortsB)
	w.Align(4)

	var shapeDataOffset int64
	if reg.Shape.HasShapeData() {
		shapeDataOffset = w.Pos() - start
		if reg.Shape.Type == ShapeComposite {
			for _, child := range reg.CompositeChildren {
				w.WriteInt32(child.regionIndex)
				w.WriteInt32(child.Unk04)
			}
		} else {
			reg.Shape.SerializeShapeData(w)
		}
	}

	supertypeDataOffset := w.Pos() - start
	w.WriteInt32(reg.attachedPartIdx)
	w.WriteUint32(reg.EntityID)
	w.WriteUint8(reg.Unk08)
	w.WritePadding(7)

	extraDataOffset := w.Pos() - start
	mapID := int32(0)
	for i, b := range reg.MapID {
		mapID |= int32(uint8(b)) << (8 * i)
	}
	w.WriteInt32(mapID)
	w.WriteInt32(reg.ExtraUnk04)
	w.WritePadding(4)
	w.WriteInt32(reg.ExtraUnk0C)
	w.WritePadding(16)

	if alignsBeforeSubtypeData(reg.Kind) {
		w.Align(8)
	}
	var subtypeDataOffset int64
	if _, empty := reg.Data.(EmptyRegionData); !empty && reg.Data != nil {
		subtypeDataOffset = w.Pos() - start
		serializeRegionData(w, reg.Data)
	}
	if !alignsBeforeSubtypeData(reg.Kind) {
		w.Align(8)
	}

	h := regionHeader{
		nameOffset:          nameOffset,
		subtype:             int32(reg.Kind),
		subtypeIndex:        subtypeIndex,
		shapeType:           uint32(reg.Shape.Type),
		translate:           reg.Translate,
		rotate:              reg.Rotate,
		supertypeIndex:      supertypeIndex,
		unkShortsAOffset:    unkAOffset,
		unkShortsBOffset:    unkBOffset,
		unk40:               reg.Unk40,
		eventLayer:          reg.EventLayer,
		shapeDataOffset:     shapeDataOffset,
		supertypeDataOffset: supertypeDataOffset,
		subtypeDataOffset:   subtypeDataOffset,
		extraDataOffset:     extraDataOffset,
	}
	if err := rv.FillValidatedStruct("RegionHeader", func() []byte { return encodeRegionHeader(h) }); err != nil {
		return err
	}
	return rv.Finish()
}

func encodeRegionHeader(h regionHeader) []byte {
	w := stream.NewWriter()
	w.WriteInt64(h.nameOffset)
	w.WriteInt32(h.subtype)
	w.WriteInt32(h.subtypeIndex)
	w.WriteUint32(h.shapeType)
	for _, v := range h.translate {
		w.WriteFloat32(v)
	}
	for _, v := range h.rotate {
		w.WriteFloat32(v)
	}
	w.WriteInt32(h.supertypeIndex)
	w.WriteInt64(h.unkShortsAOffset)
	w.WriteInt64(h.unkShortsBOffset)
	w.WriteInt32(h.unk40)
	w.WriteInt32(h.eventLayer)
	w.WriteInt64(h.shapeDataOffset)
	w.WriteInt64(h.supertypeDataOffset)
	w.WriteInt64(h.subtypeDataOffset)
	w.WriteInt64(h.extraDataOffset)
	return w.Bytes()
}

func serializeRegionData(w *stream.Writer, data RegionData) {
	switch d := data.(type) {
	case *InvasionPointData:
		w.WriteInt32(d.Priority)
	case *EnvironmentMapPointData:
		w.WriteFloat32(d.Unk00)
		w.WriteInt32(d.Unk04)
		w.WriteBool(d.Unk0D)
		w.WriteBool(d.Unk0E)
		w.WriteBool(d.Unk0F)
		w.WriteFloat32(d.Unk10)
		w.WriteFloat32(d.Unk14)
		w.WriteInt32(d.MapID)
		w.WriteInt32(d.Unk20)
		w.WriteInt32(d.Unk24)
		w.WriteInt32(d.Unk28)
		w.WriteUint8(d.Unk2C)
		w.WriteUint8(d.Unk2D)
	case *SoundData:
		w.WriteInt32(d.SoundType)
		w.WriteInt32(d.SoundID)
		for _, idx := range d.childRegionIdx {
			w.WriteInt32(idx)
		}
		w.WriteUint8(0)
		w.WriteBool(d.Unk49)
		w.WritePadding(2)
	case *SpawnPointData:
		w.WriteInt32(-1)
		w.WritePadding(3)
	case *MessageData:
		w.WriteInt16(d.MessageID)
		w.WriteInt16(d.Unk02)
		if d.Hidden {
			w.WriteInt32(1)
		} else {
			w.WriteInt32(0)
		}
		w.WriteInt32(d.Unk08)
		w.WriteInt32(d.Unk0C)
		w.WriteUint32(d.EnableEventFlagID)
		w.WriteInt32(d.CharacterModelName)
		w.WriteInt32(d.CharacterID)
		w.WriteInt32(d.AnimationID)
		w.WriteInt32(d.PlayerID)
	case *EnvironmentMapEffectBoxData:
		w.WriteFloat32(d.EnableDist)
		w.WriteFloat32(d.TransitionDist)
		w.WriteUint8(d.Unk08)
		w.WriteUint8(d.Unk09)
		w.WriteInt16(d.Unk0A)
		w.WritePadding(0x18)
		w.WriteFloat32(d.Unk24)
		w.WriteFloat32(d.Unk28)
		w.WriteInt16(d.Unk2C)
		w.WriteBool(d.Unk2E)
		w.WriteBool(d.Unk2F)
		w.WriteInt16(d.Unk30)
		w.WriteUint8(0)
		w.WriteBool(d.Unk33)
		w.WriteInt16(d.Unk34)
		w.WriteInt16(d.Unk36)
		w.WritePadding(4)
	case *ConnectionData:
		for _, b := range d.TargetMapID {
			w.WriteInt8(b)
		}
		w.WritePadding(12)
	case *PatrolRoute22Data:
		w.WriteInt32(-1)
		w.WriteInt32(0)
	case *BuddySummonPointData:
		w.WritePadding(16)
	case *MufflingBoxData:
		w.WriteInt32(d.Unk00)
		w.WritePadding(20)
		w.WriteInt32(32)
		w.WritePadding(8)
		w.WriteFloat32(d.Unk24)
		w.WritePadding(12)
		w.WriteFloat32(d.Unk34)
		w.WritePadding(4)
		w.WriteFloat32(d.Unk3C)
		w.WriteFloat32(d.Unk40)
		w.WriteFloat32(d.Unk44)
	case *MufflingPortalData:
		w.WriteInt32(d.Unk00)
		w.WritePadding(20)
		w.WriteInt32(32)
		w.WritePadding(24)
		w.WriteInt32(-1)
	case *OtherSoundData:
		w.WriteUint8(d.Unk00)
		w.WriteUint8(d.Unk01)
		w.WriteUint8(d.Unk02)
		w.WriteUint8(d.Unk03)
		w.WriteInt32(d.Unk04)
		w.WriteInt16(d.Unk08)
		w.WriteInt16(d.Unk0A)
		w.WriteUint8(d.Unk0C)
		w.WritePadding(19)
	case *PatrolRouteRegionData:
		w.WriteInt32(d.Unk00)
	case *MapPointData:
		w.WriteInt32(d.Unk00)
		w.WriteInt32(d.Unk04)
		w.WriteFloat32(d.Unk08)
		w.WriteFloat32(d.Unk0C)
		w.WriteInt32(-1)
		w.WriteFloat32(d.Unk14)
		w.WriteFloat32(d.Unk18)
		w.WriteInt32(0)
	case *WeatherOverrideData:
		w.WriteInt32(d.WeatherLotID)
		w.WriteInt32(-1)
		w.WritePadding(24)
	case *AutoDrawGroupPointData:
		w.WriteInt32(d.Unk00)
		w.WritePadding(28)
	case *GroupDefeatRewardData:
		w.WriteInt32(d.Unk00)
		w.WriteInt32(d.Unk04)
		w.WriteInt32(d.Unk08)
		for i := 0; i < 4; i++ {
			w.WriteInt32(-1)
		}
		for _, idx := range d.groupPartsIdx {
			w.WriteInt32(idx)
		}
		w.WriteInt32(d.Unk34)
		w.WriteInt32(d.Unk38)
		for i := 0; i < 24; i++ {
			w.WriteInt32(-1)
		}
		w.WriteInt32(d.Unk54)
		w.WritePadding(8)
	case *HitsetData:
		w.WriteInt32(d.Unk00)
	case *FastTravelRestrictionData:
		w.WriteInt32(d.EventFlagID)
		w.WriteInt32(0)
	case *WeatherCreateAssetPointData:
		w.WriteInt32(0)
	case *PlayAreaData:
		w.WriteInt32(d.Unk00)
		w.WriteInt32(d.Unk04)
	case *MountJumpData:
		w.WriteFloat32(d.JumpHeight)
		w.WriteInt32(d.Unk04)
	case *DummyData:
		w.WriteInt32(d.Unk00)
		w.WriteInt32(0)
	case *FallPreventionRemovalData:
		w.WritePadding(8)
	case *NavmeshCuttingData:
		w.WritePadding(8)
	case *MapNameOverrideData:
		w.WriteInt32(d.MapNameID)
		w.WriteInt32(0)
	case *MountJumpFallData:
		w.WriteInt32(-1)
		w.WriteInt32(0)
	case *HorseRideOverrideData:
		w.WriteInt32(int32(d.OverrideType))
		w.WriteInt32(0)
	case *VFXData:
		w.WriteInt32(d.EffectID)
		w.WriteInt32(d.Unk04)
	case *WindVFXData:
		w.WriteInt32(d.EffectID)
		w.WriteInt32(d.windRegionIdx)
		w.WriteFloat32(d.Unk08)
	}
}
