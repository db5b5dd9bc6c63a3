package msb

import (
	"github.com/Grimrukh/msb-go/stream"
)

// EventKind tags which of the twelve Event subtypes an entry is. Values
// match the on-disk subtype tag.
type EventKind int32

const (
	EventKindTreasure    EventKind = 4
	EventKindSpawner     EventKind = 5
	EventKindObjAct      EventKind = 7
	EventKindNavigation  EventKind = 10
	EventKindNPCInvasion EventKind = 12
	EventKindPlatoon     EventKind = 15
	EventKindPatrolRoute EventKind = 20
	EventKindMount       EventKind = 21
	EventKindSignPool    EventKind = 23
	EventKindRetryPoint  EventKind = 24
	EventKindAreaTeam    EventKind = 25
	EventKindOther       EventKind = -1 // 0xFFFFFFFF
)

// EventData is the marker interface for an Event's subtype-specific
// payload, following the tagged-union approach used throughout this
// package: one concrete struct per Event kind, selected by Event.Kind,
// rather than a family of types implementing a shared behavioral
// interface.
type EventData interface {
	eventData()
}

// TreasureData is the payload for a Treasure event (item lot attached to a
// Part, typically a corpse or chest).
type TreasureData struct {
	ItemLotParamID int32
	ActionButtonID int32
	PickupAnimID   int32
	InChest        bool
	StartDisabled  bool
}

func (TreasureData) eventData() {}

// SpawnerData is the payload for a Spawner event. SpawnParts is a fixed
// 32-element reference array, grounded on EntryReference.h's
// SetReferenceArray/SetIndexArray free-function family for fixed-size
// reference-array fields.
type SpawnerData struct {
	MaxCount          int16
	SpawnerType       int16
	LimitCount        int16
	MinSpawnerCount   int16
	MaxSpawnerCount   int16
	MinInterval       float32
	MaxInterval       float32
	SpawnRegions      [8]RegionReference
	spawnRegionIdx    [8]int32
	SpawnParts        [32]PartReference
	spawnPartIdx      [32]int32
}

func (SpawnerData) eventData() {}

// ObjActData is the payload for an ObjAct (interactive object action) event.
type ObjActData struct {
	ObjActEntityID int32
	ObjActParamID  int32
	ObjActStateIdx int8
	ObjActFlag     int32

	ObjActPart    PartReference
	objActPartIdx int32
}

func (ObjActData) eventData() {}

// NavigationData is the payload for a Navigation (navmesh) event.
type NavigationData struct{}

func (NavigationData) eventData() {}

// NPCInvasionData is the payload for an NPCInvasion event.
type NPCInvasionData struct {
	HostEntityID   int32
	InvasionTime   int32
	InvasionFlagID int32
}

func (NPCInvasionData) eventData() {}

// PlatoonData is the payload for a Platoon (NPC squad) event.
type PlatoonData struct {
	PlatoonIDScriptActivate int32
	State                   int32

	GroupParts    [32]PartReference
	groupPartsIdx [32]int32
}

func (PlatoonData) eventData() {}

// PatrolRouteData is the payload for a PatrolRoute event: an ordered list of
// waypoint regions a Character's AI walks between. This is the target of
// CharacterPart's dedicated PatrolRouteEvent reference, which
// Part.WireReferences resolves by subtype index (against the PatrolRoute
// events alone) rather than by index into the whole Event list.
type PatrolRouteData struct {
	WalkRegions    []RegionReference
	walkRegionIdxs []int32
}

func (PatrolRouteData) eventData() {}

// MountData is the payload for a Mount event (rideable creature binding).
type MountData struct {
	RiderPart PartReference
	riderIdx  int32
}

func (MountData) eventData() {}

// SignPoolData is the payload for a SignPool (summon sign) event.
type SignPoolData struct {
	SignPartIdx int32
	SignType    int32
}

func (SignPoolData) eventData() {}

// RetryPointData is the payload for a RetryPoint (checkpoint) event.
type RetryPointData struct {
	RetryPartIdx  int32
	RetryRegionIdx int32
	Unk14         int32
}

func (RetryPointData) eventData() {}

// AreaTeamData is the payload for an AreaTeam event.
type AreaTeamData struct {
	Unk00 int32
	Unk04 int32
}

func (AreaTeamData) eventData() {}

// OtherData is the catch-all payload for the Other subtype, which (like a
// Route of kind RouteKindOther) has no fixed fields of its own.
type OtherData struct{}

func (OtherData) eventData() {}

// Event is an MSB Event entry: a scripted behavior attached to a Part
// and/or Region (treasure drops, spawners, patrol routes, and similar).
type Event struct {
	Entry

	Kind EventKind
	Data EventData

	EventID uint32
	MapID   [4]int8
	Unk1C   int32

	AttachedPart   PartReference
	attachedPartIdx int32

	AttachedRegion   RegionReference
	attachedRegionIdx int32
}

type eventHeader struct {
	nameOffset        int64
	eventIndex         int32
	eventType          int32
	subtypeIndex       int32
	eventID            uint32
	unk1C              int32
	supertypeDataOffset int64
	subtypeDataOffset   int64
}

const eventHeaderSize = 8 + 4 + 4 + 4 + 4 + 4 + 8 + 8

func readEventHeader(r *stream.Reader) (eventHeader, error) {
	var h eventHeader
	var err error
	if h.nameOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.eventIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if h.eventType, err = r.Int32(); err != nil {
		return h, err
	}
	if h.subtypeIndex, err = r.Int32(); err != nil {
		return h, err
	}
	if ev, err2 := r.Uint32(); err2 != nil {
		return h, err2
	} else {
		h.eventID = ev
	}
	if h.unk1C, err = r.Int32(); err != nil {
		return h, err
	}
	if h.supertypeDataOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if h.subtypeDataOffset, err = r.Int64(); err != nil {
		return h, err
	}
	if err := stream.AssertNonZero("EventHeader.nameOffset", h.nameOffset); err != nil {
		return h, &FormatError{Field: "EventHeader.nameOffset", Reason: err.Error()}
	}
	if err := stream.AssertNonZero("EventHeader.supertypeDataOffset", h.supertypeDataOffset); err != nil {
		return h, &FormatError{Field: "EventHeader.supertypeDataOffset", Reason: err.Error()}
	}
	return h, nil
}

// DeserializeEvent reads one Event entry starting at start.
func DeserializeEvent(r *stream.Reader, start int64, kind EventKind) (*Event, error) {
	h, err := readEventHeader(r)
	if err != nil {
		return nil, err
	}
	if EventKind(h.eventType) != kind {
		return nil, &FormatError{Field: "EventHeader.eventType", Reason: "does not match dispatched subtype"}
	}

	e := &Event{Kind: kind, EventID: h.eventID, Unk1C: h.unk1C}

	r.Seek(start + h.nameOffset)
	name, err := r.UTF16String()
	if err != nil {
		return nil, err
	}
	e.Name = name

	r.Seek(start + h.supertypeDataOffset)
	partIdx, err := r.Int32()
	if err != nil {
		return nil, err
	}
	regionIdx, err := r.Int32()
	if err != nil {
		return nil, err
	}
	for i := range e.MapID {
		b, err := r.Int8()
		if err != nil {
			return nil, err
		}
		e.MapID[i] = b
	}
	if err := r.AssertPadding(4); err != nil {
		return nil, err
	}
	e.attachedPartIdx = partIdx
	e.attachedRegionIdx = regionIdx

	if h.subtypeDataOffset != 0 {
		r.Seek(start + h.subtypeDataOffset)
		data, err := deserializeEventData(r, kind)
		if err != nil {
			return nil, err
		}
		e.Data = data
	} else if kind != EventKindOther && kind != EventKindNavigation {
		return nil, &FormatError{Field: "EventHeader.subtypeDataOffset", Reason: "expected subtype data for this event kind"}
	}

	return e, nil
}

func deserializeEventData(r *stream.Reader, kind EventKind) (EventData, error) {
	switch kind {
	case EventKindTreasure:
		itemLot, err := r.Int32()
		if err != nil {
			return nil, err
		}
		action, err := r.Int32()
		if err != nil {
			return nil, err
		}
		pickup, err := r.Int32()
		if err != nil {
			return nil, err
		}
		inChest, err := r.Bool()
		if err != nil {
			return nil, err
		}
		disabled, err := r.Bool()
		if err != nil {
			return nil, err
		}
		return &TreasureData{ItemLotParamID: itemLot, ActionButtonID: action, PickupAnimID: pickup, InChest: inChest, StartDisabled: disabled}, nil
	case EventKindSpawner:
		var d SpawnerData
		var err error
		if d.MaxCount, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.SpawnerType, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.LimitCount, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.MinSpawnerCount, err = r.Int16(); err != nil {
			return nil, err
		}
		if d.MaxSpawnerCount, err = r.Int16(); err != nil {
			return nil, err
		}
		if err = r.AssertPadding(2); err != nil {
			return nil, err
		}
		if d.MinInterval, err = r.Float32(); err != nil {
			return nil, err
		}
		if d.MaxInterval, err = r.Float32(); err != nil {
			return nil, err
		}
		for i := range d.spawnRegionIdx {
			if d.spawnRegionIdx[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		for i := range d.spawnPartIdx {
			if d.spawnPartIdx[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		return &d, nil
	case EventKindObjAct:
		var d ObjActData
		var err error
		if d.ObjActEntityID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.objActPartIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.ObjActParamID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.ObjActStateIdx, err = r.Int8(); err != nil {
			return nil, err
		}
		if err = r.AssertPadding(3); err != nil {
			return nil, err
		}
		if d.ObjActFlag, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case EventKindNavigation:
		return &NavigationData{}, nil
	case EventKindNPCInvasion:
		var d NPCInvasionData
		var err error
		if d.HostEntityID, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.InvasionTime, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.InvasionFlagID, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case EventKindPlatoon:
		var d PlatoonData
		var err error
		if d.PlatoonIDScriptActivate, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.State, err = r.Int32(); err != nil {
			return nil, err
		}
		for i := range d.groupPartsIdx {
			if d.groupPartsIdx[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		return &d, nil
	case EventKindPatrolRoute:
		count, err := r.Int32()
		if err != nil {
			return nil, err
		}
		d := PatrolRouteData{walkRegionIdxs: make([]int32, count)}
		for i := range d.walkRegionIdxs {
			if d.walkRegionIdxs[i], err = r.Int32(); err != nil {
				return nil, err
			}
		}
		d.WalkRegions = make([]RegionReference, count)
		return &d, nil
	case EventKindMount:
		var d MountData
		var err error
		if d.riderIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case EventKindSignPool:
		var d SignPoolData
		var err error
		if d.SignPartIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.SignType, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case EventKindRetryPoint:
		var d RetryPointData
		var err error
		if d.RetryPartIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.RetryRegionIdx, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk14, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case EventKindAreaTeam:
		var d AreaTeamData
		var err error
		if d.Unk00, err = r.Int32(); err != nil {
			return nil, err
		}
		if d.Unk04, err = r.Int32(); err != nil {
			return nil, err
		}
		return &d, nil
	case EventKindOther:
		return &OtherData{}, nil
	default:
		return nil, &FormatError{Field: "EventHeader.eventType", Reason: "unrecognized event kind"}
	}
}

// WireReferences resolves this Event's staged raw indices into live
// references, given the fully-deserialized Part and Region lists for the
// MSB. Called by MSB's second reference-resolution pass, after every Param
// has been deserialized.
func (e *Event) WireReferences(parts []*Part, regions []*Region) {
	e.AttachedPart.SetFromIndex(parts, e.attachedPartIdx)
	e.AttachedRegion.SetFromIndex(regions, e.attachedRegionIdx)

	switch d := e.Data.(type) {
	case *SpawnerData:
		for i, idx := range d.spawnRegionIdx {
			d.SpawnRegions[i].SetFromIndex(regions, idx)
		}
		for i, idx := range d.spawnPartIdx {
			d.SpawnParts[i].SetFromIndex(parts, idx)
		}
	case *PatrolRouteData:
		for i, idx := range d.walkRegionIdxs {
			d.WalkRegions[i].SetFromIndex(regions, idx)
		}
	case *ObjActData:
		d.ObjActPart.SetFromIndex(parts, d.objActPartIdx)
	case *PlatoonData:
		for i, idx := range d.groupPartsIdx {
			d.GroupParts[i].SetFromIndex(parts, idx)
		}
	case *MountData:
		d.RiderPart.SetFromIndex(parts, d.riderIdx)
	}
}

// StageIndices resolves this Event's live references back into raw indices
// ahead of Serialize, the write-time mirror of WireReferences.
func (e *Event) StageIndices(parts []*Part, regions []*Region) {
	e.attachedPartIdx = e.AttachedPart.ToIndex(e.Name, parts)
	e.attachedRegionIdx = e.AttachedRegion.ToIndex(e.Name, regions)

	switch d := e.Data.(type) {
	case *SpawnerData:
		for i := range d.SpawnRegions {
			d.spawnRegionIdx[i] = d.SpawnRegions[i].ToIndex(e.Name, regions)
		}
		for i := range d.SpawnParts {
			d.spawnPartIdx[i] = d.SpawnParts[i].ToIndex(e.Name, parts)
		}
	case *PatrolRouteData:
		for i := range d.WalkRegions {
			d.walkRegionIdxs[i] = d.WalkRegions[i].ToIndex(e.Name, regions)
		}
	case *ObjActData:
		d.objActPartIdx = d.ObjActPart.ToIndex(e.Name, parts)
	case *PlatoonData:
		for i := range d.GroupParts {
			d.groupPartsIdx[i] = d.GroupParts[i].ToIndex(e.Name, parts)
		}
	case *MountData:
		d.riderIdx = d.RiderPart.ToIndex(e.Name, parts)
	}
}

// Serialize writes this Event entry.
func (e *Event) Serialize(w *stream.Writer, supertypeIndex, subtypeIndex int32) error {
	start := w.Pos()
	rv := stream.NewReserver(w, true, start)
	rv.ReserveValidatedStruct("EventHeader", eventHeaderSize)

	nameOffset := w.Pos() - start
	w.WriteUTF16String(e.Name)
	w.Align(4)

	supertypeDataOffset := w.Pos() - start
	w.WriteInt32(e.attachedPartIdx)
	w.WriteInt32(e.attachedRegionIdx)
	for _, b := range e.MapID {
		w.WriteInt8(b)
	}
	w.WritePadding(4)

	var subtypeDataOffset int64
	if e.Data != nil {
		subtypeDataOffset = w.Pos() - start
		serializeEventData(w, e.Data)
	}
	w.Align(8)

	h := eventHeader{
		nameOffset:          nameOffset,
		eventIndex:          supertypeIndex,
		eventType:           int32(e.Kind),
		subtypeIndex:        subtypeIndex,
		eventID:             e.EventID,
		unk1C:               e.Unk1C,
		supertypeDataOffset: supertypeDataOffset,
		subtypeDataOffset:   subtypeDataOffset,
	}
	if err := rv.FillValidatedStruct("EventHeader", func() []byte { return encodeEventHeader(h) }); err != nil {
		return err
	}
	return rv.Finish()
}

func encodeEventHeader(h eventHeader) []byte {
	w := stream.NewWriter()
	w.WriteInt64(h.nameOffset)
	w.WriteInt32(h.eventIndex)
	w.WriteInt32(h.eventType)
	w.WriteInt32(h.subtypeIndex)
	w.WriteUint32(h.eventID)
	w.WriteInt32(h.unk1C)
	w.WriteInt64(h.supertypeDataOffset)
	w.WriteInt64(h.subtypeDataOffset)
	return w.Bytes()
}

func serializeEventData(w *stream.Writer, data EventData) {
	switch d := data.(type) {
	case *TreasureData:
		w.WriteInt32(d.ItemLotParamID)
		w.WriteInt32(d.ActionButtonID)
		w.WriteInt32(d.PickupAnimID)
		w.WriteBool(d.InChest)
		w.WriteBool(d.StartDisabled)
	case *SpawnerData:
		w.WriteInt16(d.MaxCount)
		w.WriteInt16(d.SpawnerType)
		w.WriteInt16(d.LimitCount)
		w.WriteInt16(d.MinSpawnerCount)
		w.WriteInt16(d.MaxSpawnerCount)
		w.WritePadding(2)
		w.WriteFloat32(d.MinInterval)
		w.WriteFloat32(d.MaxInterval)
		for _, idx := range d.spawnRegionIdx {
			w.WriteInt32(idx)
		}
		for _, idx := range d.spawnPartIdx {
			w.WriteInt32(idx)
		}
	case *ObjActData:
		w.WriteInt32(d.ObjActEntityID)
		w.WriteInt32(d.objActPartIdx)
		w.WriteInt32(d.ObjActParamID)
		w.WriteInt8(d.ObjActStateIdx)
		w.WritePadding(3)
		w.WriteInt32(d.ObjActFlag)
	case *NavigationData:
		// No fields.
	case *NPCInvasionData:
		w.WriteInt32(d.HostEntityID)
		w.WriteInt32(d.InvasionTime)
		w.WriteInt32(d.InvasionFlagID)
	case *PlatoonData:
		w.WriteInt32(d.PlatoonIDScriptActivate)
		w.WriteInt32(d.State)
		for _, idx := range d.groupPartsIdx {
			w.WriteInt32(idx)
		}
	case *PatrolRouteData:
		w.WriteInt32(int32(len(d.walkRegionIdxs)))
		for _, idx := range d.walkRegionIdxs {
			w.WriteInt32(idx)
		}
	case *MountData:
		w.WriteInt32(d.riderIdx)
	case *SignPoolData:
		w.WriteInt32(d.SignPartIdx)
		w.WriteInt32(d.SignType)
	case *RetryPointData:
		w.WriteInt32(d.RetryPartIdx)
		w.WriteInt32(d.RetryRegionIdx)
		w.WriteInt32(d.Unk14)
	case *AreaTeamData:
		w.WriteInt32(d.Unk00)
		w.WriteInt32(d.Unk04)
	case *OtherData:
		// No fields.
	}
}
