package msb

import (
	"fmt"
	"log"
)

// ModelReference, EventReference, RegionReference and PartReference are the
// four concrete, non-generic reference wrapper types MSB entries use to
// point at each other. The original C++ explicitly instantiates
// EntryReference<T> for six destination types (Part, Event, Model, Region,
// PatrolRouteEvent, CollisionPart); here PatrolRouteEvent and CollisionPart
// collapse into EventReference and PartReference respectively, since this
// port models every Event/Part subtype as one tagged struct rather than a
// distinct C++ subclass, so there is no separate Go type to reference.
// Callers that need the narrower C++ semantics (a reference that must land
// on a PatrolRoute event, or a Collision part) resolve it against a slice
// holding only entries of that kind — see Part.WireReferences and
// Part.StageIndices.
//
// A zero-value reference holds no target, same as a null EntryReference.
// Logger is package-level rather than per-reference, mirroring the
// original's single global GrimHook::Logging::Error sink.
var Logger = log.Default()

// ModelReference is a non-owning, destruction-safe pointer to a Model entry.
type ModelReference struct{ dest *Model }

// Get returns the referenced Model, or nil.
func (r *ModelReference) Get() *Model { return r.dest }

// Set points the reference at dest, deregistering from any previous target
// first.
func (r *ModelReference) Set(dest *Model) {
	r.Clear()
	r.dest = dest
	if dest != nil {
		dest.AddReferrer(r)
	}
}

// Clear removes the reference, deregistering from its current target.
func (r *ModelReference) Clear() {
	if r.dest != nil {
		r.dest.RemoveReferrer(r)
		r.dest = nil
	}
}

// Clone returns a new reference to the same target, registered
// independently (not a copy of this reference's registration).
func (r *ModelReference) Clone() ModelReference {
	var c ModelReference
	c.Set(r.dest)
	return c
}

func (r *ModelReference) onReferencedEntryDestroy() { r.dest = nil }

// ToIndex resolves the reference to its position in entries, or -1 for a
// null reference or one whose target is absent from entries (logged, not
// errored, matching the original).
func (r *ModelReference) ToIndex(sourceName string, entries []*Model) int32 {
	if r.dest == nil {
		return -1
	}
	for i, e := range entries {
		if e == r.dest {
			return int32(i)
		}
	}
	Logger.Printf("msb: reference from %q targets a Model entry %q absent from its Param", sourceName, r.dest.Name)
	return -1
}

// SetFromIndex resolves index against entries and sets (or clears, for -1).
func (r *ModelReference) SetFromIndex(entries []*Model, index int32) {
	if index == -1 {
		r.Clear()
		return
	}
	r.Set(entries[index])
}

// EventReference is a non-owning, destruction-safe pointer to an Event entry.
type EventReference struct{ dest *Event }

// Get returns the referenced Event, or nil.
func (r *EventReference) Get() *Event { return r.dest }

// Set points the reference at dest, deregistering from any previous target.
func (r *EventReference) Set(dest *Event) {
	r.Clear()
	r.dest = dest
	if dest != nil {
		dest.AddReferrer(r)
	}
}

// Clear removes the reference, deregistering from its current target.
func (r *EventReference) Clear() {
	if r.dest != nil {
		r.dest.RemoveReferrer(r)
		r.dest = nil
	}
}

// Clone returns a new, independently registered reference to the same target.
func (r *EventReference) Clone() EventReference {
	var c EventReference
	c.Set(r.dest)
	return c
}

func (r *EventReference) onReferencedEntryDestroy() { r.dest = nil }

// ToIndex resolves the reference to its position in entries.
func (r *EventReference) ToIndex(sourceName string, entries []*Event) int32 {
	if r.dest == nil {
		return -1
	}
	for i, e := range entries {
		if e == r.dest {
			return int32(i)
		}
	}
	Logger.Printf("msb: reference from %q targets an Event entry %q absent from its Param", sourceName, r.dest.Name)
	return -1
}

// ToIndex16 is ToIndex with a 16-bit result, for fields like
// CharacterPart.PatrolRouteEventIndex. fieldName names the on-disk field in
// the returned error, since the caller's field, not the reference type,
// is what a decoder needs to report. Returns a FormatError rather than
// truncating silently when the target's index would overflow the field.
func (r *EventReference) ToIndex16(sourceName, fieldName string, entries []*Event) (int16, error) {
	if r.dest == nil {
		return -1, nil
	}
	for i, e := range entries {
		if e == r.dest {
			if i > 0x7FFF {
				return 0, &FormatError{Field: fieldName, Reason: fmt.Sprintf(
					"reference from %q targets Event entry %q at index %d, which overflows a 16-bit index field",
					sourceName, r.dest.Name, i)}
			}
			return int16(i), nil
		}
	}
	Logger.Printf("msb: reference from %q targets an Event entry %q absent from its Param", sourceName, r.dest.Name)
	return -1, nil
}

// SetFromIndex resolves index against entries and sets (or clears, for -1).
func (r *EventReference) SetFromIndex(entries []*Event, index int32) {
	if index == -1 {
		r.Clear()
		return
	}
	r.Set(entries[index])
}

// SetFromIndex16 is SetFromIndex for 16-bit index fields.
func (r *EventReference) SetFromIndex16(entries []*Event, index int16) {
	if index == -1 {
		r.Clear()
		return
	}
	r.Set(entries[index])
}

// RegionReference is a non-owning, destruction-safe pointer to a Region
// entry.
type RegionReference struct{ dest *Region }

// Get returns the referenced Region, or nil.
func (r *RegionReference) Get() *Region { return r.dest }

// Set points the reference at dest, deregistering from any previous target.
func (r *RegionReference) Set(dest *Region) {
	r.Clear()
	r.dest = dest
	if dest != nil {
		dest.AddReferrer(r)
	}
}

// Clear removes the reference, deregistering from its current target.
func (r *RegionReference) Clear() {
	if r.dest != nil {
		r.dest.RemoveReferrer(r)
		r.dest = nil
	}
}

// Clone returns a new, independently registered reference to the same target.
func (r *RegionReference) Clone() RegionReference {
	var c RegionReference
	c.Set(r.dest)
	return c
}

func (r *RegionReference) onReferencedEntryDestroy() { r.dest = nil }

// ToIndex resolves the reference to its position in entries.
func (r *RegionReference) ToIndex(sourceName string, entries []*Region) int32 {
	if r.dest == nil {
		return -1
	}
	for i, e := range entries {
		if e == r.dest {
			return int32(i)
		}
	}
	Logger.Printf("msb: reference from %q targets a Region entry %q absent from its Param", sourceName, r.dest.Name)
	return -1
}

// SetFromIndex resolves index against entries and sets (or clears, for -1).
func (r *RegionReference) SetFromIndex(entries []*Region, index int32) {
	if index == -1 {
		r.Clear()
		return
	}
	r.Set(entries[index])
}

// PartReference is a non-owning, destruction-safe pointer to a Part entry.
type PartReference struct{ dest *Part }

// Get returns the referenced Part, or nil.
func (r *PartReference) Get() *Part { return r.dest }

// Set points the reference at dest, deregistering from any previous target.
func (r *PartReference) Set(dest *Part) {
	r.Clear()
	r.dest = dest
	if dest != nil {
		dest.AddReferrer(r)
	}
}

// Clear removes the reference, deregistering from its current target.
func (r *PartReference) Clear() {
	if r.dest != nil {
		r.dest.RemoveReferrer(r)
		r.dest = nil
	}
}

// Clone returns a new, independently registered reference to the same target.
func (r *PartReference) Clone() PartReference {
	var c PartReference
	c.Set(r.dest)
	return c
}

func (r *PartReference) onReferencedEntryDestroy() { r.dest = nil }

// ToIndex resolves the reference to its position in entries.
func (r *PartReference) ToIndex(sourceName string, entries []*Part) int32 {
	if r.dest == nil {
		return -1
	}
	for i, e := range entries {
		if e == r.dest {
			return int32(i)
		}
	}
	Logger.Printf("msb: reference from %q targets a Part entry %q absent from its Param", sourceName, r.dest.Name)
	return -1
}

// ToIndex16 is ToIndex with a 16-bit result, for fields like
// ConnectCollisionPart.CollisionIndex (indexed against the Collision
// subtype's own entries, not the full Part supertype list — callers pass
// the appropriate subtype slice). fieldName names the on-disk field in the
// returned error. Returns a FormatError rather than truncating silently
// when the target's index would overflow the field.
func (r *PartReference) ToIndex16(sourceName, fieldName string, entries []*Part) (int16, error) {
	if r.dest == nil {
		return -1, nil
	}
	for i, e := range entries {
		if e == r.dest {
			if i > 0x7FFF {
				return 0, &FormatError{Field: fieldName, Reason: fmt.Sprintf(
					"reference from %q targets Part entry %q at index %d, which overflows a 16-bit index field",
					sourceName, r.dest.Name, i)}
			}
			return int16(i), nil
		}
	}
	Logger.Printf("msb: reference from %q targets a Part entry %q absent from its Param", sourceName, r.dest.Name)
	return -1, nil
}

// SetFromIndex resolves index against entries and sets (or clears, for -1).
func (r *PartReference) SetFromIndex(entries []*Part, index int32) {
	if index == -1 {
		r.Clear()
		return
	}
	r.Set(entries[index])
}

// SetFromIndex16 is SetFromIndex for 16-bit index fields.
func (r *PartReference) SetFromIndex16(entries []*Part, index int16) {
	if index == -1 {
		r.Clear()
		return
	}
	r.Set(entries[index])
}
