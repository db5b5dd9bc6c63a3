// Package msb implements the MapStudio Binary (MSB) map-description
// container format: Model, Event, Region, Route, Layer and Part entries,
// organized into six fixed-order Params under a single file header.
package msb

// referrer is implemented by every *Reference type. An Entry calls
// onReferencedEntryDestroy on each of its referrers when its Destroy method
// is called, so that any reference still pointing at it goes nil instead of
// dangling. This stands in for the C++ original's destructor-driven
// notification, since Go entries have no destructor to hook.
type referrer interface {
	onReferencedEntryDestroy()
}

// Entry is the shared identity and back-reference bookkeeping for every MSB
// entry kind (Model, Event, Region, Route, Part). It is embedded by value in
// each concrete supertype struct rather than used as an interface, since Go
// has no single concrete base type the way the C++ Entry class is one.
type Entry struct {
	Name string

	incoming []referrer
}

// AddReferrer registers r as holding a live reference to this entry. Called
// by Reference.Set; panics if r is already registered, matching the
// original's "duplicate referrer" runtime_error (a logic error in this
// package, not a malformed-file condition).
func (e *Entry) AddReferrer(r referrer) {
	for _, existing := range e.incoming {
		if existing == r {
			panic("msb: referrer already registered")
		}
	}
	e.incoming = append(e.incoming, r)
}

// RemoveReferrer unregisters r. Panics if r was not registered, matching the
// original's "referrer not found" runtime_error.
func (e *Entry) RemoveReferrer(r referrer) {
	for i, existing := range e.incoming {
		if existing == r {
			e.incoming = append(e.incoming[:i], e.incoming[i+1:]...)
			return
		}
	}
	panic("msb: referrer not registered")
}

// Destroy notifies every referrer that this entry is gone (each Reference
// holding it goes nil, without trying to unregister itself) and clears the
// referrer set. No Param type removes entries or calls this on its own; a
// caller that drops an entry from a Param's Entries calls Destroy itself,
// since Go has no destructor to do it automatically.
func (e *Entry) Destroy() {
	for _, r := range e.incoming {
		r.onReferencedEntryDestroy()
	}
	e.incoming = nil
}

// EntityEntry is embedded by entry kinds that carry a map entity ID
// (Region and Part; Model, Route and Event entries do not).
type EntityEntry struct {
	Entry
	EntityID uint32
}
