package msb

// LayerKind is the Layer supertype's single, always-unused subtype tag.
// Real MSB files carry a Layer Param with zero entries; the type exists
// only so the Param machinery the other five supertypes share applies
// uniformly to all six.
type LayerKind int32

const LayerKindNone LayerKind = 0

// Layer is an MSB Layer entry. No retail map has ever been observed to
// contain one; the Param exists in every file but is always empty.
type Layer struct {
	Entry

	Kind LayerKind
}
