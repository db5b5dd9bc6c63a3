package msb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grimrukh/msb-go/stream"
)

func TestCompositeShapeRetypeDestroysSidecarWithoutLeakingReferrers(t *testing.T) {
	children := []*Region{
		{EntityEntry: EntityEntry{Entry: Entry{Name: "r0"}}},
		{EntityEntry: EntityEntry{Entry: Entry{Name: "r1"}}},
		{EntityEntry: EntityEntry{Entry: Entry{Name: "r2"}}},
	}

	reg := &Region{EntityEntry: EntityEntry{Entry: Entry{Name: "composite"}}}
	reg.SetShapeType(ShapeComposite)
	reg.CompositeChildren[0].Region.Set(children[0])
	reg.CompositeChildren[2].Region.Set(children[1])
	reg.CompositeChildren[5].Region.Set(children[2])

	for _, c := range children {
		assert.Len(t, c.incoming, 1)
	}

	// Re-typing away from Composite must clear every child reference,
	// deregistering from each target.
	reg.SetShapeType(ShapeSphere)

	for _, c := range children {
		assert.Empty(t, c.incoming)
	}
	for i := range reg.CompositeChildren {
		assert.Nil(t, reg.CompositeChildren[i].Region.Get())
	}
	assert.Equal(t, ShapeSphere, reg.Shape.Type)
}

func TestCompositeShapeRoundTripPreservesPopulatedSlotsOnly(t *testing.T) {
	regions := make([]*Region, 4)
	for i := range regions {
		regions[i] = &Region{EntityEntry: EntityEntry{Entry: Entry{Name: "r"}}, Kind: RegionKindOther, Shape: Shape{Type: ShapePoint}}
	}

	composite := &Region{
		EntityEntry: EntityEntry{Entry: Entry{Name: "composite"}},
		Kind:        RegionKindOther,
	}
	composite.SetShapeType(ShapeComposite)
	composite.CompositeChildren[0].Region.Set(regions[0])
	composite.CompositeChildren[2].Region.Set(regions[1])
	composite.CompositeChildren[5].Region.Set(regions[2])

	all := append(append([]*Region{}, regions...), composite)
	composite.StageIndices(nil, all)

	w := stream.NewWriter()
	require.NoError(t, composite.Serialize(w, 0, 0))

	r := stream.NewReader(w.Bytes())
	readBack, err := DeserializeRegion(r, 0, RegionKindOther)
	require.NoError(t, err)
	readBack.WireReferences(nil, all)

	for i, cc := range readBack.CompositeChildren {
		switch i {
		case 0, 2, 5:
			assert.NotNil(t, cc.Region.Get(), "slot %d", i)
		default:
			assert.Nil(t, cc.Region.Get(), "slot %d", i)
		}
	}
}
