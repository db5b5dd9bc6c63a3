package msb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Grimrukh/msb-go/stream"
)

func emptyMSB() *MSB {
	return &MSB{
		Models:  &ModelParam{},
		Events:  &EventParam{},
		Regions: &RegionParam{},
		Routes:  &RouteParam{},
		Layers:  &LayerParam{},
		Parts:   &PartParam{},
	}
}

func TestEmptyMSBRoundTrip(t *testing.T) {
	buf, err := emptyMSB().Write()
	require.NoError(t, err)

	require.True(t, len(buf) >= 16)
	assert.Equal(t, []byte{
		'M', 'S', 'B', ' ',
		0x01, 0x00, 0x00, 0x00,
		0x10, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x01, 0xFF,
	}, buf[:16])

	m, err := Read(buf)
	require.NoError(t, err)
	assert.Empty(t, m.Models.Entries)
	assert.Empty(t, m.Events.Entries)
	assert.Empty(t, m.Regions.Entries)
	assert.Empty(t, m.Routes.Entries)
	assert.Empty(t, m.Layers.Entries)
	assert.Empty(t, m.Parts.Entries)
}

func TestRenamePropagationDoesNotBreakReference(t *testing.T) {
	model := &Model{Entry: Entry{Name: "m000000"}, Kind: ModelKindMapPiece}
	part := &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "p000000"}}, Kind: PartKindMapPiece, Data: &MapPiecePartData{}}
	part.Model.Set(model)

	model.Name = "m999999"

	assert.Same(t, model, part.Model.Get())
	assert.Equal(t, "m999999", part.Model.Get().Name)
}

func TestDeleteThenSerializeClearsSpawnerSlot(t *testing.T) {
	c := &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "c000000"}}, Kind: PartKindCharacter, Data: &CharacterPartData{}}

	ev := &Event{Entry: Entry{Name: "spawner_000"}, Kind: EventKindSpawner, Data: &SpawnerData{}}
	spawner := ev.Data.(*SpawnerData)
	spawner.SpawnParts[3].Set(c)

	c.Destroy()
	assert.Nil(t, spawner.SpawnParts[3].Get())

	parts := []*Part{}
	regions := []*Region{}
	ev.StageIndices(parts, regions)
	assert.EqualValues(t, -1, spawner.spawnPartIdx[3])

	w := stream.NewWriter()
	require.NoError(t, ev.Serialize(w, 0, 0))

	r := stream.NewReader(w.Bytes())
	readBack, err := DeserializeEvent(r, 0, EventKindSpawner)
	require.NoError(t, err)
	readBack.WireReferences(parts, regions)

	readSpawner := readBack.Data.(*SpawnerData)
	assert.Nil(t, readSpawner.SpawnParts[3].Get())
}

func TestModelInstanceCountRecomputedOnWrite(t *testing.T) {
	m := emptyMSB()

	modelM := &Model{Entry: Entry{Name: "m000000"}, Kind: ModelKindMapPiece}
	modelN := &Model{Entry: Entry{Name: "m000001"}, Kind: ModelKindMapPiece}
	m.Models.Entries = []*Model{modelM, modelN}

	for i := 0; i < 4; i++ {
		p := &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "p"}}, Kind: PartKindMapPiece, Data: &MapPiecePartData{}}
		p.Model.Set(modelM)
		m.Parts.Entries = append(m.Parts.Entries, p)
	}
	pn := &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "pn"}}, Kind: PartKindMapPiece, Data: &MapPiecePartData{}}
	pn.Model.Set(modelN)
	m.Parts.Entries = append(m.Parts.Entries, pn)

	for i := 0; i < 2; i++ {
		p := &Part{EntityEntry: EntityEntry{Entry: Entry{Name: "pu"}}, Kind: PartKindMapPiece, Data: &MapPiecePartData{}}
		m.Parts.Entries = append(m.Parts.Entries, p)
	}

	buf, err := m.Write()
	require.NoError(t, err)
	assert.EqualValues(t, 4, modelM.InstanceCount)
	assert.EqualValues(t, 1, modelN.InstanceCount)

	reread, err := Read(buf)
	require.NoError(t, err)
	require.Len(t, reread.Models.Entries, 2)
	assert.EqualValues(t, 4, reread.Models.Entries[0].InstanceCount)
	assert.EqualValues(t, 1, reread.Models.Entries[1].InstanceCount)
}

func TestReadRejectsCorruptedSignature(t *testing.T) {
	buf, err := emptyMSB().Write()
	require.NoError(t, err)

	buf[0] = 'X'

	_, err = Read(buf)
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Field, "signature")
}
