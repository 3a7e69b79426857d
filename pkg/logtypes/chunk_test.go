package logtypes_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/archetypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/components"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/logtypes"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/testutil"
)

func scalarBatch(t *testing.T, mem memory.Allocator, values ...components.Scalar) loggable.ComponentBatch {
	t.Helper()
	batch, err := loggable.NewComponentBatch(mem, components.ScalarCodec, archetypes.ScalarsDescriptorScalars, values)
	require.NoError(t, err)
	return batch
}

func TestChunkFromBatchesRoundTrip(t *testing.T) {
	mem := testutil.CheckedAllocator(t)

	scalars := scalarBatch(t, mem, 1, 2, 3)
	media, err := loggable.NewComponentBatch(mem, components.MediaTypeCodec,
		archetypes.AssetVideoDescriptorMediaType, []components.MediaType{components.MediaTypeMP4})
	require.NoError(t, err)

	frame := logtypes.NewSequenceTimeline("frame")
	timepoint := logtypes.TimePoint{
		{Timeline: logtypes.LogTimeTimeline(), Value: 1_700_000_000_000_000_000},
		{Timeline: frame, Value: 42},
	}

	chunk, err := logtypes.ChunkFromBatches("world/points", timepoint, []loggable.ComponentBatch{scalars, media})
	require.NoError(t, err)
	scalars.Release()
	media.Release()
	defer chunk.Release()

	assert.Equal(t, 1, chunk.NumRows())
	assert.Equal(t, logtypes.EntityPath("/world/points"), chunk.EntityPath, "paths are normalized")
	require.Len(t, chunk.Timelines, 2)
	assert.Equal(t, "frame", chunk.Timelines[0].Timeline.Name, "timelines are ordered by name")

	rec, err := chunk.ToRecord(mem)
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(1), rec.NumRows())
	assert.Equal(t, int64(5), rec.NumCols())
	assert.Equal(t, logtypes.RowIDColumnName, rec.ColumnName(0))
	assert.True(t, arrow.TypeEqual(&arrow.FixedSizeBinaryType{ByteWidth: 16}, rec.Column(0).DataType()))

	field := rec.Schema().Field(3)
	assert.Equal(t, archetypes.ScalarsDescriptorScalars.String(), field.Name)
	kind, ok := metadataValue(field.Metadata, logtypes.MetadataKind)
	assert.True(t, ok)
	assert.Equal(t, "data", kind)
	archetype, _ := metadataValue(field.Metadata, logtypes.MetadataArchetype)
	assert.Equal(t, string(archetypes.ScalarsName), archetype)

	id, ok := metadataValue(rec.Schema().Metadata(), logtypes.MetadataChunkID)
	assert.True(t, ok)
	assert.Equal(t, chunk.ID.String(), id)

	decoded, err := logtypes.ChunkFromRecord(rec)
	require.NoError(t, err)
	defer decoded.Release()

	assert.Equal(t, chunk.ID, decoded.ID)
	assert.Equal(t, chunk.RowIDs, decoded.RowIDs)
	assert.Equal(t, logtypes.EntityPath("/world/points"), decoded.EntityPath)
	assert.Equal(t, chunk.Timelines, decoded.Timelines)

	columns := decoded.ComponentColumns()
	require.Len(t, columns, 2)
	assert.Equal(t, archetypes.ScalarsDescriptorScalars, columns[0].Descriptor)
	assert.Equal(t, archetypes.AssetVideoDescriptorMediaType, columns[1].Descriptor)

	batches, err := decoded.ComponentBatchesAt(0)
	require.NoError(t, err)
	defer func() {
		for _, b := range batches {
			b.Release()
		}
	}()
	values, err := loggable.DecodeBatch(components.ScalarCodec, batches[0])
	require.NoError(t, err)
	assert.Equal(t, []components.Scalar{1, 2, 3}, values)

	types, err := loggable.DecodeBatch(components.MediaTypeCodec, batches[1])
	require.NoError(t, err)
	assert.Equal(t, []components.MediaType{components.MediaTypeMP4}, types)

	_, err = decoded.ComponentBatchesAt(1)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument))
}

func TestNewChunkFromColumns(t *testing.T) {
	mem := testutil.CheckedAllocator(t)

	batch := scalarBatch(t, mem, 1, 2, 3, 4)
	defer batch.Release()
	column, err := batch.Partitioned([]uint32{1, 0, 3})
	require.NoError(t, err)
	defer column.Release()

	steps := logtypes.TimeColumn{
		Timeline: logtypes.Timeline{Name: "elapsed", Type: logtypes.TimeTypeDuration},
		Times:    []int64{0, 1_000, 2_000},
	}
	chunk, err := logtypes.NewChunk(logtypes.NewEntityPath("plot"), []logtypes.TimeColumn{steps}, []loggable.ComponentColumn{column})
	require.NoError(t, err)
	defer chunk.Release()
	assert.Equal(t, 3, chunk.NumRows())

	rec, err := chunk.ToRecord(mem)
	require.NoError(t, err)
	defer rec.Release()

	decoded, err := logtypes.ChunkFromRecord(rec)
	require.NoError(t, err)
	defer decoded.Release()
	assert.Equal(t, steps, decoded.Timelines[0])
	assert.Equal(t, []uint32{1, 0, 3}, decoded.Components[0].Lengths())

	empty, err := decoded.ComponentBatchesAt(1)
	require.NoError(t, err)
	assert.Equal(t, 0, empty[0].Length())
	empty[0].Release()
}

func TestNewChunkValidation(t *testing.T) {
	mem := testutil.CheckedAllocator(t)

	batch := scalarBatch(t, mem, 1, 2)
	defer batch.Release()
	column, err := loggable.ColumnFromBatch(batch)
	require.NoError(t, err)
	defer column.Release()

	frame := logtypes.NewSequenceTimeline("frame")

	t.Run("row count mismatch", func(t *testing.T) {
		_, err := logtypes.NewChunk("/", []logtypes.TimeColumn{{Timeline: frame, Times: []int64{1}}},
			[]loggable.ComponentColumn{column})
		assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument))
	})

	t.Run("duplicate timeline", func(t *testing.T) {
		tc := logtypes.TimeColumn{Timeline: frame, Times: []int64{1, 2}}
		_, err := logtypes.NewChunk("/", []logtypes.TimeColumn{tc, tc}, nil)
		assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument))
	})

	t.Run("duplicate component", func(t *testing.T) {
		_, err := logtypes.NewChunk("/", nil, []loggable.ComponentColumn{column, column})
		assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidArgument))
	})

	t.Run("nil column", func(t *testing.T) {
		_, err := logtypes.NewChunk("/", nil, []loggable.ComponentColumn{{}})
		assert.True(t, errors.IsType(err, errors.ErrorTypeUnexpectedNullArgument))
	})

	t.Run("no columns", func(t *testing.T) {
		chunk, err := logtypes.NewChunk("/", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, chunk.NumRows())
	})
}

func TestChunkFromRecordRejectsForeignRecords(t *testing.T) {
	_, err := logtypes.ChunkFromRecord(nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeUnexpectedNullArgument))

	chunk, err := logtypes.NewChunk("/", nil, nil)
	require.NoError(t, err)
	rec, err := chunk.ToRecord(nil)
	require.NoError(t, err)
	defer rec.Release()

	stripped := arrow.NewSchema(rec.Schema().Fields(), nil)
	foreign := array.NewRecord(stripped, rec.Columns(), rec.NumRows())
	defer foreign.Release()

	bare, err := logtypes.ChunkFromRecord(foreign)
	assert.Nil(t, bare)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDecode))
}

func metadataValue(md arrow.Metadata, key string) (string, bool) {
	i := md.FindKey(key)
	if i < 0 {
		return "", false
	}
	return md.Values()[i], true
}
