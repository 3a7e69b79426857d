package logtypes

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"

	"github.com/ajitpratap0/rerun-sdk-go/pkg/errors"
	"github.com/ajitpratap0/rerun-sdk-go/pkg/loggable"
)

// Arrow metadata keys written on chunk records.
const (
	MetadataChunkID        = "rerun.id"
	MetadataEntityPath     = "rerun.entity_path"
	MetadataKind           = "rerun.kind"
	MetadataArchetype      = "rerun.archetype"
	MetadataArchetypeField = "rerun.archetype_field"
	MetadataComponent      = "rerun.component"
)

// Column kinds stored under MetadataKind.
const (
	columnKindControl = "control"
	columnKindIndex   = "index"
	columnKindData    = "data"
)

// RowIDColumnName is the name of the control column holding row ids.
const RowIDColumnName = "rerun.controls.RowId"

var rowIDType = &arrow.FixedSizeBinaryType{ByteWidth: 16}

// Chunk is a batch of rows for one entity: a row id per row, any number of
// time columns, and component columns whose run i belongs to row i.
type Chunk struct {
	ID         uuid.UUID
	EntityPath EntityPath
	RowIDs     []uuid.UUID
	Timelines  []TimeColumn
	Components []loggable.ComponentColumn
}

// NewChunk validates the columns and assigns a chunk id and row ids. Every
// time and component column must have the same number of rows. The chunk
// takes its own reference to each component array; the caller keeps theirs.
func NewChunk(entityPath EntityPath, timelines []TimeColumn, components []loggable.ComponentColumn) (*Chunk, error) {
	rows, err := validateColumns(timelines, components)
	if err != nil {
		return nil, err
	}

	rowIDs := make([]uuid.UUID, rows)
	for i := range rowIDs {
		rowIDs[i] = newRowID()
	}

	for _, c := range components {
		c.Array.Retain()
	}

	return &Chunk{
		ID:         newRowID(),
		EntityPath: ParseEntityPath(string(entityPath)),
		RowIDs:     rowIDs,
		Timelines:  timelines,
		Components: components,
	}, nil
}

// ChunkFromBatches builds a single-row chunk logged at timepoint, the way a
// single log call of an archetype is recorded.
func ChunkFromBatches(entityPath EntityPath, timepoint TimePoint, batches []loggable.ComponentBatch) (*Chunk, error) {
	timelines := make([]TimeColumn, 0, len(timepoint))
	for _, cell := range timepoint.sorted() {
		timelines = append(timelines, TimeColumn{Timeline: cell.Timeline, Times: []int64{cell.Value}})
	}

	columns := make([]loggable.ComponentColumn, 0, len(batches))
	defer func() {
		for _, c := range columns {
			c.Release()
		}
	}()
	for _, b := range batches {
		c, err := b.Partitioned([]uint32{uint32(b.Length())})
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}

	return NewChunk(entityPath, timelines, columns)
}

func validateColumns(timelines []TimeColumn, components []loggable.ComponentColumn) (int, error) {
	rows := -1
	check := func(name string, n int) error {
		if rows < 0 {
			rows = n
			return nil
		}
		if n != rows {
			return errors.Newf(errors.ErrorTypeInvalidArgument,
				"column %s has %d rows, expected %d", name, n, rows)
		}
		return nil
	}

	names := make(map[string]struct{}, len(timelines))
	for _, tc := range timelines {
		if _, dup := names[tc.Timeline.Name]; dup {
			return 0, errors.Newf(errors.ErrorTypeInvalidArgument, "duplicate timeline %q", tc.Timeline.Name)
		}
		names[tc.Timeline.Name] = struct{}{}
		if _, err := tc.Timeline.Type.ArrowDataType(); err != nil {
			return 0, err
		}
		if err := check(tc.Timeline.Name, tc.Len()); err != nil {
			return 0, err
		}
	}

	seen := make(map[uint64]struct{}, len(components))
	for _, c := range components {
		if c.Array == nil {
			return 0, errors.New(errors.ErrorTypeUnexpectedNullArgument, "component column has no array").
				WithDetail("component", c.Descriptor.String())
		}
		h := c.Descriptor.Hash()
		if _, dup := seen[h]; dup {
			return 0, errors.Newf(errors.ErrorTypeInvalidArgument, "duplicate component column %s", c.Descriptor)
		}
		seen[h] = struct{}{}
		if err := check(c.Descriptor.String(), c.Length()); err != nil {
			return 0, err
		}
	}

	if rows < 0 {
		rows = 0
	}
	return rows, nil
}

// NumRows is the number of rows in the chunk.
func (c *Chunk) NumRows() int {
	return len(c.RowIDs)
}

// ComponentColumns returns the chunk's component columns. They remain owned
// by the chunk.
func (c *Chunk) ComponentColumns() []loggable.ComponentColumn {
	return c.Components
}

// ComponentBatchesAt returns every component's instances at row. The caller
// owns the returned batches.
func (c *Chunk) ComponentBatchesAt(row int) ([]loggable.ComponentBatch, error) {
	if row < 0 || row >= c.NumRows() {
		return nil, errors.Newf(errors.ErrorTypeInvalidArgument, "row %d out of range [0, %d)", row, c.NumRows())
	}
	batches := make([]loggable.ComponentBatch, len(c.Components))
	for i, col := range c.Components {
		batches[i] = col.Run(row)
	}
	return batches, nil
}

// Release drops the chunk's references to its component arrays.
func (c *Chunk) Release() {
	for _, col := range c.Components {
		col.Release()
	}
	c.Components = nil
}

// ToRecord lays the chunk out as an Arrow record: the row id column, then
// the time columns, then the component columns.
func (c *Chunk) ToRecord(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = loggable.DefaultAllocator
	}

	fields := make([]arrow.Field, 0, 1+len(c.Timelines)+len(c.Components))
	cols := make([]arrow.Array, 0, cap(fields))
	owned := make([]arrow.Array, 0, 1+len(c.Timelines))
	defer func() {
		for _, a := range owned {
			a.Release()
		}
	}()

	rowIDs := array.NewFixedSizeBinaryBuilder(mem, rowIDType)
	defer rowIDs.Release()
	for _, id := range c.RowIDs {
		rowIDs.Append(id[:])
	}
	rowIDArr := rowIDs.NewArray()
	owned = append(owned, rowIDArr)
	fields = append(fields, arrow.Field{
		Name:     RowIDColumnName,
		Type:     rowIDType,
		Metadata: arrow.NewMetadata([]string{MetadataKind}, []string{columnKindControl}),
	})
	cols = append(cols, rowIDArr)

	for _, tc := range c.Timelines {
		arr, err := tc.toArrow(mem)
		if err != nil {
			return nil, err
		}
		owned = append(owned, arr)
		fields = append(fields, arrow.Field{
			Name:     tc.Timeline.Name,
			Type:     arr.DataType(),
			Metadata: arrow.NewMetadata([]string{MetadataKind}, []string{columnKindIndex}),
		})
		cols = append(cols, arr)
	}

	for _, col := range c.Components {
		fields = append(fields, arrow.Field{
			Name:     col.Descriptor.String(),
			Type:     col.Array.DataType(),
			Nullable: true,
			Metadata: descriptorMetadata(col.Descriptor),
		})
		cols = append(cols, col.Array)
	}

	md := arrow.NewMetadata(
		[]string{MetadataChunkID, MetadataEntityPath},
		[]string{c.ID.String(), c.EntityPath.String()},
	)
	schema := arrow.NewSchema(fields, &md)
	return array.NewRecord(schema, cols, int64(c.NumRows())), nil
}

// ToArrowMsg wraps the chunk's record in a message for storeID.
func (c *Chunk) ToArrowMsg(storeID StoreID, mem memory.Allocator) (*ArrowMsg, error) {
	rec, err := c.ToRecord(mem)
	if err != nil {
		return nil, err
	}
	return &ArrowMsg{StoreID: storeID, ChunkID: c.ID, Batch: rec}, nil
}

func descriptorMetadata(d loggable.ComponentDescriptor) arrow.Metadata {
	keys := []string{MetadataKind, MetadataComponent}
	values := []string{columnKindData, string(d.ComponentType)}
	if d.ArchetypeName != "" {
		keys = append(keys, MetadataArchetype)
		values = append(values, string(d.ArchetypeName))
	}
	if d.ArchetypeFieldName != "" {
		keys = append(keys, MetadataArchetypeField)
		values = append(values, string(d.ArchetypeFieldName))
	}
	return arrow.NewMetadata(keys, values)
}

// ChunkFromRecord recovers a chunk from a record written by ToRecord. The
// chunk takes its own references to the record's component arrays.
func ChunkFromRecord(rec arrow.Record) (*Chunk, error) {
	if rec == nil {
		return nil, errors.New(errors.ErrorTypeUnexpectedNullArgument, "nil record")
	}
	schema := rec.Schema()
	md := schema.Metadata()

	rawID, ok := metadataValue(md, MetadataChunkID)
	if !ok {
		return nil, errors.New(errors.ErrorTypeDecode, "record has no chunk id")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeDecode, "invalid chunk id").WithDetail("id", rawID)
	}
	path, _ := metadataValue(md, MetadataEntityPath)

	chunk := &Chunk{ID: id, EntityPath: ParseEntityPath(path)}
	haveRowIDs := false
	for i, f := range schema.Fields() {
		col := rec.Column(i)
		kind, _ := metadataValue(f.Metadata, MetadataKind)
		switch kind {
		case columnKindControl:
			if f.Name != RowIDColumnName {
				continue
			}
			chunk.RowIDs, err = rowIDsFromArrow(col)
			if err != nil {
				chunk.Release()
				return nil, err
			}
			haveRowIDs = true
		case columnKindIndex:
			tc, err := timeColumnFromArrow(f.Name, col)
			if err != nil {
				chunk.Release()
				return nil, err
			}
			chunk.Timelines = append(chunk.Timelines, tc)
		case columnKindData:
			list, ok := col.(*array.List)
			if !ok {
				chunk.Release()
				return nil, errors.Newf(errors.ErrorTypeDecode,
					"component column %q is %s, not a list", f.Name, col.DataType())
			}
			list.Retain()
			chunk.Components = append(chunk.Components, loggable.ComponentColumn{
				Array:      list,
				Descriptor: descriptorFromMetadata(f.Metadata),
			})
		default:
			chunk.Release()
			return nil, errors.Newf(errors.ErrorTypeDecode, "column %q has unknown kind %q", f.Name, kind)
		}
	}

	if !haveRowIDs {
		chunk.Release()
		return nil, errors.New(errors.ErrorTypeDecode, "record has no row id column")
	}
	return chunk, nil
}

func rowIDsFromArrow(arr arrow.Array) ([]uuid.UUID, error) {
	fsb, ok := arr.(*array.FixedSizeBinary)
	if !ok || !arrow.TypeEqual(arr.DataType(), rowIDType) {
		return nil, errors.Newf(errors.ErrorTypeDecode, "row id column has type %s", arr.DataType())
	}
	ids := make([]uuid.UUID, fsb.Len())
	for i := range ids {
		copy(ids[i][:], fsb.Value(i))
	}
	return ids, nil
}

func descriptorFromMetadata(md arrow.Metadata) loggable.ComponentDescriptor {
	component, _ := metadataValue(md, MetadataComponent)
	archetype, _ := metadataValue(md, MetadataArchetype)
	field, _ := metadataValue(md, MetadataArchetypeField)
	return loggable.ComponentDescriptor{
		ArchetypeName:      loggable.ArchetypeName(archetype),
		ArchetypeFieldName: loggable.ArchetypeFieldName(field),
		ComponentType:      loggable.ComponentType(component),
	}
}

func metadataValue(md arrow.Metadata, key string) (string, bool) {
	i := md.FindKey(key)
	if i < 0 {
		return "", false
	}
	return md.Values()[i], true
}
