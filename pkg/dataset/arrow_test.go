package dataset

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecord(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "active", Type: arrow.FixedWidthTypes.Boolean},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	b.Field(1).(*array.StringBuilder).AppendValues([]string{"alice", "", "carol"}, []bool{true, false, true})
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{1.5, 2.5, 0}, []bool{true, true, false})
	b.Field(3).(*array.BooleanBuilder).AppendValues([]bool{true, false, true}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	tbl, err := FromRecord(rec)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 4, tbl.NumColumns())

	id, err := tbl.Column("id")
	require.NoError(t, err)
	assert.Equal(t, TypeNumeric, id.Type())
	v, err := id.FloatAt(2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	name, err := tbl.Column("name")
	require.NoError(t, err)
	assert.Equal(t, TypeString, name.Type())
	assert.Equal(t, 1, name.NullCount())
	assert.True(t, name.IsNull(1))

	score, err := tbl.Column("score")
	require.NoError(t, err)
	assert.Equal(t, 1, score.NullCount())

	active, err := tbl.Column("active")
	require.NoError(t, err)
	assert.Equal(t, TypeNumeric, active.Type())
	v, err = active.FloatAt(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestFromRecordTimestamp(t *testing.T) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "seen", Type: &arrow.TimestampType{Unit: arrow.Second, TimeZone: "UTC"}},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	b.Field(0).(*array.TimestampBuilder).AppendValues([]arrow.Timestamp{0, 86400}, nil)

	rec := b.NewRecord()
	defer rec.Release()

	tbl, err := FromRecord(rec)
	require.NoError(t, err)

	seen, err := tbl.Column("seen")
	require.NoError(t, err)
	assert.Equal(t, TypeTimestamp, seen.Type())

	ts, err := seen.TimeAt(1)
	require.NoError(t, err)
	assert.True(t, ts.UTC().Equal(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)))
}
