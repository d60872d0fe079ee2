package dataset

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// FromRecord converts an Arrow record batch into a Table. Integer, float
// and boolean columns become numeric, string columns stay strings, and
// timestamp and date columns become timestamps. Arrow nulls stay nulls.
func FromRecord(rec arrow.Record) (*Table, error) {
	cols := make([]*Column, int(rec.NumCols()))
	for i := range cols {
		name := rec.Schema().Field(i).Name
		col, err := fromArrowChunks(name, []arrow.Array{rec.Column(i)})
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return New(cols...)
}

// FromArrowTable converts a chunked Arrow table into a Table.
func FromArrowTable(tbl arrow.Table) (*Table, error) {
	cols := make([]*Column, int(tbl.NumCols()))
	for i := range cols {
		name := tbl.Schema().Field(i).Name
		col, err := fromArrowChunks(name, tbl.Column(i).Data().Chunks())
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return New(cols...)
}

// ReadParquetFile loads a Parquet file through the Arrow reader.
func ReadParquetFile(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("create arrow reader: %w", err)
	}

	tbl, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parquet data: %w", err)
	}
	defer tbl.Release()

	return FromArrowTable(tbl)
}

func fromArrowChunks(name string, chunks []arrow.Array) (*Column, error) {
	total := 0
	for _, chunk := range chunks {
		total += chunk.Len()
	}
	var dt arrow.DataType = arrow.BinaryTypes.String
	if len(chunks) > 0 {
		dt = chunks[0].DataType()
	}

	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64, arrow.BOOL:
		vals := make([]float64, 0, total)
		valid := make([]bool, 0, total)
		for _, chunk := range chunks {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					vals = append(vals, 0)
					valid = append(valid, false)
					continue
				}
				v, err := numericValue(chunk, i)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", name, err)
				}
				vals = append(vals, v)
				valid = append(valid, true)
			}
		}
		return NewNumericColumn(name, vals, valid), nil

	case arrow.STRING, arrow.LARGE_STRING:
		vals := make([]string, 0, total)
		valid := make([]bool, 0, total)
		for _, chunk := range chunks {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					vals = append(vals, "")
					valid = append(valid, false)
					continue
				}
				v, err := stringValue(chunk, i)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", name, err)
				}
				vals = append(vals, v)
				valid = append(valid, true)
			}
		}
		return NewStringColumn(name, vals, valid), nil

	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		vals := make([]time.Time, 0, total)
		valid := make([]bool, 0, total)
		for _, chunk := range chunks {
			for i := 0; i < chunk.Len(); i++ {
				if chunk.IsNull(i) {
					vals = append(vals, time.Time{})
					valid = append(valid, false)
					continue
				}
				v, err := timeValue(chunk, i)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", name, err)
				}
				vals = append(vals, v)
				valid = append(valid, true)
			}
		}
		return NewTimeColumn(name, vals, valid), nil
	}

	return nil, fmt.Errorf("%w: column %q has unsupported arrow type %s", ErrTypeMismatch, name, dt)
}

func numericValue(arr arrow.Array, i int) (float64, error) {
	switch a := arr.(type) {
	case *array.Int8:
		return float64(a.Value(i)), nil
	case *array.Int16:
		return float64(a.Value(i)), nil
	case *array.Int32:
		return float64(a.Value(i)), nil
	case *array.Int64:
		return float64(a.Value(i)), nil
	case *array.Uint8:
		return float64(a.Value(i)), nil
	case *array.Uint16:
		return float64(a.Value(i)), nil
	case *array.Uint32:
		return float64(a.Value(i)), nil
	case *array.Uint64:
		return float64(a.Value(i)), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.Boolean:
		if a.Value(i) {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: arrow type %s is not numeric", ErrTypeMismatch, arr.DataType())
}

func stringValue(arr arrow.Array, i int) (string, error) {
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	}
	return "", fmt.Errorf("%w: arrow type %s is not a string", ErrTypeMismatch, arr.DataType())
}

func timeValue(arr arrow.Array, i int) (time.Time, error) {
	switch a := arr.(type) {
	case *array.Timestamp:
		typ := a.DataType().(*arrow.TimestampType)
		return a.Value(i).ToTime(typ.Unit), nil
	case *array.Date32:
		return a.Value(i).ToTime(), nil
	case *array.Date64:
		return a.Value(i).ToTime(), nil
	}
	return time.Time{}, fmt.Errorf("%w: arrow type %s is not a timestamp", ErrTypeMismatch, arr.DataType())
}
