package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
)

// LoadTable materializes a table as a dataset. Numeric SQL types load as
// numeric columns, date and time types as timestamps, everything else as
// strings; SQL NULL becomes a null cell. The data query runs on the caller's
// context so large tables are not cut off by the metadata timeout.
func (i *Inspector) LoadTable(ctx context.Context, tableName string) (*dataset.Table, error) {
	specs, err := i.fetchColumns(ctx, tableName)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("table %s not found in schema %s", tableName, i.schema)
	}

	quoted := make([]string, len(specs))
	for j, c := range specs {
		quoted[j] = "`" + c.name + "`"
	}
	query := fmt.Sprintf("SELECT %s FROM `%s`", strings.Join(quoted, ", "), tableName)

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cells := make([][]sql.NullString, len(specs))
	for rows.Next() {
		scan := make([]sql.NullString, len(specs))
		ptrs := make([]any, len(specs))
		for j := range scan {
			ptrs[j] = &scan[j]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for j := range scan {
			cells[j] = append(cells[j], scan[j])
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cols := make([]*dataset.Column, len(specs))
	for j, c := range specs {
		cols[j] = buildColumn(c, cells[j])
	}
	return dataset.New(cols...)
}

// columnType maps an INFORMATION_SCHEMA DATA_TYPE to a dataset logical type.
func columnType(dataType string) dataset.Type {
	switch strings.ToLower(dataType) {
	case "tinyint", "smallint", "mediumint", "int", "integer", "bigint",
		"decimal", "numeric", "float", "double", "year":
		return dataset.TypeNumeric
	case "date", "datetime", "timestamp":
		return dataset.TypeTimestamp
	default:
		return dataset.TypeString
	}
}

func buildColumn(spec columnSpec, cells []sql.NullString) *dataset.Column {
	valid := make([]bool, len(cells))
	allValid := true
	for i, c := range cells {
		valid[i] = c.Valid
		allValid = allValid && c.Valid
	}
	if allValid {
		valid = nil
	}

	switch columnType(spec.dataType) {
	case dataset.TypeNumeric:
		vals := make([]float64, len(cells))
		for i, c := range cells {
			if !c.Valid {
				continue
			}
			vals[i], _ = strconv.ParseFloat(c.String, 64)
		}
		return dataset.NewNumericColumn(spec.name, vals, valid)
	case dataset.TypeTimestamp:
		vals := make([]time.Time, len(cells))
		for i, c := range cells {
			if !c.Valid {
				continue
			}
			vals[i] = parseSQLTime(c.String)
		}
		return dataset.NewTimeColumn(spec.name, vals, valid)
	default:
		vals := make([]string, len(cells))
		for i, c := range cells {
			vals[i] = c.String
		}
		return dataset.NewStringColumn(spec.name, vals, valid)
	}
}

var sqlTimeFormats = []string{"2006-01-02 15:04:05", "2006-01-02"}

func parseSQLTime(s string) time.Time {
	for _, layout := range sqlTimeFormats {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
