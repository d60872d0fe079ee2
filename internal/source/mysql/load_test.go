package mysql

import (
	"database/sql"
	"testing"

	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
)

func TestColumnType(t *testing.T) {
	tests := []struct {
		dataType string
		want     dataset.Type
	}{
		{"int", dataset.TypeNumeric},
		{"INT", dataset.TypeNumeric},
		{"bigint", dataset.TypeNumeric},
		{"decimal", dataset.TypeNumeric},
		{"double", dataset.TypeNumeric},
		{"year", dataset.TypeNumeric},
		{"date", dataset.TypeTimestamp},
		{"datetime", dataset.TypeTimestamp},
		{"timestamp", dataset.TypeTimestamp},
		{"varchar", dataset.TypeString},
		{"text", dataset.TypeString},
		{"json", dataset.TypeString},
	}
	for _, tt := range tests {
		if got := columnType(tt.dataType); got != tt.want {
			t.Errorf("columnType(%q) = %v, want %v", tt.dataType, got, tt.want)
		}
	}
}

func TestBuildColumn(t *testing.T) {
	t.Run("numeric with null", func(t *testing.T) {
		col := buildColumn(columnSpec{name: "amount", dataType: "decimal"}, []sql.NullString{
			{String: "12.5", Valid: true},
			{Valid: false},
			{String: "3", Valid: true},
		})
		if col.Type() != dataset.TypeNumeric {
			t.Fatalf("type = %v, want numeric", col.Type())
		}
		if col.NullCount() != 1 || !col.IsNull(1) {
			t.Errorf("null cell not carried over")
		}
		v, err := col.FloatAt(0)
		if err != nil || v != 12.5 {
			t.Errorf("FloatAt(0) = %v, %v", v, err)
		}
	})

	t.Run("datetime", func(t *testing.T) {
		col := buildColumn(columnSpec{name: "created_at", dataType: "datetime"}, []sql.NullString{
			{String: "2024-03-01 10:30:00", Valid: true},
		})
		ts, err := col.TimeAt(0)
		if err != nil {
			t.Fatal(err)
		}
		if ts.Hour() != 10 || ts.Minute() != 30 {
			t.Errorf("unexpected timestamp %v", ts)
		}
	})

	t.Run("string passthrough", func(t *testing.T) {
		col := buildColumn(columnSpec{name: "status", dataType: "varchar"}, []sql.NullString{
			{String: "shipped", Valid: true},
		})
		s, err := col.StringAt(0)
		if err != nil || s != "shipped" {
			t.Errorf("StringAt(0) = %q, %v", s, err)
		}
	})
}
