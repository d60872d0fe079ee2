// Package mysql materializes MySQL tables as datasets for checking.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

type Inspector struct {
	db      *sql.DB
	schema  string
	timeout time.Duration
}

func NewInspector(dsn string, schema string) (*Inspector, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Inspector{
		db:      db,
		schema:  schema,
		timeout: 5 * time.Second,
	}, nil
}

// columnSpec is one INFORMATION_SCHEMA row: the column name and its
// declared type.
type columnSpec struct {
	name     string
	dataType string
}

func (i *Inspector) fetchColumns(ctx context.Context, tableName string) ([]columnSpec, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	rows, err := i.db.QueryContext(ctx, `
		SELECT COLUMN_NAME, DATA_TYPE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`, i.schema, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []columnSpec
	for rows.Next() {
		var c columnSpec
		if err := rows.Scan(&c.name, &c.dataType); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// FetchRowCount reports the source row count of a table directly from the
// server.
func (i *Inspector) FetchRowCount(ctx context.Context, tableName string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", tableName)
	if err := i.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (i *Inspector) Close() error {
	return i.db.Close()
}
