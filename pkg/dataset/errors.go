package dataset

import "errors"

// Common errors returned by the dataset package.
var (
	// ErrColumnNotFound is returned when a referenced column name does not
	// exist in the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrTypeMismatch is returned when a cell is accessed through the wrong
	// logical type, for example reading a string column as numbers.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrRaggedColumns is returned when a table is built from columns of
	// unequal length.
	ErrRaggedColumns = errors.New("columns have unequal lengths")

	// ErrDuplicateColumn is returned when a table is built with two columns
	// sharing a name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrNoColumns is returned when a table is built without any columns.
	ErrNoColumns = errors.New("table has no columns")
)
