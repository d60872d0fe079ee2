package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Type is the logical type of a column. Every cell in a column shares one
// logical type; nullness is tracked separately per cell.
type Type int

const (
	// TypeNumeric holds float64 values. Integer and boolean inputs are
	// widened to float64 by the loaders (booleans become 0 and 1).
	TypeNumeric Type = iota
	// TypeString holds string values.
	TypeString
	// TypeTimestamp holds time.Time values.
	TypeTimestamp
)

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case TypeNumeric:
		return "numeric"
	case TypeString:
		return "string"
	case TypeTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Column is an immutable, named sequence of values of one logical type.
// A nil validity mask means no cell is null.
type Column struct {
	name  string
	typ   Type
	nums  []float64
	strs  []string
	times []time.Time
	valid []bool
	nulls int
}

// NewNumericColumn builds a numeric column. valid marks non-null cells and
// may be nil when every cell is set; otherwise it must have the same length
// as values.
func NewNumericColumn(name string, values []float64, valid []bool) *Column {
	c := &Column{name: name, typ: TypeNumeric, nums: values}
	c.setValidity(len(values), valid)
	return c
}

// NewStringColumn builds a string column. See NewNumericColumn for the
// validity contract.
func NewStringColumn(name string, values []string, valid []bool) *Column {
	c := &Column{name: name, typ: TypeString, strs: values}
	c.setValidity(len(values), valid)
	return c
}

// NewTimeColumn builds a timestamp column. See NewNumericColumn for the
// validity contract.
func NewTimeColumn(name string, values []time.Time, valid []bool) *Column {
	c := &Column{name: name, typ: TypeTimestamp, times: values}
	c.setValidity(len(values), valid)
	return c
}

func (c *Column) setValidity(n int, valid []bool) {
	if valid == nil {
		return
	}
	if len(valid) != n {
		panic(fmt.Sprintf("dataset: validity mask for column %q has length %d, want %d", c.name, len(valid), n))
	}
	c.valid = valid
	for _, ok := range valid {
		if !ok {
			c.nulls++
		}
	}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the logical type of the column.
func (c *Column) Type() Type { return c.typ }

// Len returns the number of cells, nulls included.
func (c *Column) Len() int {
	switch c.typ {
	case TypeString:
		return len(c.strs)
	case TypeTimestamp:
		return len(c.times)
	default:
		return len(c.nums)
	}
}

// IsNull reports whether the cell at row i is null.
func (c *Column) IsNull(i int) bool {
	return c.valid != nil && !c.valid[i]
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int { return c.nulls }

// FloatAt returns the numeric value at row i. The value of a null cell is
// unspecified; callers should consult IsNull first.
func (c *Column) FloatAt(i int) (float64, error) {
	if c.typ != TypeNumeric {
		return 0, fmt.Errorf("%w: column %q is %s, not numeric", ErrTypeMismatch, c.name, c.typ)
	}
	return c.nums[i], nil
}

// StringAt returns the string value at row i. The value of a null cell is
// unspecified; callers should consult IsNull first.
func (c *Column) StringAt(i int) (string, error) {
	if c.typ != TypeString {
		return "", fmt.Errorf("%w: column %q is %s, not string", ErrTypeMismatch, c.name, c.typ)
	}
	return c.strs[i], nil
}

// TimeAt returns the timestamp value at row i. The value of a null cell is
// unspecified; callers should consult IsNull first.
func (c *Column) TimeAt(i int) (time.Time, error) {
	if c.typ != TypeTimestamp {
		return time.Time{}, fmt.Errorf("%w: column %q is %s, not timestamp", ErrTypeMismatch, c.name, c.typ)
	}
	return c.times[i], nil
}

// Key returns a canonical equality key for the cell at row i. Two cells of
// the same column compare equal exactly when their keys match; all null
// cells share one key.
func (c *Column) Key(i int) string {
	if c.IsNull(i) {
		return "\x00"
	}
	switch c.typ {
	case TypeString:
		// prefixed so no string value can equal the null key
		return "s" + c.strs[i]
	case TypeTimestamp:
		return c.times[i].UTC().Format(time.RFC3339Nano)
	default:
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	}
}
