package checks

// Metric is the measurement half of a check. The concrete shape differs per
// check, so Metric is a sealed sum over the five result shapes below and
// callers type-switch on it. Which check yields which variant is fixed:
// counts come from unique_identifiers, threshold, dynamic_threshold and
// non_zero_records; column sets from schema_consistency and
// column_name_consistency; null mappings from non_null; the variance and
// baseline variants from their namesake checks.
type Metric interface {
	isMetric()
}

// Count is a non-negative number of rows or values.
type Count int

func (Count) isMetric() {}

// ColumnSet is a set of column names, kept in the order of the reference
// list it was computed from.
type ColumnSet []string

func (ColumnSet) isMetric() {}

// NullCounts maps each requested column to its null count.
type NullCounts map[string]int

func (NullCounts) isMetric() {}

// SampleVariance is the sample variance of a column. It is NaN when the
// column holds fewer than two usable values.
type SampleVariance float64

func (SampleVariance) isMetric() {}

// Baseline is the mean and population standard deviation of a historical
// record-count window. Both are NaN when the window is empty.
type Baseline struct {
	Mean   float64
	StdDev float64
}

func (Baseline) isMetric() {}
