package checks

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
)

// defaultLookback is the record-count window used when a check does not set
// its own.
const defaultLookback = 30

// Consistency is the check family covering structural and statistical
// consistency of a dataset: identifier uniqueness, schema and column-name
// drift, null presence, value ranges, variance and record-count anomalies.
type Consistency struct{}

// Metrics computes the raw measurement for c. The metric shape is
// check-specific; see Metric for the mapping.
func (Consistency) Metrics(t *dataset.Table, c Check) (Metric, error) {
	switch c := c.(type) {
	case UniqueIdentifiers:
		return metricUniqueIdentifiers(t, c)
	case SchemaConsistency:
		return metricSchemaConsistency(t, c), nil
	case NonNull:
		return metricNonNull(t, c)
	case Threshold:
		return metricThreshold(t, c)
	case DynamicThreshold:
		return metricDynamicThreshold(t, c)
	case Variance:
		return metricVariance(t, c)
	case RecordAnomalies:
		return metricRecordAnomalies(c), nil
	case NonZeroRecords:
		return metricNonZeroRecords(t), nil
	case ColumnNameConsistency:
		return metricColumnNameConsistency(t, c), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, kindOf(c))
	}
}

// Rules judges c against its pass condition, returning the verdict and an
// explanatory message. Rules that need the metric recompute it through the
// same path Metrics takes.
func (Consistency) Rules(t *dataset.Table, c Check) (Result, error) {
	switch c := c.(type) {
	case UniqueIdentifiers:
		return ruleUniqueIdentifiers(t, c)
	case SchemaConsistency:
		return ruleSchemaConsistency(t, c), nil
	case NonNull:
		return ruleNonNull(t, c)
	case Threshold:
		return ruleThreshold(t, c)
	case DynamicThreshold:
		return ruleDynamicThreshold(t, c)
	case Variance:
		return ruleVariance(t, c)
	case RecordAnomalies:
		return ruleRecordAnomalies(c)
	case NonZeroRecords:
		return ruleNonZeroRecords(t), nil
	case ColumnNameConsistency:
		return ruleColumnNameConsistency(t, c), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCheck, kindOf(c))
	}
}

func kindOf(c Check) Kind {
	if c == nil {
		return ""
	}
	return c.Kind()
}

// UniqueIdentifiers counts duplicate values in an identifier column. A row
// is a duplicate when its identifier already occurred in an earlier row, so
// the count is rows minus distinct identifiers. Nulls group together: the
// second null identifier duplicates the first.
type UniqueIdentifiers struct {
	Column string
}

func (UniqueIdentifiers) Kind() Kind { return KindUniqueIdentifiers }

func metricUniqueIdentifiers(t *dataset.Table, c UniqueIdentifiers) (Metric, error) {
	col, err := t.Column(c.Column)
	if err != nil {
		return nil, err
	}
	distinct := make(map[string]struct{}, col.Len())
	for i := 0; i < col.Len(); i++ {
		distinct[col.Key(i)] = struct{}{}
	}
	return Count(col.Len() - len(distinct)), nil
}

func ruleUniqueIdentifiers(t *dataset.Table, c UniqueIdentifiers) (Result, error) {
	m, err := metricUniqueIdentifiers(t, c)
	if err != nil {
		return Result{}, err
	}
	duplicates := m.(Count)
	return Result{
		Passed:  duplicates == 0,
		Message: fmt.Sprintf("%d duplicate identifiers found.", duplicates),
	}, nil
}

// SchemaConsistency reports expected columns missing from the table. The
// comparison is directional: columns present in the table but not in the
// expected list are never flagged.
type SchemaConsistency struct {
	ExpectedColumns []string
}

func (SchemaConsistency) Kind() Kind { return KindSchemaConsistency }

func metricSchemaConsistency(t *dataset.Table, c SchemaConsistency) Metric {
	return missingColumns(t, c.ExpectedColumns)
}

func ruleSchemaConsistency(t *dataset.Table, c SchemaConsistency) Result {
	missing := missingColumns(t, c.ExpectedColumns)
	return Result{
		Passed:  len(missing) == 0,
		Message: fmt.Sprintf("Missing columns: %v", missing),
	}
}

// NonNull measures the null count of each listed column.
type NonNull struct {
	Columns []string
}

func (NonNull) Kind() Kind { return KindNonNull }

func metricNonNull(t *dataset.Table, c NonNull) (Metric, error) {
	counts := make(NullCounts, len(c.Columns))
	for _, name := range c.Columns {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		counts[name] = col.NullCount()
	}
	return counts, nil
}

func ruleNonNull(t *dataset.Table, c NonNull) (Result, error) {
	m, err := metricNonNull(t, c)
	if err != nil {
		return Result{}, err
	}
	counts := m.(NullCounts)
	passed := true
	for _, n := range counts {
		if n > 0 {
			passed = false
			break
		}
	}
	return Result{
		Passed:  passed,
		Message: "Null values found in columns: " + formatOffenders(c.Columns, counts),
	}, nil
}

// Threshold counts values of a numeric column lying strictly below Min or
// strictly above Max. A value equal to a bound is inside the range. Null
// cells are never outliers.
type Threshold struct {
	Column string
	Min    float64
	Max    float64
}

func (Threshold) Kind() Kind { return KindThreshold }

func metricThreshold(t *dataset.Table, c Threshold) (Metric, error) {
	return outlierCount(t, c.Column, c.Min, c.Max)
}

func ruleThreshold(t *dataset.Table, c Threshold) (Result, error) {
	m, err := metricThreshold(t, c)
	if err != nil {
		return Result{}, err
	}
	outliers := m.(Count)
	return Result{
		Passed:  outliers == 0,
		Message: fmt.Sprintf("%d values are outside the range [%v, %v].", outliers, c.Min, c.Max),
	}, nil
}

// DynamicThreshold counts values outside a band derived from a reference
// value: [Reference·(1−Tolerance), Reference·(1+Tolerance)], with the same
// strict-bounds semantics as Threshold.
type DynamicThreshold struct {
	Column    string
	Reference float64
	Tolerance float64
}

func (DynamicThreshold) Kind() Kind { return KindDynamicThreshold }

func metricDynamicThreshold(t *dataset.Table, c DynamicThreshold) (Metric, error) {
	lo := c.Reference * (1 - c.Tolerance)
	hi := c.Reference * (1 + c.Tolerance)
	return outlierCount(t, c.Column, lo, hi)
}

func ruleDynamicThreshold(t *dataset.Table, c DynamicThreshold) (Result, error) {
	m, err := metricDynamicThreshold(t, c)
	if err != nil {
		return Result{}, err
	}
	outliers := m.(Count)
	return Result{
		Passed:  outliers == 0,
		Message: fmt.Sprintf("%d values exceed dynamic thresholds.", outliers),
	}, nil
}

// Variance measures the sample variance of a numeric column. MaxVariance is
// the rule's ceiling; it has no default, so a rule call without it fails
// with ErrMissingArgument. Metrics ignores it.
type Variance struct {
	Column      string
	MaxVariance *float64
}

func (Variance) Kind() Kind { return KindVariance }

func metricVariance(t *dataset.Table, c Variance) (Metric, error) {
	col, err := t.Column(c.Column)
	if err != nil {
		return nil, err
	}
	vals, err := numericValues(col)
	if err != nil {
		return nil, err
	}
	return SampleVariance(sampleVariance(vals)), nil
}

func ruleVariance(t *dataset.Table, c Variance) (Result, error) {
	if c.MaxVariance == nil {
		return Result{}, fmt.Errorf("%w: max_variance", ErrMissingArgument)
	}
	m, err := metricVariance(t, c)
	if err != nil {
		return Result{}, err
	}
	variance := float64(m.(SampleVariance))
	return Result{
		// NaN fails the comparison, so an undersized column fails the rule.
		Passed:  variance <= *c.MaxVariance,
		Message: fmt.Sprintf("Variance (%v) exceeds the maximum allowed (%v).", variance, *c.MaxVariance),
	}, nil
}

// RecordAnomalies measures a historical sequence of record counts instead of
// the table: the metric is the mean and population standard deviation of the
// last Lookback entries (all of them when the sequence is shorter, 30 when
// Lookback is unset). The rule requires CurrentCount and passes when it lies
// within mean ± 3·stddev, inclusive on both bounds.
type RecordAnomalies struct {
	Counts       []float64
	CurrentCount *float64
	Lookback     int
}

func (RecordAnomalies) Kind() Kind { return KindRecordAnomalies }

func metricRecordAnomalies(c RecordAnomalies) Metric {
	window := c.Counts
	lookback := c.Lookback
	if lookback <= 0 {
		lookback = defaultLookback
	}
	if len(window) > lookback {
		window = window[len(window)-lookback:]
	}
	return Baseline{Mean: mean(window), StdDev: popStdDev(window)}
}

func ruleRecordAnomalies(c RecordAnomalies) (Result, error) {
	if c.CurrentCount == nil {
		return Result{}, fmt.Errorf("%w: current_count", ErrMissingArgument)
	}
	base := metricRecordAnomalies(c).(Baseline)
	lower := base.Mean - 3*base.StdDev
	upper := base.Mean + 3*base.StdDev
	current := *c.CurrentCount
	return Result{
		Passed: lower <= current && current <= upper,
		Message: fmt.Sprintf("Record count %v is outside 3 standard deviations [%.2f, %.2f] of the mean.",
			current, lower, upper),
	}, nil
}

// NonZeroRecords measures the row count of the table; the rule passes when
// it is greater than zero.
type NonZeroRecords struct{}

func (NonZeroRecords) Kind() Kind { return KindNonZeroRecords }

func metricNonZeroRecords(t *dataset.Table) Metric {
	return Count(t.NumRows())
}

func ruleNonZeroRecords(t *dataset.Table) Result {
	records := t.NumRows()
	if records == 0 {
		return Result{Passed: false, Message: "No records found in the dataset."}
	}
	return Result{Passed: true, Message: fmt.Sprintf("%d records found in the dataset.", records)}
}

// ColumnNameConsistency reports historical columns missing from the table.
// Like SchemaConsistency it is directional: new columns are never flagged.
type ColumnNameConsistency struct {
	HistoricalColumns []string
}

func (ColumnNameConsistency) Kind() Kind { return KindColumnNameConsistency }

func metricColumnNameConsistency(t *dataset.Table, c ColumnNameConsistency) Metric {
	return missingColumns(t, c.HistoricalColumns)
}

func ruleColumnNameConsistency(t *dataset.Table, c ColumnNameConsistency) Result {
	missing := missingColumns(t, c.HistoricalColumns)
	return Result{
		Passed:  len(missing) == 0,
		Message: fmt.Sprintf("Inconsistent column names: %v", missing),
	}
}

// missingColumns returns the names in want absent from the table, deduped,
// in the order want lists them.
func missingColumns(t *dataset.Table, want []string) ColumnSet {
	var missing ColumnSet
	seen := make(map[string]struct{}, len(want))
	for _, name := range want {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// formatOffenders renders the columns with nonzero null counts as
// {"name": 1, "age": 2}, in the order they were requested.
func formatOffenders(order []string, counts NullCounts) string {
	var b strings.Builder
	b.WriteByte('{')
	seen := make(map[string]struct{}, len(order))
	first := true
	for _, name := range order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if counts[name] == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", name, counts[name])
		first = false
	}
	b.WriteByte('}')
	return b.String()
}

// outlierCount counts non-null values of a numeric column strictly outside
// [lo, hi].
func outlierCount(t *dataset.Table, column string, lo, hi float64) (Metric, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	vals, err := numericValues(col)
	if err != nil {
		return nil, err
	}
	n := 0
	for _, v := range vals {
		if v < lo || v > hi {
			n++
		}
	}
	return Count(n), nil
}

// numericValues collects the non-null values of a numeric column in row
// order.
func numericValues(col *dataset.Column) ([]float64, error) {
	vals := make([]float64, 0, col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		v, err := col.FloatAt(i)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// popStdDev is the population standard deviation (divide by n). NaN on
// empty input.
func popStdDev(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	m := mean(vals)
	ss := 0.0
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(vals)))
}

// sampleVariance divides by n-1 and is NaN with fewer than two values.
func sampleVariance(vals []float64) float64 {
	if len(vals) < 2 {
		return math.NaN()
	}
	m := mean(vals)
	ss := 0.0
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(vals)-1)
}
