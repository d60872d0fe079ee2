// Package checks implements data-quality checks over tabular datasets: each
// check measures one quality dimension of a table (a metric) and judges the
// measurement against a threshold or invariant (a rule). Checks are grouped
// into families behind the Family interface so an orchestrator can treat
// consistency, completeness and future families uniformly.
package checks

import (
	"errors"

	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
)

var (
	// ErrUnknownCheck reports a check value whose kind the family does not
	// recognize. Dispatch fails immediately; there is no fallback.
	ErrUnknownCheck = errors.New("unknown check type")

	// ErrMissingArgument reports a rule invoked without a parameter it
	// requires, such as a variance ceiling. It is a caller contract
	// violation, not a data failure.
	ErrMissingArgument = errors.New("missing required argument")
)

// Family is the capability every check family provides: compute the raw
// metric for a check, and apply the pass/fail rule built on that metric.
// Both operations are pure functions of their inputs. The table is never
// mutated, so one table may serve concurrent callers.
type Family interface {
	Metrics(t *dataset.Table, c Check) (Metric, error)
	Rules(t *dataset.Table, c Check) (Result, error)
}

// Check is a request for one named check, carrying its check-specific
// arguments. A family receiving a check value it does not implement fails
// with ErrUnknownCheck wrapped with the offending kind.
type Check interface {
	Kind() Kind
}

// Result is a rule verdict. Message describes the observed metric and the
// expectation it was judged against whether or not the rule passed, so the
// text is informative on success too.
type Result struct {
	Passed  bool
	Message string
}
