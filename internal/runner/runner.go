// Package runner evaluates configured checks against datasets and collects
// the outcomes into a report.
package runner

import (
	"github.com/alexanderjulianmartinez/data-checks/pkg/checks"
	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
	"github.com/alexanderjulianmartinez/data-checks/pkg/types"
)

// Spec is one scheduled check: the dataset it runs against and the check
// itself.
type Spec struct {
	Dataset string
	Check   checks.Check
}

type Report struct {
	Results []types.CheckResult
}

// Run evaluates each spec against the table. Every dispatch call can fail;
// a check that cannot be evaluated does not abort the run but becomes an
// ERROR row carrying the error text.
func Run(fam checks.Family, tbl *dataset.Table, specs []Spec) *Report {
	report := &Report{}
	for _, spec := range specs {
		res, err := fam.Rules(tbl, spec.Check)

		row := types.CheckResult{
			Dataset: spec.Dataset,
			Check:   checkName(spec.Check),
			Status:  StatusFor(res, err),
		}
		if err != nil {
			row.Message = err.Error()
		} else {
			row.Passed = res.Passed
			row.Message = res.Message
		}
		report.Results = append(report.Results, row)
	}
	return report
}

func checkName(c checks.Check) string {
	if c == nil {
		return ""
	}
	return string(c.Kind())
}

// Failed counts rule violations.
func (r *Report) Failed() int {
	return r.countStatus(StatusFail)
}

// Errors counts checks that could not be evaluated.
func (r *Report) Errors() int {
	return r.countStatus(StatusError)
}

// Ok reports whether every check passed.
func (r *Report) Ok() bool {
	return r.Failed() == 0 && r.Errors() == 0
}

func (r *Report) countStatus(status string) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
