package runner

import "github.com/alexanderjulianmartinez/data-checks/pkg/checks"

// Centralized status rules for evaluated checks:
// - PASS when the rule holds
// - FAIL when the rule is violated
// - ERROR when the check could not be evaluated at all

const (
	StatusPass  = "PASS"
	StatusFail  = "FAIL"
	StatusError = "ERROR"
)

func StatusFor(res checks.Result, err error) string {
	switch {
	case err != nil:
		return StatusError
	case res.Passed:
		return StatusPass
	default:
		return StatusFail
	}
}
