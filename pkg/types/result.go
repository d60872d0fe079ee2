package types

// CheckResult is one evaluated check: which dataset and check produced it,
// the rule verdict, and the runner status (PASS, FAIL or ERROR when the
// check could not be evaluated at all).
type CheckResult struct {
	Dataset string
	Check   string
	Passed  bool
	Message string
	Status  string
}
