package runner

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexanderjulianmartinez/data-checks/pkg/checks"
	"github.com/alexanderjulianmartinez/data-checks/pkg/dataset"
)

func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.New(
		dataset.NewNumericColumn("id", []float64{1, 2, 2}, nil),
		dataset.NewNumericColumn("value", []float64{10, 20, 30}, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestRunCollectsStatuses(t *testing.T) {
	tbl := testTable(t)
	specs := []Spec{
		{Dataset: "orders", Check: checks.NonZeroRecords{}},
		{Dataset: "orders", Check: checks.UniqueIdentifiers{Column: "id"}},
		{Dataset: "orders", Check: checks.UniqueIdentifiers{Column: "ghost"}},
	}

	rep := Run(checks.Consistency{}, tbl, specs)
	if len(rep.Results) != 3 {
		t.Fatalf("expected 3 results, got %v", rep.Results)
	}

	want := []string{StatusPass, StatusFail, StatusError}
	for i, status := range want {
		if rep.Results[i].Status != status {
			t.Errorf("result %d: status = %q, want %q", i, rep.Results[i].Status, status)
		}
	}

	if rep.Ok() {
		t.Error("expected report not ok")
	}
	if rep.Failed() != 1 || rep.Errors() != 1 {
		t.Errorf("failed = %d, errors = %d, want 1 and 1", rep.Failed(), rep.Errors())
	}

	if rep.Results[0].Check != "non_zero_records" {
		t.Errorf("check name = %q, want non_zero_records", rep.Results[0].Check)
	}
	if !strings.Contains(rep.Results[2].Message, "ghost") {
		t.Errorf("error row should carry the error text, got %q", rep.Results[2].Message)
	}
	if rep.Results[2].Passed {
		t.Error("error row must not be marked passed")
	}
}

func TestRunAllPassing(t *testing.T) {
	tbl := testTable(t)
	rep := Run(checks.Consistency{}, tbl, []Spec{
		{Dataset: "orders", Check: checks.NonZeroRecords{}},
		{Dataset: "orders", Check: checks.UniqueIdentifiers{Column: "value"}},
	})
	if !rep.Ok() {
		t.Fatalf("expected passing report, got %v", rep.Results)
	}
	for _, res := range rep.Results {
		if res.Status != StatusPass || !res.Passed {
			t.Errorf("expected PASS row, got %+v", res)
		}
	}
}

func TestRunUnknownCheck(t *testing.T) {
	tbl := testTable(t)
	rep := Run(checks.Consistency{}, tbl, []Spec{{Dataset: "orders", Check: nil}})
	if rep.Errors() != 1 {
		t.Fatalf("expected 1 error row, got %v", rep.Results)
	}
	if !errorsIsUnknown(rep.Results[0].Message) {
		t.Errorf("expected unknown-check message, got %q", rep.Results[0].Message)
	}
}

func errorsIsUnknown(msg string) bool {
	return strings.Contains(msg, checks.ErrUnknownCheck.Error())
}

func TestStatusFor(t *testing.T) {
	if s := StatusFor(checks.Result{Passed: true}, nil); s != StatusPass {
		t.Errorf("passed result: status = %q", s)
	}
	if s := StatusFor(checks.Result{Passed: false}, nil); s != StatusFail {
		t.Errorf("failed result: status = %q", s)
	}
	if s := StatusFor(checks.Result{Passed: true}, errors.New("boom")); s != StatusError {
		t.Errorf("errored result: status = %q", s)
	}
}
