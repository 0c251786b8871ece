package repltest

import (
	"strings"
	"time"

	"github.com/tinylisp/repl-test-harness/framework/opt"
)

// FailureReason classifies why a test failed. It is empty for a test that passed.
type FailureReason string

const (
	ReasonNone        FailureReason = ""
	ReasonMismatch    FailureReason = "mismatch"
	ReasonUnparseable FailureReason = "unparseable"
	ReasonTimeout     FailureReason = "timeout"
	ReasonProcess     FailureReason = "process"
	ReasonPanic       FailureReason = "panic"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

// OK returns true if every test that ran passed. A run in which every test was skipped, or
// which had no tests at all, is OK.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Total is the number of tests that ran, not counting skipped ones.
func (r Results) Total() int {
	return len(r.Tests)
}

func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures)
}

type TestResult struct {
	TestID   TestID
	Expected string
	Actual   opt.Maybe[string]
	Reason   FailureReason
	Errors   []error
	Duration time.Duration
}

func (r TestResult) Failed() bool {
	return r.Reason != ReasonNone
}

type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// Name returns the last component of the ID, which is the name the test was declared with.
func (t TestID) Name() string {
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}
