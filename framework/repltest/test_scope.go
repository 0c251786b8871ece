package repltest

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/tinylisp/repl-test-harness/framework"
	"github.com/tinylisp/repl-test-harness/framework/opt"
)

type environment struct {
	config  TestConfiguration
	results Results
}

// T represents a test scope. It is very similar to Go's testing.T type.
type T struct {
	env         *environment
	id          TestID
	root        bool
	debugLogger framework.CapturingLogger
	failed      bool
	reason      FailureReason
	expected    string
	actual      opt.Maybe[string]
	errors      []error
}

// TestConfiguration contains options for the entire test run.
type TestConfiguration struct {
	// Filter is an optional filter for determining which tests to run based on their names.
	Filter Filter

	// TestLogger receives status information about each test.
	TestLogger TestLogger

	// DebugLogger, if set, receives a copy of everything written to the debug output of each test
	// as it happens, rather than only at the end of the test.
	DebugLogger framework.Logger

	// Context is an optional value of any type defined by the application which can be accessed from tests.
	Context interface{}
}

// Run starts a top-level test scope. The top-level scope itself is not reported as a test unless
// it fails outside of any subtest.
func Run(
	config TestConfiguration,
	action func(*T),
) Results {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	env := &environment{
		config: config,
	}
	t := &T{env: env, root: true}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) (result TestResult) {
	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.fail(ReasonPanic, fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack())))
		}
		result = t.result(time.Since(startTime))
		if t.root && !t.failed {
			return
		}
		t.env.results.Tests = append(t.env.results.Tests, result)
		if t.failed {
			t.env.results.Failures = append(t.env.results.Failures, result)
		}
	}()

	action(t)
	return result
}

func (t *T) result(duration time.Duration) TestResult {
	return TestResult{
		TestID:   t.id,
		Expected: t.expected,
		Actual:   t.actual,
		Reason:   t.reason,
		Errors:   t.errors,
		Duration: duration,
	}
}

// Run runs a subtest in its own scope.
//
// This is equivalent to Go's testing.T.Run.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)
	testLogger := t.env.config.TestLogger

	testLogger.TestStarted(id)
	if t.env.config.Filter != nil && !t.env.config.Filter.Match(id) {
		t.env.results.Skipped = append(t.env.results.Skipped, TestResult{TestID: id})
		testLogger.TestSkipped(id, "excluded by filter parameters")
		return
	}
	c1 := &T{
		id:  id,
		env: t.env,
	}
	if t.env.config.DebugLogger != nil {
		c1.debugLogger.Forward = framework.LoggerWithPrefix(t.env.config.DebugLogger, "["+id.String()+"]")
	}
	result := c1.run(action)
	testLogger.TestFinished(id, result, c1.debugLogger.Output())
}

// Observe records the expected value of this test and the actual value that was produced, for
// reporting. An undefined actual value means that no value could be determined.
func (t *T) Observe(expected string, actual opt.Maybe[string]) {
	t.expected = expected
	t.actual = actual
}

// Fail marks the test as failed for the given reason without terminating it. If the test has
// already failed, the original reason is kept but the error is still added.
func (t *T) Fail(reason FailureReason, err error) {
	t.fail(reason, err)
}

func (t *T) fail(reason FailureReason, err error) {
	t.failed = true
	if t.reason == ReasonNone {
		t.reason = reason
	}
	if err != nil {
		t.errors = append(t.errors, err)
		t.env.config.TestLogger.TestError(t.id, err)
	}
}

// Debug writes a message to the output for this test scope.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger instance for writing output for this test scope.
//
// The output that is captured for a test will be passed to TestLogger.TestFinished at the end of
// the test. The test runner can choose whether to display this or not based on command-line options.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Context returns the application-defined context value, if any, that was specified in the
// TestConfiguration.
func (t *T) Context() interface{} {
	return t.env.config.Context
}
