package repltest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tinylisp/repl-test-harness/framework"

	"github.com/fatih/color"
)

var consoleTestErrorColor = color.New(color.FgYellow)              //nolint:gochecknoglobals
var consoleTestFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleTestSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleDebugOutputColor = color.New(color.Faint)               //nolint:gochecknoglobals
var consoleTestPassedColor = color.New(color.FgGreen)              //nolint:gochecknoglobals

// UnavailableValue is shown in place of the actual value when none could be extracted.
const UnavailableValue = "[unavailable]"

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput)
	TestSkipped(id TestID, reason string)
	EndLog(results Results) error
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                                        {}
func (n nullTestLogger) TestError(TestID, error)                                   {}
func (n nullTestLogger) TestFinished(TestID, TestResult, framework.CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                                {}
func (n nullTestLogger) EndLog(Results) error                                      { return nil }

// ConsoleTestLogger prints one verdict line per test, in the form "Testing <name>: passed". For
// a failed test it also prints the expected and actual values, and any errors other than the
// mismatch itself. The whole line is written when the test ends, so that output streamed by a
// live debug logger while the test runs never lands in the middle of it.
type ConsoleTestLogger struct {
	Out io.Writer

	// DebugOutputOnFailure shows the captured transcript under the verdict of each failed test.
	DebugOutputOnFailure bool
}

func (c ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c ConsoleTestLogger) TestStarted(TestID) {}

// TestError does nothing; errors are printed with the verdict so they don't break up the line.
func (c ConsoleTestLogger) TestError(TestID, error) {}

func (c ConsoleTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	w := c.out()
	_, _ = fmt.Fprintf(w, "Testing %s: ", id.Name())
	if result.Failed() {
		if result.Reason == ReasonMismatch {
			_, _ = consoleTestFailedColor.Fprintln(w, "failed!")
		} else {
			_, _ = consoleTestFailedColor.Fprintf(w, "failed! (%s)\n", result.Reason)
		}
		_, _ = fmt.Fprintf(w, "Expected: %s\n", result.Expected)
		_, _ = fmt.Fprintf(w, "But got: %s\n", result.Actual.OrElse(UnavailableValue))
		if result.Reason != ReasonMismatch {
			for _, err := range result.Errors {
				for _, line := range strings.Split(err.Error(), "\n") {
					_, _ = consoleTestErrorColor.Fprintf(w, "  %s\n", line)
				}
			}
		}
		if c.DebugOutputOnFailure && len(debugOutput) > 0 {
			_, _ = consoleDebugOutputColor.Fprintln(w, debugOutput.ToString("    DEBUG "))
		}
	} else {
		_, _ = consoleTestPassedColor.Fprintln(w, "passed")
	}
}

func (c ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	_, _ = fmt.Fprintf(c.out(), "Testing %s: ", id.Name())
	if reason == "" {
		_, _ = consoleTestSkippedColor.Fprintln(c.out(), "skipped")
	} else {
		_, _ = consoleTestSkippedColor.Fprintf(c.out(), "skipped (%s)\n", reason)
	}
}

// EndLog prints the summary line "Passed X/Y tests".
func (c ConsoleTestLogger) EndLog(results Results) error {
	w := c.out()
	summaryColor := consoleTestPassedColor
	if !results.OK() {
		summaryColor = consoleTestFailedColor
	}
	_, _ = summaryColor.Fprintf(w, "Passed %d/%d tests\n", results.Passed(), results.Total())
	if len(results.Skipped) > 0 {
		_, _ = consoleTestSkippedColor.Fprintf(w, "Skipped %d tests\n", len(results.Skipped))
	}
	return nil
}

// MultiTestLogger sends every event to each of its loggers in order.
type MultiTestLogger struct {
	Loggers []TestLogger
}

func (m *MultiTestLogger) TestStarted(id TestID) {
	for _, l := range m.Loggers {
		l.TestStarted(id)
	}
}

func (m *MultiTestLogger) TestError(id TestID, err error) {
	for _, l := range m.Loggers {
		l.TestError(id, err)
	}
}

func (m *MultiTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	for _, l := range m.Loggers {
		l.TestFinished(id, result, debugOutput)
	}
}

func (m *MultiTestLogger) TestSkipped(id TestID, reason string) {
	for _, l := range m.Loggers {
		l.TestSkipped(id, reason)
	}
}

func (m *MultiTestLogger) EndLog(results Results) error {
	var errs []error
	for _, l := range m.Loggers {
		if err := l.EndLog(results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
