package repltests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tinylisp/repl-test-harness/framework/harness"
	"github.com/tinylisp/repl-test-harness/framework/opt"
	"github.com/tinylisp/repl-test-harness/framework/repltest"
	"github.com/tinylisp/repl-test-harness/suite"
)

// runTestCase drives one fresh process with the case's script and checks the value it printed
// last. If no value can be determined, the case fails with the actual value unavailable.
func runTestCase(ctx context.Context, t *repltest.T, tc suite.TestCase) {
	c := t.Context().(REPLTestContext)

	driver := c.driver
	driver.Timeout = tc.Timeout.OrElse(driver.Timeout)
	driver.Logger = t.DebugLogger()

	t.Debug("sending %q", tc.Send)
	output, err := driver.Run(ctx, tc.Send)
	if err != nil {
		t.Observe(tc.Expect, opt.None[string]())
		if errors.Is(err, harness.ErrTimeout) {
			t.Fail(repltest.ReasonTimeout, err)
		} else {
			t.Fail(repltest.ReasonProcess, err)
		}
		return
	}

	actual, err := c.extractor.Extract(output.Stdout)
	if err != nil {
		t.Observe(tc.Expect, opt.None[string]())
		t.Fail(repltest.ReasonUnparseable, fmt.Errorf("cannot find result in output: %w", err))
		if output.ExitCode != 0 {
			t.Fail(repltest.ReasonUnparseable, fmt.Errorf("process exited with status %d", output.ExitCode))
		}
		if last := lastLine(output.Stderr); last != "" {
			t.Fail(repltest.ReasonUnparseable, fmt.Errorf("last line on stderr: %s", last))
		}
		return
	}

	t.Observe(tc.Expect, opt.Some(actual))
	compareResult(t, tc.Expect, actual)
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\r\n"), "\n")
	return strings.TrimRight(lines[len(lines)-1], "\r")
}
