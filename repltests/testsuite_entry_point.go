package repltests

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tinylisp/repl-test-harness/framework/harness"
	"github.com/tinylisp/repl-test-harness/framework/repltest"
	"github.com/tinylisp/repl-test-harness/suite"
	"github.com/tinylisp/repl-test-harness/transcript"
)

// ErrExecutableMissing is returned when the suite's testee can't be found; no test case runs.
var ErrExecutableMissing = errors.New("executable under test is missing")

// REPLTestContext is the application context available to every test case through T.Context.
type REPLTestContext struct {
	driver    harness.ProcessDriver
	extractor transcript.Extractor
}

// RunREPLTestSuite runs the suite called requested, or the default suite if requested is empty
// or not one of the suites found in config.SuiteDir.
//
// An error is returned only if the run could not start: the suite could not be loaded or its
// executable is missing. Failures of individual test cases are reported in the Results.
func RunREPLTestSuite(
	ctx context.Context,
	config Config,
	requested string,
) (repltest.Results, error) {
	out := config.output()

	discovered, err := suite.Discover(config.SuiteDir, config.SuiteSuffix)
	if err != nil {
		return repltest.Results{}, err
	}
	name := suite.Select(requested, discovered, config.DefaultSuite)
	fmt.Fprintf(out, "Importing %s\n", name)

	s, err := suite.Load(config.SuiteDir, name)
	if err != nil {
		return repltest.Results{}, err
	}

	execPath, err := filepath.Abs(s.ExecutablePath(config.SourceDir))
	if err != nil {
		return repltest.Results{}, err
	}
	if err := harness.CheckExecutable(execPath); err != nil {
		fmt.Fprintf(out, "Could not locate executable %s: Did you compile it?\n", s.Testee)
		return repltest.Results{}, fmt.Errorf("%w: %w", ErrExecutableMissing, err)
	}

	extractor := config.Extractor
	if extractor == nil {
		extractor = transcript.NumberedPrompt{}
	}

	fmt.Fprintf(out, "Running test cases on %s:\n", s.Testee)
	config.Filters.Describe(out)

	testLogger := config.testLogger(s)
	testConfig := repltest.TestConfiguration{
		Filter:      config.Filters,
		TestLogger:  testLogger,
		DebugLogger: config.DebugLogger,
		Context: REPLTestContext{
			driver: harness.ProcessDriver{
				Path:           execPath,
				Timeout:        config.Timeout,
				ExcludeFromLog: config.ExcludeFromLog,
			},
			extractor: extractor,
		},
	}

	results := repltest.Run(testConfig, func(t *repltest.T) {
		for _, tc := range s.Cases {
			t.Run(tc.Name, func(t *repltest.T) {
				runTestCase(ctx, t, tc)
			})
		}
	})

	if err := testLogger.EndLog(results); err != nil {
		return results, fmt.Errorf("error writing test report: %w", err)
	}
	return results, nil
}
