package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/tinylisp/repl-test-harness/framework/repltest"
	"github.com/tinylisp/repl-test-harness/repltests"
)

// Exit status for any failed or aborted run, matching what callers of the harness check for.
const failureExitCode = -1

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(failureExitCode)
	}
	color.NoColor = !params.useColor(term.IsTerminal(int(os.Stdout.Fd())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	results, err := run(ctx, params)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(failureExitCode)
	}

	if !results.OK() {
		os.Exit(failureExitCode)
	}
}

func run(ctx context.Context, params commandParams) (*repltest.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return nil, err
		}
	}

	results, err := repltests.RunREPLTestSuite(ctx, params.config(), params.suiteName)
	if err != nil {
		return nil, err
	}

	if params.recordFailures != "" {
		if err := recordFailures(params.recordFailures, results); err != nil {
			return nil, err
		}
	}
	return &results, nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := params.filters.MustNotMatch.Set("^" + regexp.QuoteMeta(line) + "$"); err != nil {
			return fmt.Errorf("cannot parse suppression: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}

func recordFailures(path string, results repltest.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create suppression file: %w", err)
	}
	for _, test := range results.Failures {
		fmt.Fprintln(f, test.TestID.Name())
	}
	return f.Close()
}
