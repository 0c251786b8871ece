package repltests

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/tinylisp/repl-test-harness/framework"
	"github.com/tinylisp/repl-test-harness/framework/repltest"
	"github.com/tinylisp/repl-test-harness/suite"
	"github.com/tinylisp/repl-test-harness/transcript"
)

const (
	DefaultSuiteName = "tinylisp_tests"
	DefaultTimeout   = 10 * time.Second
)

// DefaultSourceDir is where executables under test are looked for, relative to the working directory.
var DefaultSourceDir = filepath.Join("..", "src") //nolint:gochecknoglobals

// Config holds everything the controller needs to know about where suites and executables are
// and how to run them.
type Config struct {
	// SuiteDir is the directory searched for suite files.
	SuiteDir string

	// SuiteSuffix is the suffix that identifies a suite file, such as "_tests".
	SuiteSuffix string

	// DefaultSuite is used when no suite is requested or the requested one doesn't exist.
	DefaultSuite string

	// SourceDir is the directory that contains the executable named by the suite's testee.
	SourceDir string

	// Timeout is the default time limit for one test case. Zero means no limit.
	Timeout time.Duration

	// Extractor reads the result value out of each transcript.
	Extractor transcript.Extractor

	// ExcludeFromLog lists patterns for lines of target output, such as a startup banner, that
	// are left out of transcripts. Extraction still sees them.
	ExcludeFromLog []*regexp.Regexp

	// Filters can exclude test cases by name.
	Filters repltest.RegexFilters

	// Console controls the per-case verdict output. Its Out field defaults to Output.
	Console repltest.ConsoleTestLogger

	// JUnitFile, if not empty, is where a JUnit XML report is written at the end of the run.
	JUnitFile string

	// DebugLogger, if set, receives every transcript line as it is produced.
	DebugLogger framework.Logger

	// Output receives the controller's own messages. Defaults to os.Stdout.
	Output io.Writer
}

// DefaultConfig returns the configuration that matches running the harness from a directory of
// suite files next to the directory of built executables.
func DefaultConfig() Config {
	return Config{
		SuiteDir:     ".",
		SuiteSuffix:  suite.DefaultSuffix,
		DefaultSuite: DefaultSuiteName,
		SourceDir:    DefaultSourceDir,
		Timeout:      DefaultTimeout,
		Extractor:    transcript.NumberedPrompt{},
	}
}

func (c Config) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

func (c Config) testLogger(s suite.Suite) repltest.TestLogger {
	console := c.Console
	if console.Out == nil {
		console.Out = c.output()
	}
	if c.JUnitFile == "" {
		return console
	}
	return &repltest.MultiTestLogger{Loggers: []repltest.TestLogger{
		console,
		repltest.NewJUnitTestLogger(c.JUnitFile,
			repltest.JUnitSuiteInfo{Name: s.Name, File: s.FilePath, Testee: s.Testee}, c.Filters),
	}}
}
