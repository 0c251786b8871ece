package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tinylisp/repl-test-harness/framework/repltest"
	"github.com/tinylisp/repl-test-harness/repltests"
	"github.com/tinylisp/repl-test-harness/suite"
	"github.com/tinylisp/repl-test-harness/transcript"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

type commandParams struct {
	suiteName      string
	suiteDir       string
	suffix         string
	defaultSuite   string
	srcDir         string
	timeout        time.Duration
	extractorName  string
	extractor      transcript.Extractor
	filters        repltest.RegexFilters
	hideOutput     repltest.PatternList
	skipFile       string
	recordFailures string
	debug          bool
	debugAll       bool
	jUnitFile      string
	color          string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] [suite]\n", fs.Name())
		fs.PrintDefaults()
	}
	fs.StringVar(&c.suiteDir, "suite-dir", ".", "directory containing suite files")
	fs.StringVar(&c.suffix, "suffix", suite.DefaultSuffix, "file name suffix that identifies a suite")
	fs.StringVar(&c.defaultSuite, "default-suite", repltests.DefaultSuiteName,
		"suite to run if none is given or the given one doesn't exist")
	fs.StringVar(&c.srcDir, "src-dir", repltests.DefaultSourceDir, "directory containing the executables under test")
	fs.DurationVar(&c.timeout, "timeout", repltests.DefaultTimeout, "time limit for each test case (0 for none)")
	fs.StringVar(&c.extractorName, "extractor", transcript.NumberedPromptName,
		"how to find the result in the output: "+strings.Join(transcript.Names(), ", "))
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.skipFile, "skip-from", "", "file of test names, one per line, not to run")
	fs.StringVar(&c.recordFailures, "record-failures", "", "write the names of failed tests to the specified path")
	fs.Var(&c.hideOutput, "hide-output", "regex pattern(s) for output lines to leave out of transcripts")
	fs.BoolVar(&c.debug, "debug", false, "show the transcript of failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show the transcript of all tests as they run")
	fs.StringVar(&c.jUnitFile, "junit", "", "write JUnit XML output to the specified path")
	fs.StringVar(&c.color, "color", colorAuto, "colorize output: auto, always or never")

	// Flags may come before or after the suite name. Only the first name is used; any others
	// are ignored.
	var positional []string
	for rest := args[1:]; ; {
		if err := fs.Parse(rest); err != nil {
			fmt.Fprintln(os.Stderr, err)
			fs.Usage()
			return false
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
	if len(positional) > 0 {
		c.suiteName = positional[0]
	}

	extractor, err := transcript.ByName(c.extractorName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	c.extractor = extractor

	switch c.color {
	case colorAuto, colorAlways, colorNever:
	default:
		fmt.Fprintf(os.Stderr, "invalid value %q for -color\n", c.color)
		fs.Usage()
		return false
	}
	return true
}

// useColor decides whether verdicts are colorized, given whether stdout is a terminal.
func (c *commandParams) useColor(isTerminal bool) bool {
	switch c.color {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return isTerminal
	}
}

func (c *commandParams) config() repltests.Config {
	config := repltests.DefaultConfig()
	config.SuiteDir = c.suiteDir
	config.SuiteSuffix = c.suffix
	config.DefaultSuite = c.defaultSuite
	config.SourceDir = c.srcDir
	config.Timeout = c.timeout
	config.Extractor = c.extractor
	config.Filters = c.filters
	config.ExcludeFromLog = c.hideOutput
	config.JUnitFile = c.jUnitFile
	if c.debugAll {
		// Transcripts are streamed as they happen, so the console doesn't repeat them.
		config.DebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	} else {
		config.Console.DebugOutputOnFailure = c.debug
	}
	return config
}
