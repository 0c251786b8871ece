// Package suite defines REPL test suites and loads them from JSON or YAML files.
//
// A suite file is named <identifier><suffix>.yaml (or .yml, or .json), where the suffix is
// "_tests" by default, and looks like this:
//
//	testee: tinylisp-commented
//	tests:
//	  - name: Basic addition
//	    send: "(+ 2 3)"
//	    expect: "5"
//	  - name: Runaway recursion
//	    send: "(define f (lambda (n) (f n))) (f 1)"
//	    expect: "ERR"
//	    timeout: 2s
package suite

import (
	"path/filepath"
	"time"

	"github.com/tinylisp/repl-test-harness/framework/opt"
)

// TestCase is one script to send to the testee and the result it is expected to print.
type TestCase struct {
	Name    string
	Send    string
	Expect  string
	Timeout opt.Maybe[time.Duration]
}

// Suite is a named, ordered list of test cases for one executable.
type Suite struct {
	Name     string
	FilePath string
	Testee   string
	Cases    []TestCase
}

// ExecutablePath returns where the testee is expected to be, given the directory that holds
// built executables.
func (s Suite) ExecutablePath(srcDir string) string {
	return filepath.Join(srcDir, s.Testee)
}
