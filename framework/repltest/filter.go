package repltest

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter determines whether a specific test should run.
type Filter interface {
	Match(id TestID) bool
}

// RegexFilters selects tests by name. A test runs if its name matches at least one MustMatch
// pattern (or there are none) and no MustNotMatch pattern.
type RegexFilters struct {
	MustMatch    PatternList
	MustNotMatch PatternList
}

func (r RegexFilters) Match(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id)) && !r.MustNotMatch.AnyMatch(id)
}

// Describe writes a human-readable summary of the filters, or nothing if there are none.
func (r RegexFilters) Describe(w io.Writer) {
	if !r.MustMatch.IsDefined() && !r.MustNotMatch.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
	if r.MustMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any not matching %s\n", r.MustMatch)
	}
	if r.MustNotMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any matching %s\n", r.MustNotMatch)
	}
}

// PatternList is a list of regular expressions that are matched against a test's name. It
// implements flag.Value so that it can be set from repeated command-line options.
type PatternList []*regexp.Regexp

func (l PatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (l *PatternList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	*l = append(*l, rx)
	return nil
}

func (l PatternList) IsDefined() bool {
	return len(l) != 0
}

func (l PatternList) AnyMatch(id TestID) bool {
	name := id.Name()
	for _, p := range l {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
