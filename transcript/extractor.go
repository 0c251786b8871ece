// Package transcript knows how to find the result value in the output of a REPL. The harness
// controller only depends on the Extractor interface, so a target with a different output
// convention can supply its own strategy.
package transcript

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoResultLine means the output had too few lines to contain a result.
	ErrNoResultLine = errors.New("no result line in output")

	// ErrPromptNotFound means the line expected to hold the result did not match the prompt pattern.
	ErrPromptNotFound = errors.New("result line does not match prompt pattern")
)

// Extractor finds the final result value in the standard output of one run of a REPL.
type Extractor interface {
	Extract(stdout string) (string, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(stdout string) (string, error)

func (f ExtractorFunc) Extract(stdout string) (string, error) { return f(stdout) }

// Names of the built-in extraction strategies, as accepted by ByName.
const (
	NumberedPromptName = "numbered-prompt"
	LastLineName       = "last-line"
)

var builtins = map[string]func() Extractor{ //nolint:gochecknoglobals
	NumberedPromptName: func() Extractor { return NumberedPrompt{} },
	LastLineName:       func() Extractor { return LastLine{} },
}

// ByName returns one of the built-in strategies with its default settings.
func ByName(name string) (Extractor, error) {
	if f, ok := builtins[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown result extractor %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists the built-in strategies in alphabetical order.
func Names() []string {
	ret := make([]string, 0, len(builtins))
	for name := range builtins {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// splitLines splits output on "\n", dropping a "\r" at the end of each line so that targets
// which write CRLF line endings are handled the same way.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
