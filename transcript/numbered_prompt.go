package transcript

import (
	"fmt"
	"regexp"
)

// DefaultPromptPattern matches a numbered prompt such as "930>" and captures the rest of the line.
var DefaultPromptPattern = regexp.MustCompile(`\d+>(.*)$`) //nolint:gochecknoglobals

// NumberedPrompt extracts the result from REPLs that print each result after a prompt made of
// an increasing counter and a delimiter, for instance
//
//	tinylisp
//	930>120
//	930>
//
// After all input is consumed such a REPL prints one more prompt, which is skipped. The line
// before it is matched against Pattern and the first capture group is the result.
type NumberedPrompt struct {
	// Pattern must have one capture group. If nil, DefaultPromptPattern is used.
	Pattern *regexp.Regexp

	// SkipTrailing is the number of lines to skip at the end of the output, in addition to the
	// trailing prompt line.
	SkipTrailing int
}

func (n NumberedPrompt) Extract(stdout string) (string, error) {
	pattern := n.Pattern
	if pattern == nil {
		pattern = DefaultPromptPattern
	}
	lines := splitLines(stdout)
	index := len(lines) - 2 - n.SkipTrailing
	if index < 0 {
		return "", fmt.Errorf("%w: got %d line(s)", ErrNoResultLine, len(lines))
	}
	line := lines[index]
	match := pattern.FindStringSubmatch(line)
	if len(match) < 2 {
		return "", fmt.Errorf("%w %q: %q", ErrPromptNotFound, pattern, line)
	}
	return match[1], nil
}
