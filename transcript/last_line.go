package transcript

import (
	"fmt"
	"strings"
)

// LastLine takes the last line of output that is not blank, unchanged. It suits targets that
// print only their results, with no prompt.
type LastLine struct{}

func (LastLine) Extract(stdout string) (string, error) {
	lines := splitLines(stdout)
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i], nil
		}
	}
	return "", fmt.Errorf("%w: output was blank", ErrNoResultLine)
}
