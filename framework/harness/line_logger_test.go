package harness

import (
	"io"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinylisp/repl-test-harness/framework"
)

func TestLineLoggerSplitsWritesIntoLines(t *testing.T) {
	var logger framework.CapturingLogger
	w := newLineLogger(&logger, "stdout: ")

	_, _ = io.WriteString(w, "tiny")
	_, _ = io.WriteString(w, "lisp\r\n1>")
	_, _ = io.WriteString(w, "5\n2>")
	assert.Equal(t, []string{"stdout: tinylisp", "stdout: 1>5"}, logger.Output().Messages())

	w.Flush()
	assert.Equal(t, []string{"stdout: tinylisp", "stdout: 1>5", "stdout: 2>"}, logger.Output().Messages())

	w.Flush()
	assert.Len(t, logger.Output(), 3)
}

func TestLineLoggerExcludesMatchingLines(t *testing.T) {
	var logger framework.CapturingLogger
	w := newLineLogger(&logger, "", regexp.MustCompile(`^\d+>$`))

	n, err := io.WriteString(w, "1>5\n2>\n")
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []string{"1>5"}, logger.Output().Messages())
}
