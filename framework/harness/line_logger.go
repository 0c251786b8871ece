package harness

import (
	"bytes"
	"regexp"
	"strings"
	"sync"

	"github.com/tinylisp/repl-test-harness/framework"
)

// lineLogger is an io.Writer that passes each complete line written to it on to a Logger, with
// a prefix identifying the stream. Lines matching any of the exclude patterns are dropped.
type lineLogger struct {
	logger       framework.Logger
	prefix       string
	excludeRegex []*regexp.Regexp
	partial      bytes.Buffer
	lock         sync.Mutex
}

func newLineLogger(logger framework.Logger, prefix string, excludeRegex ...*regexp.Regexp) *lineLogger {
	return &lineLogger{logger: logger, prefix: prefix, excludeRegex: excludeRegex}
}

func (l *lineLogger) Write(data []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.partial.Write(data)
	for {
		i := bytes.IndexByte(l.partial.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(l.partial.Next(i + 1))
		l.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(data), nil
}

// Flush logs whatever is left after the last newline. A REPL's trailing prompt usually ends up here.
func (l *lineLogger) Flush() {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.partial.Len() > 0 {
		l.emit(strings.TrimRight(l.partial.String(), "\r"))
		l.partial.Reset()
	}
}

func (l *lineLogger) emit(line string) {
	for _, r := range l.excludeRegex {
		if r.MatchString(line) {
			return
		}
	}
	l.logger.Println(l.prefix + line)
}
