package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapturingLoggerRecordsMessagesInOrder(t *testing.T) {
	var l CapturingLogger
	l.Println("first", 1)
	l.Printf("second %d", 2)

	assert.Equal(t, []string{"first 1", "second 2"}, l.Output().Messages())
}

func TestCapturingLoggerForwardsMessages(t *testing.T) {
	var forwarded CapturingLogger
	l := CapturingLogger{Forward: &forwarded}
	l.Printf("stdout: %s", "3>5")

	assert.Equal(t, []string{"stdout: 3>5"}, forwarded.Output().Messages())
	assert.Equal(t, []string{"stdout: 3>5"}, l.Output().Messages())
}

func TestCapturedOutputToString(t *testing.T) {
	var l CapturingLogger
	l.Println("a")
	l.Println("b")

	s := l.Output().ToString("DEBUG ")
	lines := strings.Split(s, "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[0], "] a"))
	assert.True(t, strings.HasSuffix(lines[1], "] b"))

	assert.Equal(t, "", CapturedOutput(nil).ToString("x"))
}

func TestLoggerWithPrefix(t *testing.T) {
	var l CapturingLogger
	p := LoggerWithPrefix(&l, "[case] ")
	p.Printf("value %s", "x")
	p.Println("line")

	assert.Equal(t, []string{"[case] value x", "[case]  line"}, l.Output().Messages())
}

func TestNullLoggerDoesNothing(t *testing.T) {
	l := NullLogger()
	l.Println("ignored")
	l.Printf("ignored %s", "too")
}
