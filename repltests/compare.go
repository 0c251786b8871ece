package repltests

import (
	"errors"

	"github.com/google/go-cmp/cmp"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/tinylisp/repl-test-harness/framework/repltest"
)

// compareResult fails the test unless actual is exactly the expected string. Case and
// whitespace are significant.
func compareResult(t *repltest.T, expected, actual string) bool {
	pass, description := m.Equal(expected).Test(actual)
	if pass {
		return true
	}
	t.Debug("result differs from expected value (-expected +actual):\n%s", cmp.Diff(expected, actual))
	t.Fail(repltest.ReasonMismatch, errors.New(description))
	return false
}
