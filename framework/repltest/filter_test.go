package repltest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regexFilterTestParams struct {
	run         []string
	skip        []string
	testID      TestID
	shouldMatch bool
}

func TestRegexFilters(t *testing.T) {
	allParams := []regexFilterTestParams{
		// matches everything by default
		{nil, nil, TestID{"Basic addition"}, true},

		// -run with one pattern
		{[]string{"addition"}, nil, TestID{"Basic addition"}, true},
		{[]string{"^addition"}, nil, TestID{"Basic addition"}, false},
		{[]string{"division"}, nil, TestID{"Basic addition"}, false},

		// -run with several patterns
		{[]string{"division", "addition"}, nil, TestID{"Basic addition"}, true},
		{[]string{"division", "Factorial"}, nil, TestID{"Basic addition"}, false},

		// -skip
		{nil, []string{"addition"}, TestID{"Basic addition"}, false},
		{nil, []string{"division"}, TestID{"Basic addition"}, true},

		// only the case name is matched, not the parent scope
		{[]string{"tinylisp"}, nil, TestID{"tinylisp_tests", "Basic addition"}, false},

		// -skip overrides -run
		{[]string{"Basic"}, []string{"division"}, TestID{"Basic division"}, false},
		{[]string{"Basic"}, []string{"division"}, TestID{"Basic addition"}, true},
	}
	for _, params := range allParams {
		var r RegexFilters
		for _, s := range params.run {
			require.NoError(t, r.MustMatch.Set(s))
		}
		for _, s := range params.skip {
			require.NoError(t, r.MustNotMatch.Set(s))
		}
		t.Run(fmt.Sprintf("run=%s, skip=%s, id=%s", r.MustMatch, r.MustNotMatch, params.testID), func(t *testing.T) {
			assert.Equal(t, params.shouldMatch, r.Match(params.testID))
		})
	}
}

func TestPatternListRejectsInvalidRegex(t *testing.T) {
	var l PatternList
	assert.Error(t, l.Set("("))
	assert.False(t, l.IsDefined())
}

func TestRegexFiltersDescribe(t *testing.T) {
	var buf bytes.Buffer
	RegexFilters{}.Describe(&buf)
	assert.Equal(t, "", buf.String())

	var r RegexFilters
	require.NoError(t, r.MustMatch.Set("a"))
	require.NoError(t, r.MustNotMatch.Set("b"))
	r.Describe(&buf)
	assert.Contains(t, buf.String(), `skip any not matching "a"`)
	assert.Contains(t, buf.String(), `skip any matching "b"`)
}
