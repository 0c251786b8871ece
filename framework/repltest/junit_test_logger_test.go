package repltest

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinylisp/repl-test-harness/framework"
	"github.com/tinylisp/repl-test-harness/framework/opt"
)

func TestJUnitTestLoggerWritesReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("slow"))
	logger := NewJUnitTestLogger(path, JUnitSuiteInfo{
		Name:   "tinylisp_tests",
		File:   "test/tinylisp_tests.yaml",
		Testee: "tinylisp-commented",
	}, filters)

	var debugOutput framework.CapturingLogger
	debugOutput.Println("stdout: 1>6")

	passedID, failedID, timeoutID, skippedID :=
		TestID{"Basic addition"}, TestID{"Basic division"}, TestID{"Loop"}, TestID{"slow"}

	logger.TestStarted(passedID)
	logger.TestFinished(passedID, TestResult{TestID: passedID, Expected: "5", Actual: opt.Some("5"),
		Duration: 1500 * time.Millisecond}, nil)

	logger.TestStarted(failedID)
	logger.TestFinished(failedID, TestResult{TestID: failedID, Expected: "2", Actual: opt.Some("6"),
		Reason: ReasonMismatch, Errors: []error{errors.New("values differ")}}, debugOutput.Output())

	logger.TestStarted(timeoutID)
	logger.TestFinished(timeoutID, TestResult{TestID: timeoutID, Expected: "ERR", Reason: ReasonTimeout,
		Errors: []error{errors.New("process timed out")}}, nil)

	logger.TestStarted(skippedID)
	logger.TestSkipped(skippedID, "excluded by filter parameters")

	require.NoError(t, logger.EndLog(Results{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc jUnitXMLDocument
	require.NoError(t, xml.Unmarshal(data, &doc))

	require.Len(t, doc.Suites, 1)
	suite := doc.Suites[0]
	assert.Equal(t, "REPL conformance tests: tinylisp_tests", suite.Name)
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 2, suite.Failures)
	assert.Equal(t, 1, suite.Skipped)
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "tests.testee", Value: "tinylisp-commented"})
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "tests.suite.file", Value: "test/tinylisp_tests.yaml"})
	assert.Contains(t, suite.Properties, jUnitXMLProperty{Name: "tests.filter.mustNotMatch", Value: `"slow"`})

	require.Len(t, suite.TestCases, 4)
	assert.Nil(t, suite.TestCases[0].Failure)
	assert.Nil(t, suite.TestCases[0].SystemOut)
	assert.Equal(t, "tinylisp_tests", suite.TestCases[0].Classname)
	assert.Equal(t, "1.500", suite.TestCases[0].Time)
	assert.Equal(t, "1.500", suite.Time)

	mismatch := suite.TestCases[1].Failure
	require.NotNil(t, mismatch)
	assert.Equal(t, "mismatch", mismatch.Type)
	assert.Equal(t, "Expected: 2\nBut got: 6", mismatch.Message)
	assert.Contains(t, mismatch.Contents, "stdout: 1>6")

	timeout := suite.TestCases[2].Failure
	require.NotNil(t, timeout)
	assert.Equal(t, "timeout", timeout.Type)
	assert.Equal(t, "Expected: ERR\nBut got: [unavailable]\nprocess timed out", timeout.Message)

	require.NotNil(t, suite.TestCases[3].Skipped)
	assert.Equal(t, "excluded by filter parameters", suite.TestCases[3].Skipped.Message)
}

func TestJUnitTestLoggerReportsWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "junit.xml")
	logger := NewJUnitTestLogger(path, JUnitSuiteInfo{Name: "s", Testee: "t"}, RegexFilters{})
	assert.Error(t, logger.EndLog(Results{}))
}

func TestJUnitTestLoggerKeepsOutputOfPassedTests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junit.xml")
	logger := NewJUnitTestLogger(path, JUnitSuiteInfo{Name: "s", Testee: "t"}, RegexFilters{})

	var debugOutput framework.CapturingLogger
	debugOutput.Println("stdout: 1>5")
	id := TestID{"Basic addition"}
	logger.TestFinished(id, TestResult{TestID: id, Expected: "5", Actual: opt.Some("5")}, debugOutput.Output())
	require.NoError(t, logger.EndLog(Results{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), xml.Header))
	var doc jUnitXMLDocument
	require.NoError(t, xml.Unmarshal(data, &doc))
	tc := doc.Suites[0].TestCases[0]
	assert.Nil(t, tc.Failure)
	require.NotNil(t, tc.SystemOut)
	assert.Contains(t, tc.SystemOut.Contents, "stdout: 1>5")
}
