package repltest

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tinylisp/repl-test-harness/framework"
)

// JUnitTestLogger writes a JUnit XML report of the run when EndLog is called. The suite file is
// reported as a single <testsuite> whose test cases appear in the order they ran.
type JUnitTestLogger struct {
	filePath  string
	suite     JUnitSuiteInfo
	filters   RegexFilters
	startTime time.Time
	cases     []jUnitXMLTestCase
	lock      sync.Mutex
}

// JUnitSuiteInfo describes the suite file that was run, for the report's properties.
type JUnitSuiteInfo struct {
	Name   string
	File   string
	Testee string
}

// XML element layout follows what go-junit-report produces, which CI systems accept.

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName    xml.Name           `xml:"testsuite"`
	Name       string             `xml:"name,attr"`
	Tests      int                `xml:"tests,attr"`
	Failures   int                `xml:"failures,attr"`
	Skipped    int                `xml:"skipped,attr"`
	Time       string             `xml:"time,attr"`
	Timestamp  string             `xml:"timestamp,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type jUnitXMLTestCase struct {
	XMLName   xml.Name          `xml:"testcase"`
	Classname string            `xml:"classname,attr"`
	Name      string            `xml:"name,attr"`
	Time      string            `xml:"time,attr"`
	Skipped   *jUnitXMLSkipped  `xml:"skipped,omitempty"`
	Failure   *jUnitXMLFailure  `xml:"failure,omitempty"`
	SystemOut *jUnitXMLCharData `xml:"system-out,omitempty"`

	duration time.Duration
}

type jUnitXMLSkipped struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

type jUnitXMLCharData struct {
	Contents string `xml:",chardata"`
}

func NewJUnitTestLogger(filePath string, suite JUnitSuiteInfo, filters RegexFilters) *JUnitTestLogger {
	return &JUnitTestLogger{
		filePath:  filePath,
		suite:     suite,
		filters:   filters,
		startTime: time.Now(),
	}
}

func (j *JUnitTestLogger) TestStarted(TestID) {}

// TestError does nothing; errors are taken from the TestResult when the test finishes.
func (j *JUnitTestLogger) TestError(TestID, error) {}

func (j *JUnitTestLogger) TestFinished(id TestID, result TestResult, debugOutput framework.CapturedOutput) {
	tc := j.newTestCase(id, result.Duration)
	if result.Failed() {
		tc.Failure = &jUnitXMLFailure{
			Message:  failureMessage(result),
			Type:     string(result.Reason),
			Contents: debugOutput.ToString(""),
		}
	} else if len(debugOutput) > 0 {
		tc.SystemOut = &jUnitXMLCharData{Contents: debugOutput.ToString("")}
	}
	j.add(tc)
}

func (j *JUnitTestLogger) TestSkipped(id TestID, reason string) {
	tc := j.newTestCase(id, 0)
	tc.Skipped = &jUnitXMLSkipped{Message: reason}
	j.add(tc)
}

func (j *JUnitTestLogger) newTestCase(id TestID, duration time.Duration) jUnitXMLTestCase {
	return jUnitXMLTestCase{
		Classname: j.suite.Name,
		Name:      id.String(),
		Time:      jUnitDurationString(duration),
		duration:  duration,
	}
}

func (j *JUnitTestLogger) add(tc jUnitXMLTestCase) {
	j.lock.Lock()
	j.cases = append(j.cases, tc)
	j.lock.Unlock()
}

func (j *JUnitTestLogger) EndLog(Results) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	suite := jUnitXMLTestSuite{
		Name:      "REPL conformance tests: " + j.suite.Name,
		Tests:     len(j.cases),
		Timestamp: j.startTime.UTC().Format(time.RFC3339),
		Properties: []jUnitXMLProperty{
			{Name: "tests.suite", Value: j.suite.Name},
			{Name: "tests.suite.file", Value: j.suite.File},
			{Name: "tests.testee", Value: j.suite.Testee},
			{Name: "tests.filter.mustMatch", Value: j.filters.MustMatch.String()},
			{Name: "tests.filter.mustNotMatch", Value: j.filters.MustNotMatch.String()},
		},
		TestCases: j.cases,
	}
	var total time.Duration
	for _, tc := range j.cases {
		total += tc.duration
		switch {
		case tc.Skipped != nil:
			suite.Skipped++
		case tc.Failure != nil:
			suite.Failures++
		}
	}
	suite.Time = jUnitDurationString(total)

	data, err := xml.MarshalIndent(jUnitXMLDocument{Suites: []jUnitXMLTestSuite{suite}}, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), append(data, '\n')...)

	if err := os.WriteFile(j.filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("error writing JUnit data to %s: %w", j.filePath, err)
	}
	return nil
}

// failureMessage is the same text the console shows for a failed test. The errors behind a
// mismatch only restate the two values, so they are left out.
func failureMessage(result TestResult) string {
	lines := []string{
		"Expected: " + result.Expected,
		"But got: " + result.Actual.OrElse(UnavailableValue),
	}
	if result.Reason != ReasonMismatch {
		for _, err := range result.Errors {
			lines = append(lines, err.Error())
		}
	}
	return strings.Join(lines, "\n")
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
