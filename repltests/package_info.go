// Package repltests contains the harness controller: it picks and loads a suite, makes sure the
// executable under test exists, and runs every test case of the suite through the process
// driver, the result extractor and the comparator, in order.
package repltests
