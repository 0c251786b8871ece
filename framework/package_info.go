// Package framework contains the low-level infrastructure of the REPL test harness that does not
// know anything about a particular interpreter. The base package contains shared types such as
// Logger; other components are in the subpackages harness, repltest and opt.
//
// The general model is:
//
// 1. A suite names an executable (the testee) and an ordered list of test cases, each of which
// is a script to send to the executable plus the value it is expected to print.
//
// 2. For every test case, the harness starts a fresh process, writes the script to its standard
// input, closes the input and collects everything the process prints (package harness).
//
// 3. There is a general notion of a test scope which is similar to Go's testing.T, allowing
// pieces of test logic to be associated with a test identifier and to accumulate success/failure
// results, which are reported as they happen (package repltest).
//
// The domain-specific code that knows how to read a result out of a transcript, and what a suite
// file looks like, lives outside of this package tree.
package framework
