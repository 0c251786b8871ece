// Package repltest contains a test runner framework that is similar to Go's testing package, but
// is run as regular Go application code rather than Go tests. Each case of a REPL suite runs in
// its own scope, which accumulates the expected and actual values, any errors, and the debug
// output captured while the target executable was running.
package repltest
