// Package fakerepl provides stand-in executables for tests of the harness itself. They
// are small POSIX shell scripts, so tests that use them only run on Unix-like systems.
package fakerepl

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TinyLisp behaves like a tinylisp build as far as the harness can tell: it prints a banner,
// then for each top-level expression a numbered prompt followed by the value, and one last
// prompt when its input is exhausted. It only knows the handful of expressions used in tests;
// anything else evaluates to ERR.
const TinyLisp = `#!/bin/sh
n=1
printf 'tinylisp'
while IFS= read -r line; do
  case "$line" in
    ''|' '*) continue ;;
    '(+ 2 3)') r=5 ;;
    '(/ 6 3)') r=2 ;;
    '(fact 5)') r=120 ;;
    '(define '*) r=$(echo "$line" | cut -d' ' -f2) ;;
    *) r=ERR ;;
  esac
  printf '\n%d>%s' "$n" "$r"
  n=$((n+1))
done
printf '\n%d>' "$n"
`

// Echo copies its input to its output unchanged.
const Echo = `#!/bin/sh
exec cat
`

// Crash fails before printing any prompt, the way a build that can't start would.
const Crash = `#!/bin/sh
echo 'tinylisp: cannot allocate heap' >&2
exit 2
`

// Hang never exits on its own.
const Hang = `#!/bin/sh
exec sleep 30
`

// SkipUnlessShell skips the test on platforms where the scripts in this package can't run.
func SkipUnlessShell(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake REPL scripts require a POSIX shell")
	}
}

// Install writes script as an executable file called name in dir and returns its path.
func Install(t testing.TB, dir, name, script string) string {
	t.Helper()
	SkipUnlessShell(t)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil { //nolint:gosec
		t.Fatalf("cannot write fake executable: %s", err)
	}
	return path
}
