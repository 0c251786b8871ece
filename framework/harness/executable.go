package harness

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrExecutableNotFound means that the executable under test does not exist at the expected
// path, or exists but cannot be run.
var ErrExecutableNotFound = errors.New("executable not found")

// CheckExecutable verifies, without running it, that path names a file that can be started as a
// process. It is used as a preflight check so that a missing build aborts the whole run before
// any test case is attempted.
func CheckExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExecutableNotFound, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrExecutableNotFound, path)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("%w: %s is not executable", ErrExecutableNotFound, path)
	}
	return nil
}
