package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinylisp/repl-test-harness/framework"
)

var (
	// ErrSpawnFailed means that the process could not be started at all.
	ErrSpawnFailed = errors.New("failed to start process")

	// ErrTimeout means that the process did not exit before the driver's timeout and was killed.
	ErrTimeout = errors.New("process timed out")
)

// How long to keep waiting for output after the process has exited or been killed, in case a
// child of the target is still holding its output pipes open.
const pipeCloseDelay = time.Second

// Transcript is everything that one run of the target executable wrote.
type Transcript struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ProcessDriver runs the executable under test once per call to Run. Every call spawns a new
// process; nothing is reused between calls.
type ProcessDriver struct {
	// Path is the executable to run. It is started with no arguments.
	Path string

	// Timeout is the maximum time a single run may take. Zero means wait indefinitely.
	Timeout time.Duration

	// Logger receives every line the process writes, prefixed with "stdout: " or "stderr: ".
	Logger framework.Logger

	// ExcludeFromLog lists patterns for output lines that should not be passed to Logger.
	ExcludeFromLog []*regexp.Regexp
}

// Run starts the process, writes send followed by a newline to its standard input, closes the
// input, and waits for the process to exit.
//
// A non-zero exit status is not an error; it is reported in Transcript.ExitCode. If the process
// times out, Run returns whatever output was collected along with an error wrapping ErrTimeout.
func (d ProcessDriver) Run(ctx context.Context, send string) (Transcript, error) {
	logger := d.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, d.Path)
	cmd.WaitDelay = pipeCloseDelay

	var stdout, stderr bytes.Buffer
	stdoutLog := newLineLogger(logger, "stdout: ", d.ExcludeFromLog...)
	stderrLog := newLineLogger(logger, "stderr: ", d.ExcludeFromLog...)
	cmd.Stdout = io.MultiWriter(&stdout, stdoutLog)
	cmd.Stderr = io.MultiWriter(&stderr, stderrLog)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return Transcript{}, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, d.Path, err)
	}

	if err := cmd.Start(); err != nil {
		return Transcript{}, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, d.Path, err)
	}

	var g errgroup.Group
	g.Go(func() error {
		defer stdin.Close() //nolint:errcheck
		_, err := io.WriteString(stdin, send+"\n")
		return err
	})

	waitErr := cmd.Wait()
	writeErr := g.Wait()
	stdoutLog.Flush()
	stderrLog.Flush()

	transcript := Transcript{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && d.Timeout > 0 {
			return transcript, fmt.Errorf("%w after %s", ErrTimeout, d.Timeout)
		}
		return transcript, fmt.Errorf("run of %s interrupted: %w", d.Path, ctxErr)
	}

	if writeErr != nil {
		// The target is free to exit without reading all of its input.
		logger.Printf("input was not fully written: %s", writeErr)
	}
	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		logger.Printf("process exited with status %d", transcript.ExitCode)
	case errors.Is(waitErr, exec.ErrWaitDelay):
		logger.Printf("output pipes were still open %s after the process exited", pipeCloseDelay)
	default:
		return transcript, fmt.Errorf("error waiting for %s: %w", d.Path, waitErr)
	}
	return transcript, nil
}
