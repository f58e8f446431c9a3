package engine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/panicreport/internal/crash"
)

// UnknownVersion is reported when the engine cannot tell its version.
const UnknownVersion = "unknown"

// Config holds how the engine binary is invoked.
type Config struct {
	// Path is the engine binary, resolved through PATH when not absolute.
	Path string

	// Timeout bounds a single engine run. Zero disables it.
	Timeout time.Duration

	// VersionArgs are passed to the engine to print its version.
	// Default: ["--version"]
	VersionArgs []string

	// Env is appended to the current process environment.
	Env []string

	// Stdout and Stderr receive the engine's output while it runs.
	// Default: os.Stdout / os.Stderr
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes the engine via os/exec.
type Runner struct {
	config Config
	logger *zap.Logger
}

// NewRunner creates a runner. A nil logger is replaced with a no-op one.
func NewRunner(config Config, logger *zap.Logger) *Runner {
	if len(config.VersionArgs) == 0 {
		config.VersionArgs = []string{"--version"}
	}
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: config, logger: logger}
}

// Run executes the engine with args. See the package documentation for the
// meaning of the returned error.
func (r *Runner) Run(ctx context.Context, args []string) error {
	command := append([]string{r.config.Path}, args...)
	start := time.Now()

	r.logger.Info("starting engine",
		zap.Strings("command", command),
		zap.Duration("timeout", r.config.Timeout),
	)

	runCtx := ctx
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, r.config.Path, args...)
	cmd.Env = append(os.Environ(), r.config.Env...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return &ExecutionError{Command: command, ExitCode: -1, Err: err}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return &ExecutionError{Command: command, ExitCode: -1, Err: err}
	}

	if err := cmd.Start(); err != nil {
		return &ExecutionError{Command: command, ExitCode: -1, Err: err}
	}

	var stderrBuf bytes.Buffer
	var g errgroup.Group
	g.Go(func() error {
		_, err := io.Copy(r.config.Stdout, stdoutPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(io.MultiWriter(&stderrBuf, r.config.Stderr), stderrPipe)
		return err
	})

	// Pipes must be drained before Wait closes them.
	copyErr := g.Wait()
	waitErr := cmd.Wait()
	stderr := stderrBuf.String()

	exitCode, signal := exitStatus(cmd)

	r.logger.Debug("engine exited",
		zap.Strings("command", command),
		zap.Duration("duration", time.Since(start)),
		zap.Int("exit_code", exitCode),
		zap.String("signal", signal),
		zap.Int("stderr_size", len(stderr)),
	)

	if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		return &TimeoutError{Command: command, Timeout: r.config.Timeout.String()}
	}

	if waitErr == nil {
		if crash.IsPanic(stderr) {
			// Panicked but still exited 0; treat it as the crash it is.
			return crash.FromStderr(stderr, command, 0, "")
		}
		if copyErr != nil {
			r.logger.Warn("engine output copy failed", zap.Error(copyErr))
		}
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		return &ExecutionError{Command: command, ExitCode: exitCode, Stderr: stderr, Err: waitErr}
	}

	// A signal from our own context cancellation is not a crash.
	if signal != "" && ctx.Err() != nil {
		return &ExecutionError{Command: command, ExitCode: exitCode, Stderr: stderr, Err: ctx.Err()}
	}

	if signal != "" || crash.IsPanic(stderr) {
		failure := crash.FromStderr(stderr, command, exitCode, signal)
		r.logger.Info("engine crashed",
			zap.Int("exit_code", exitCode),
			zap.String("signal", signal),
		)
		return failure
	}

	return &ExecutionError{Command: command, ExitCode: exitCode, Stderr: stderr}
}

// exitStatus extracts the exit code and terminating signal name.
func exitStatus(cmd *exec.Cmd) (int, string) {
	if cmd.ProcessState == nil {
		return -1, ""
	}
	if status, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return -1, status.Signal().String()
	}
	return cmd.ProcessState.ExitCode(), ""
}

// Version asks the engine for its version and returns the first non-empty
// output line, or UnknownVersion when the engine cannot be queried.
func (r *Runner) Version(ctx context.Context) string {
	versionCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(versionCtx, r.config.Path, r.config.VersionArgs...)
	cmd.Env = append(os.Environ(), r.config.Env...)

	out, err := cmd.Output()
	if err != nil {
		r.logger.Debug("engine version query failed",
			zap.String("path", r.config.Path),
			zap.Error(err),
		)
		return UnknownVersion
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line
		}
	}
	return UnknownVersion
}
