package suicli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// TimedOutExitCode is reported when the subprocess did not exit on its own.
// Real programs exit with 0-255, so the value cannot collide with a genuine
// exit status. It is also used for spawn failures (binary missing or not
// executable); the two cases are distinguished by the stderr message.
const TimedOutExitCode = -1

// CommandResult is the structured outcome of a single CLI invocation. It is
// always produced, whatever went wrong: spawn failures and timeouts are
// reported through it rather than as errors.
type CommandResult struct {
	// Success is true iff the program exited with code zero.
	Success bool

	// Stdout and Stderr are the captured streams, whitespace-trimmed.
	Stdout string
	Stderr string

	// ExitCode is the program's exit status, or TimedOutExitCode.
	ExitCode int

	// Command is the reconstructed command line, for diagnostics only.
	Command string
}

// Runner invokes the Sui CLI as a subprocess. It is stateless and safe for
// concurrent use; every invocation owns its own process handle and timer.
type Runner struct {
	bin string
	log *slog.Logger
}

// NewRunner creates a runner for the given binary. An empty bin falls back
// to DefaultBin, resolved via PATH.
func NewRunner(bin string, log *slog.Logger) *Runner {
	if bin == "" {
		bin = DefaultBin
	}
	return &Runner{bin: bin, log: log}
}

// Bin returns the configured CLI binary.
func (r *Runner) Bin() string {
	return r.bin
}

// Run executes the CLI with the given arguments, waiting up to timeout.
// Arguments are passed as discrete tokens directly to the exec syscall; no
// shell is ever involved. On timeout the subprocess is killed, not abandoned.
func (r *Runner) Run(ctx context.Context, args []string, timeout time.Duration) CommandResult {
	cmdline := strings.Join(append([]string{r.bin}, args...), " ")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.log.Debug("Executing command", "command", cmdline)
	err := cmd.Run()

	result := CommandResult{
		Stdout:  strings.TrimSpace(stdout.String()),
		Stderr:  strings.TrimSpace(stderr.String()),
		Command: cmdline,
	}

	switch {
	case err == nil:
		result.Success = true
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		result.ExitCode = TimedOutExitCode
		result.Stderr = fmt.Sprintf("command timed out after %s", timeout)
		r.log.Error("Command timed out", "command", cmdline, "timeout", timeout)
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			r.log.Warn("Command exited with failure", "command", cmdline, "returncode", result.ExitCode)
		} else {
			result.ExitCode = TimedOutExitCode
			result.Stderr = err.Error()
			r.log.Error("Failed to spawn command", "command", cmdline, "err", err)
		}
	}
	return result
}

// Version runs the CLI's version banner, used as a reachability check at
// startup.
func (r *Runner) Version(ctx context.Context) (string, error) {
	result := r.Run(ctx, []string{"--version"}, VersionCheckTimeout)
	if !result.Success {
		return "", fmt.Errorf("%s --version failed: %s", r.bin, result.Stderr)
	}
	return result.Stdout, nil
}
