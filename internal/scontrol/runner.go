package scontrol

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultBin is the scontrol binary resolved via PATH.
	DefaultBin = "scontrol"

	// DefaultTimeout bounds one scontrol invocation. The control daemon
	// answers in milliseconds when healthy; a slow answer means trouble.
	DefaultTimeout = 30 * time.Second
)

// Result captures the output of one scontrol invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner invokes the scontrol binary and reports its output. Tests swap in a
// scripted implementation.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// ExecRunner runs scontrol as a subprocess, bounding every call with a
// per-invocation timeout.
type ExecRunner struct {
	Bin     string
	Timeout time.Duration
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner builds a runner for the given binary. Empty bin or a
// non-positive timeout fall back to the defaults.
func NewExecRunner(bin string, timeout time.Duration) *ExecRunner {
	return &ExecRunner{Bin: bin, Timeout: timeout}
}

func (r *ExecRunner) Run(ctx context.Context, args ...string) (Result, error) {
	bin := r.Bin
	if bin == "" {
		bin = DefaultBin
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	result := Result{
		Stdout: stdoutBuf.String(),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result, err
}
