package scontrol

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner("echo", 5*time.Second)
	res, err := runner.Run(context.Background(), "ping")

	require.NoError(t, err)
	require.Equal(t, "ping\n", res.Stdout)
	require.Empty(t, res.Stderr)
	require.Zero(t, res.ExitCode)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner("false", 5*time.Second)
	res, err := runner.Run(context.Background())

	require.Error(t, err)
	require.Equal(t, 1, res.ExitCode)
}

func TestExecRunnerMissingBinary(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner("definitely-not-scontrol", 5*time.Second)
	res, err := runner.Run(context.Background())

	require.Error(t, err)
	require.Equal(t, -1, res.ExitCode)
}

func TestExecRunnerTimeout(t *testing.T) {
	t.Parallel()

	runner := NewExecRunner("sleep", 100*time.Millisecond)
	_, err := runner.Run(context.Background(), "5")

	require.Error(t, err)
}
