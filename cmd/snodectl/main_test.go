package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// writeStubScontrol drops a shell script that answers ping, show and update
// the way a healthy controller would. Every node reports as IDLE with no
// reason, except drained1 which is already draining for maintenance.
func writeStubScontrol(t *testing.T) string {
	t.Helper()

	script := `#!/bin/sh
case "$1" in
ping)
    echo "Slurmctld(primary) at ctl is UP"
    ;;
--yaml)
    name="${3#node=}"
    if [ "$name" = "drained1" ]; then
        printf 'nodes:\n- name: %s\n  state:\n  - IDLE\n  - DRAIN\n  reason: maintenance\n' "$name"
    else
        printf 'nodes:\n- name: %s\n  state:\n  - IDLE\n  reason: ""\n' "$name"
    fi
    ;;
update)
    ;;
esac
exit 0
`

	path := filepath.Join(t.TempDir(), "scontrol")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "pending changes", err: &pendingChangesError{nodes: 2}, want: 1},
		{name: "validation error", err: snoderrors.NewValidationError("new_state", "bad token", nil), want: 2},
		{name: "parse error", err: snoderrors.NewParseError("batch.yaml", 3, errors.New("bad yaml")), want: 2},
		{name: "connectivity error", err: snoderrors.NewConnectivityError(errors.New("down")), want: 3},
		{name: "query error", err: snoderrors.NewQueryError("n1", errors.New("boom")), want: 3},
		{name: "generic error", err: errors.New("boom"), want: 3},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, exitCode(tc.err))
		})
	}
}
