package scontrol

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snodectl/snodectl/internal/model"
	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

const showNodeFixture = `nodes:
- architecture: x86_64
  burstbuffer_network_address: ''
  boards: 1
  cores: 8
  cpus: 16
  hostname: n2
  name: n2
  operating_system: Linux 5.14.0-362.8.1.el9_3.x86_64
  partitions:
  - compute
  state:
  - IDLE
  - DRAIN
  reason: weekly maintenance
  reason_changed_at: 1724000000
  reason_set_by_user: root
  slurmd_version: 23.02.7
meta:
  slurm:
    version:
      major: '23'
      minor: '02'
`

type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	respond func(args []string) (Result, error)
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, args)
	f.mu.Unlock()
	return f.respond(args)
}

func TestClientPing(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stdout: "Slurmctld(primary) at ctl is UP"}, nil
	}}
	client := NewClient(runner)

	require.NoError(t, client.Ping(context.Background()))
	require.Equal(t, [][]string{{"ping"}}, runner.calls)
}

func TestClientPingFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stderr: "slurm_ping error: Unable to contact slurm controller", ExitCode: 1},
			errors.New("exit status 1")
	}}
	client := NewClient(runner)

	err := client.Ping(context.Background())
	require.Error(t, err)

	var connErr *snoderrors.ConnectivityError
	require.ErrorAs(t, err, &connErr)
	require.Contains(t, err.Error(), "Unable to contact slurm controller")
}

func TestClientShowNode(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stdout: showNodeFixture}, nil
	}}
	client := NewClient(runner)

	record, err := client.ShowNode(context.Background(), "n2")
	require.NoError(t, err)
	require.Equal(t, "n2", record.Name)
	require.Equal(t, []string{"IDLE", "DRAIN"}, record.State)
	require.Equal(t, "weekly maintenance", record.Reason)
	require.Equal(t, [][]string{{"--yaml", "show", "node=n2"}}, runner.calls)
}

func TestClientShowNodeEmptyReason(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stdout: "nodes:\n- name: n7\n  state:\n  - IDLE\n  reason: ''\n"}, nil
	}}
	client := NewClient(runner)

	record, err := client.ShowNode(context.Background(), "n7")
	require.NoError(t, err)
	require.Equal(t, []string{"IDLE"}, record.State)
	require.Empty(t, record.Reason)
}

func TestClientShowNodeCommandFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stderr: "Invalid node name specified", ExitCode: 1}, errors.New("exit status 1")
	}}
	client := NewClient(runner)

	_, err := client.ShowNode(context.Background(), "ghost")
	require.Error(t, err)

	var queryErr *snoderrors.QueryError
	require.ErrorAs(t, err, &queryErr)
	require.Equal(t, "ghost", queryErr.Node)
	require.Contains(t, err.Error(), "Invalid node name specified")
}

func TestClientShowNodeBadYAML(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stdout: "nodes: [unclosed"}, nil
	}}
	client := NewClient(runner)

	_, err := client.ShowNode(context.Background(), "n2")
	require.Error(t, err)

	var queryErr *snoderrors.QueryError
	require.ErrorAs(t, err, &queryErr)
	require.Contains(t, err.Error(), "decoding scontrol response")
}

func TestClientShowNodeNoRecord(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stdout: "nodes: []\n"}, nil
	}}
	client := NewClient(runner)

	_, err := client.ShowNode(context.Background(), "n9")
	require.Error(t, err)

	var queryErr *snoderrors.QueryError
	require.ErrorAs(t, err, &queryErr)
	require.Contains(t, err.Error(), "no record for node n9")
}

func TestClientUpdate(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{}, nil
	}}
	client := NewClient(runner)

	action := model.Action{Node: "n2", State: model.StateDrain, Reason: "weekly maintenance"}
	require.NoError(t, client.Update(context.Background(), action))
	require.Equal(t, [][]string{{"update", "node=n2", "state=DRAIN", "reason=weekly maintenance"}}, runner.calls)
}

func TestClientUpdateFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{respond: func(args []string) (Result, error) {
		return Result{Stderr: "slurm_update error: Invalid node state specified", ExitCode: 1},
			errors.New("exit status 1")
	}}
	client := NewClient(runner)

	action := model.Action{Node: "n2", State: model.StateDrain, Reason: "weekly maintenance"}
	err := client.Update(context.Background(), action)
	require.Error(t, err)

	var cmdErr *snoderrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, "n2", cmdErr.Node)
	require.Equal(t, 1, cmdErr.ExitCode)
	require.Equal(t, action.Command(), cmdErr.Command)
	require.Contains(t, cmdErr.Stderr, "Invalid node state specified")
}
