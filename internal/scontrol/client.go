package scontrol

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/snodectl/snodectl/internal/model"
	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

// Client is the adapter over the scontrol command surface: a liveness probe,
// a per-node structured query, and a state update. It never retries; retry
// policy, if any, belongs to callers.
type Client struct {
	runner Runner
}

// NewClient builds a client on top of the given runner.
func NewClient(runner Runner) *Client {
	return &Client{runner: runner}
}

// Ping probes the slurm controller. A failed probe means the controller is
// unreachable and the whole run must stop before any node is queried.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.runner.Run(ctx, "ping")
	if err != nil {
		return snoderrors.NewConnectivityError(withStderr(err, res))
	}
	return nil
}

// showNodeDocument mirrors the subset of `scontrol --yaml show node` output
// the reconciler reads. scontrol emits many more fields per node; they are
// ignored on decode.
type showNodeDocument struct {
	Nodes []showNodeEntry `yaml:"nodes"`
}

type showNodeEntry struct {
	Name   string   `yaml:"name"`
	State  []string `yaml:"state"`
	Reason string   `yaml:"reason"`
}

// ShowNode queries one node and parses the YAML response into a record.
// A non-success exit, an undecodable response, or a response naming no nodes
// all surface as a query failure for that node.
func (c *Client) ShowNode(ctx context.Context, name string) (model.NodeRecord, error) {
	res, err := c.runner.Run(ctx, "--yaml", "show", "node="+name)
	if err != nil {
		return model.NodeRecord{}, snoderrors.NewQueryError(name, withStderr(err, res))
	}

	var doc showNodeDocument
	if err := yaml.Unmarshal([]byte(res.Stdout), &doc); err != nil {
		return model.NodeRecord{}, snoderrors.NewQueryError(name, fmt.Errorf("decoding scontrol response: %w", err))
	}

	if len(doc.Nodes) == 0 {
		return model.NodeRecord{}, snoderrors.NewQueryError(name, fmt.Errorf("scontrol returned no record for node %s", name))
	}

	entry := doc.Nodes[0]
	record := model.NodeRecord{
		Name:   entry.Name,
		State:  entry.State,
		Reason: entry.Reason,
	}
	if record.Name == "" {
		record.Name = name
	}

	return record, nil
}

// Update submits one corrective action. The textual command form is reported
// back on failure exactly as it appears in the run report.
func (c *Client) Update(ctx context.Context, action model.Action) error {
	res, err := c.runner.Run(ctx, action.Args()...)
	if err != nil {
		return snoderrors.NewCommandError(action.Node, action.Command(), res.ExitCode, res.Stderr, err)
	}
	return nil
}

func withStderr(err error, res Result) error {
	if res.Stderr != "" {
		return fmt.Errorf("%w: %s", err, res.Stderr)
	}
	return err
}
