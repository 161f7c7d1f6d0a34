package config

import (
	"fmt"

	"github.com/snodectl/snodectl/internal/model"
	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

// Request captures the inputs of one reconciliation pass after front-end
// parsing: the flat node list, the optional target state, and execution
// modifiers. A nil Desired makes the run read-only.
type Request struct {
	Nodes    []string            `validate:"required,min=1,dive,node_name"`
	Desired  *model.DesiredState `validate:"omitempty"`
	DryRun   bool
	Parallel int `validate:"omitempty,min=1,max=16"`
}

// ReadOnly reports whether the pass only observes state.
func (r *Request) ReadOnly() bool {
	return r.Desired == nil
}

// Batch is a multi-target reconciliation document loaded from disk.
type Batch struct {
	Version  string        `yaml:"version" validate:"required,semver"`
	Name     string        `yaml:"name" validate:"required,min=1,max=100"`
	Settings BatchSettings `yaml:"settings,omitempty"`
	Targets  []BatchTarget `yaml:"targets" validate:"required,min=1,dive"`
}

// BatchSettings holds execution parameters shared by every target.
type BatchSettings struct {
	Parallel int `yaml:"parallel,omitempty" validate:"omitempty,min=1,max=16"`
	Timeout  int `yaml:"timeout,omitempty" validate:"omitempty,min=1,max=3600"`
}

// BatchTarget maps one node group to one desired state. Node entries may be
// hostlist expressions; they are expanded when the batch is compiled into
// requests. An empty reason means no reason is set for the target.
type BatchTarget struct {
	Nodes  []string `yaml:"nodes" validate:"required,min=1,dive,hostlist"`
	State  string   `yaml:"state" validate:"required,state_token"`
	Reason string   `yaml:"reason,omitempty"`
}

// Requests compiles the batch into one runnable request per target, expanding
// hostlists and resolving each desired state. Targets keep file order.
func (b *Batch) Requests(dryRun bool) ([]*Request, error) {
	requests := make([]*Request, 0, len(b.Targets))

	for i, target := range b.Targets {
		nodes, err := ExpandHostlist(target.Nodes)
		if err != nil {
			return nil, snoderrors.NewValidationError(fieldForTarget(i, "nodes"), err.Error(), err)
		}

		var reason *string
		if target.Reason != "" {
			value := target.Reason
			reason = &value
		}

		desired, err := DesiredFromArgs(target.State, reason)
		if err != nil {
			return nil, snoderrors.NewValidationError(fmt.Sprintf("targets[%d]", i), err.Error(), err)
		}

		req := &Request{
			Nodes:    nodes,
			Desired:  desired,
			DryRun:   dryRun,
			Parallel: b.Settings.Parallel,
		}
		if err := ValidateRequest(req); err != nil {
			return nil, snoderrors.NewValidationError(fmt.Sprintf("targets[%d]", i), err.Error(), err)
		}

		requests = append(requests, req)
	}

	return requests, nil
}
