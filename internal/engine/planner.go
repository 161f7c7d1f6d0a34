package engine

import (
	"github.com/snodectl/snodectl/internal/model"
)

// Plan builds the ordered list of corrective actions, one per node whose
// decision requires action, preserving the caller-supplied node order.
//
// Every action carries the full desired reason even when only the state token
// differed: scontrol update sets state and reason together, so submitting
// both keeps the node's reason from silently diverging.
func Plan(nodes []string, decisions map[string]model.Decision, desired model.DesiredState) []model.Action {
	var actions []model.Action

	for _, node := range nodes {
		if !decisions[node].NeedsAction() {
			continue
		}
		actions = append(actions, model.Action{
			Node:   node,
			State:  desired.State,
			Reason: desired.ReasonText(),
		})
	}

	return actions
}
