package model

import "fmt"

// Decision is the per-node outcome of comparing an observed record against
// the desired state. A node needs no action only when both flags are false.
type Decision struct {
	StateChanged  bool
	ReasonChanged bool
}

// NeedsAction reports whether the node requires a corrective update.
func (d Decision) NeedsAction() bool {
	return d.StateChanged || d.ReasonChanged
}

// Action is one corrective scontrol update: its textual and argv forms are
// fully determined by the node, token and reason fields.
type Action struct {
	Node   string
	State  StateToken
	Reason string
}

// Command renders the action exactly as it is reported in scontrol_commands.
func (a Action) Command() string {
	return fmt.Sprintf("scontrol update node=%s state=%s reason=%q", a.Node, a.State, a.Reason)
}

// Args returns the update arguments passed to the scontrol binary. The reason
// is a single argument, so no shell quoting is involved.
func (a Action) Args() []string {
	return []string{"update", "node=" + a.Node, "state=" + string(a.State), "reason=" + a.Reason}
}
