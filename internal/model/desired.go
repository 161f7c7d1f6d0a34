package model

// UnsetReasonText is the textual form of a reason that was never supplied.
// An absent reason still participates in comparison and in issued updates as
// this literal, so existing playbooks keep seeing the exact reason strings
// they were written against.
const UnsetReasonText = "None"

// DesiredState is the caller's target for every node in the run: one
// administrative token plus an optional reason. A nil Reason means the caller
// supplied none, which is distinct from an explicit empty string.
type DesiredState struct {
	State  StateToken
	Reason *string
}

// ReasonText returns the reason string as it is compared against observed
// records and submitted to scontrol.
func (d DesiredState) ReasonText() string {
	if d.Reason == nil {
		return UnsetReasonText
	}
	return *d.Reason
}
