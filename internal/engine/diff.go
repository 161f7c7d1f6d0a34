package engine

import (
	"github.com/snodectl/snodectl/internal/model"
)

// Diff compares one observed record against the desired state.
//
// The state check is a membership test, not equality: a node carrying
// IDLE+DRAIN already holds the DRAIN target. The reason check is an exact
// string comparison against the desired reason's textual form, so an unset
// desired reason compares as the literal "None" (see model.UnsetReasonText).
func Diff(observed model.NodeRecord, desired model.DesiredState) model.Decision {
	return model.Decision{
		StateChanged:  !observed.HasState(desired.State),
		ReasonChanged: desired.ReasonText() != observed.Reason,
	}
}
