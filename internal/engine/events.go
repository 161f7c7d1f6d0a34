package engine

import (
	"github.com/snodectl/snodectl/internal/logger"
	"github.com/snodectl/snodectl/internal/model"
)

const (
	// EventPhaseChanged is emitted on every transition of the run state machine.
	EventPhaseChanged = "run.phase"
	// EventNodeCollected is emitted after each successful node query.
	EventNodeCollected = "node.collected"
	// EventNodeDecided is emitted after diffing one node against the target.
	EventNodeDecided = "node.decided"
	// EventActionStarted is emitted before an action is recorded or submitted.
	EventActionStarted = "action.started"
	// EventActionCompleted is emitted once an action settles.
	EventActionCompleted = "action.completed"
)

// Event is one observable occurrence within a reconciliation run.
type Event interface {
	EventType() string
}

// Publisher receives run events. Dispatch is synchronous so downstream
// consumers observe events in emission order; implementations must be safe
// for concurrent use because node collection may run in parallel.
type Publisher interface {
	Publish(event Event)
}

// PhaseEvent marks a transition of the run state machine.
type PhaseEvent struct {
	RunID string
	Phase model.Phase
}

func (PhaseEvent) EventType() string { return EventPhaseChanged }

// NodeCollectedEvent carries one freshly queried record. Recheck is true for
// the post-apply collection pass.
type NodeCollectedEvent struct {
	Node    string
	Record  model.NodeRecord
	Recheck bool
}

func (NodeCollectedEvent) EventType() string { return EventNodeCollected }

// NodeDecidedEvent carries the diff outcome for one node.
type NodeDecidedEvent struct {
	Node     string
	Decision model.Decision
}

func (NodeDecidedEvent) EventType() string { return EventNodeDecided }

// ActionStartedEvent marks one action entering the apply loop. Under dry-run
// the action is recorded but never submitted.
type ActionStartedEvent struct {
	Index  int
	Total  int
	Action model.Action
	DryRun bool
}

func (ActionStartedEvent) EventType() string { return EventActionStarted }

// ActionCompletedEvent marks one action leaving the apply loop. Err is nil
// unless the submission failed, which also aborts the run.
type ActionCompletedEvent struct {
	Index  int
	Total  int
	Action model.Action
	Err    error
}

func (ActionCompletedEvent) EventType() string { return EventActionCompleted }

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

// MultiPublisher fans events out to several publishers in order.
type MultiPublisher struct {
	publishers []Publisher
}

// NewMultiPublisher builds a fan-out publisher. Nil entries are skipped.
func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	kept := make([]Publisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			kept = append(kept, p)
		}
	}
	return &MultiPublisher{publishers: kept}
}

func (m *MultiPublisher) Publish(event Event) {
	for _, p := range m.publishers {
		p.Publish(event)
	}
}

// LogPublisher mirrors run events into the structured log so non-interactive
// runs keep a machine-readable trace of the run's progression.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher builds a publisher writing to the given logger.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (l *LogPublisher) Publish(event Event) {
	switch e := event.(type) {
	case PhaseEvent:
		l.log.WithFields(map[string]any{"run_id": e.RunID, "phase": string(e.Phase)}).
			Debug("phase changed")
	case NodeCollectedEvent:
		l.log.WithFields(map[string]any{
			"node":    e.Node,
			"state":   e.Record.State,
			"reason":  e.Record.Reason,
			"recheck": e.Recheck,
		}).Debug("node collected")
	case NodeDecidedEvent:
		l.log.WithFields(map[string]any{
			"node":           e.Node,
			"state_changed":  e.Decision.StateChanged,
			"reason_changed": e.Decision.ReasonChanged,
		}).Debug("node decided")
	case ActionStartedEvent:
		l.log.WithFields(map[string]any{
			"node":    e.Action.Node,
			"command": e.Action.Command(),
			"dry_run": e.DryRun,
		}).Info("applying action")
	case ActionCompletedEvent:
		if e.Err != nil {
			l.log.WithNode(e.Action.Node).Error(e.Err, "action failed")
			return
		}
		l.log.WithNode(e.Action.Node).Debug("action completed")
	}
}
