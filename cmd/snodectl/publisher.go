package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snodectl/snodectl/internal/engine"
	"github.com/snodectl/snodectl/internal/tui"
)

// programPublisher forwards engine events to a running bubbletea program.
// Send is safe for concurrent use, so parallel collection may publish from
// its worker goroutines directly.
type programPublisher struct {
	program *tea.Program
}

func (p *programPublisher) Publish(event engine.Event) {
	if msg := messageForEvent(event); msg != nil {
		p.program.Send(msg)
	}
}

func messageForEvent(event engine.Event) tea.Msg {
	switch e := event.(type) {
	case engine.PhaseEvent:
		return tui.PhaseMsg{Phase: e.Phase}
	case engine.NodeCollectedEvent:
		return tui.NodeMsg{Name: e.Node, Record: e.Record, Recheck: e.Recheck}
	case engine.NodeDecidedEvent:
		return tui.DecisionMsg{Name: e.Node, Decision: e.Decision}
	case engine.ActionStartedEvent:
		return tui.ActionStartMsg{Index: e.Index, Total: e.Total, Action: e.Action, DryRun: e.DryRun}
	case engine.ActionCompletedEvent:
		return tui.ActionDoneMsg{Index: e.Index, Total: e.Total, Action: e.Action, Err: e.Err}
	}

	return nil
}
