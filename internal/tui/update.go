package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snodectl/snodectl/internal/model"
)

// Update handles Bubbletea messages and advances the run display.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case PhaseMsg:
		m.phase = msg.Phase
		return m, nil
	case NodeMsg:
		m.records[msg.Name] = msg.Record
		if !msg.Recheck {
			m.statuses[msg.Name] = statusObserved
		}
		return m, nil
	case DecisionMsg:
		if msg.Decision.NeedsAction() {
			m.statuses[msg.Name] = statusDrifted
		} else {
			m.statuses[msg.Name] = statusInSync
		}
		return m, nil
	case ActionStartMsg:
		m.total = msg.Total
		if msg.DryRun {
			m.statuses[msg.Action.Node] = statusPlanned
			m.completed++
			return m, nil
		}
		m.statuses[msg.Action.Node] = statusApplying
		return m, nil
	case ActionDoneMsg:
		if m.dryRun {
			return m, nil
		}
		if msg.Err != nil {
			m.statuses[msg.Action.Node] = statusFailed
			return m, nil
		}
		m.statuses[msg.Action.Node] = statusApplied
		m.completed++
		return m, nil
	case DoneMsg:
		m.report = msg.Report
		m.err = msg.Err
		m.finished = true
		if msg.Report != nil {
			m.phase = msg.Report.Phase
		} else if msg.Err != nil {
			m.phase = model.PhaseFailed
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
