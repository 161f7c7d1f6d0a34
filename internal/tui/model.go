package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snodectl/snodectl/internal/model"
)

// PhaseMsg reports a transition of the run state machine.
type PhaseMsg struct {
	Phase model.Phase
}

// NodeMsg carries one freshly queried node record.
type NodeMsg struct {
	Name    string
	Record  model.NodeRecord
	Recheck bool
}

// DecisionMsg carries the diff outcome for one node.
type DecisionMsg struct {
	Name     string
	Decision model.Decision
}

// ActionStartMsg indicates one corrective action entered the apply loop.
type ActionStartMsg struct {
	Index  int
	Total  int
	Action model.Action
	DryRun bool
}

// ActionDoneMsg indicates one corrective action settled.
type ActionDoneMsg struct {
	Index  int
	Total  int
	Action model.Action
	Err    error
}

// DoneMsg carries the final report once the run settles.
type DoneMsg struct {
	Report *model.Report
	Err    error
}

type tickMsg struct{}

// Node display statuses, in lifecycle order.
const (
	statusPending  = "pending"
	statusObserved = "observed"
	statusInSync   = "in sync"
	statusDrifted  = "drifted"
	statusApplying = "applying"
	statusPlanned  = "would update"
	statusApplied  = "applied"
	statusFailed   = "failed"
)

// Model contains the Bubbletea state for a reconciliation run.
type Model struct {
	runName   string
	nodes     []string
	records   map[string]model.NodeRecord
	statuses  map[string]string
	phase     model.Phase
	total     int
	completed int
	report    *model.Report
	err       error
	finished  bool
	cancelled bool
	dryRun    bool
	bar       progress.Model
}

// NewModel constructs a TUI model tracking the given nodes in caller order.
func NewModel(runName string, nodes []string, dryRun bool) Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30

	m := Model{
		runName:  runName,
		nodes:    append([]string(nil), nodes...),
		records:  make(map[string]model.NodeRecord, len(nodes)),
		statuses: make(map[string]string, len(nodes)),
		dryRun:   dryRun,
		bar:      bar,
	}
	for _, node := range nodes {
		m.statuses[node] = statusPending
	}
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// Finished reports whether the run has settled.
func (m Model) Finished() bool {
	return m.finished
}

// Cancelled reports whether the user interrupted the run.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Report returns the final report, or nil while the run is in flight.
func (m Model) Report() *model.Report {
	return m.report
}

// Err returns the terminal error of the run, if any.
func (m Model) Err() error {
	return m.err
}
