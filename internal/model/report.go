package model

// Phase identifies how far a reconciliation run has progressed. Every failure
// is terminal; the phase recorded on the report is where the run stopped.
type Phase string

const (
	// PhaseValidating covers input checks before any external call.
	PhaseValidating Phase = "validating"
	// PhaseProbing covers the scontrol liveness probe.
	PhaseProbing Phase = "probing"
	// PhaseCollecting covers the initial per-node state queries.
	PhaseCollecting Phase = "collecting"
	// PhaseDiffing covers per-node comparison against the desired state.
	PhaseDiffing Phase = "diffing"
	// PhasePlanning covers building the ordered corrective action list.
	PhasePlanning Phase = "planning"
	// PhaseApplying covers sequential submission of corrective actions.
	PhaseApplying Phase = "applying"
	// PhaseRecollecting covers the post-apply re-query of the full node set.
	PhaseRecollecting Phase = "recollecting"
	// PhaseDone marks a completed run.
	PhaseDone Phase = "done"
	// PhaseFailed marks a terminally failed run.
	PhaseFailed Phase = "failed"
)

// Report is the aggregate result of one reconciliation pass. Field names on
// the wire match the scontrol reconciliation contract consumed by callers:
// per-node maps always key every requested node exactly once in a completed
// report, and Changed is true only when at least one update was actually
// submitted (never under dry-run).
type Report struct {
	RunID         string          `json:"run_id"`
	Changed       bool            `json:"changed"`
	StateChanged  map[string]bool `json:"state_changed"`
	ReasonChanged map[string]bool `json:"reason_changed"`
	Commands      []string        `json:"scontrol_commands"`
	Data          Snapshot        `json:"data"`
	UpdateRan     bool            `json:"scontrol_update_ran"`
	DryRun        bool            `json:"dry_run"`
	Phase         Phase           `json:"phase"`
	Duration      float64         `json:"duration_seconds"`
}

// NewReport returns an empty report with every accumulator initialised, so a
// partially filled report from a failed run still marshals with all keys.
func NewReport(runID string, dryRun bool) *Report {
	return &Report{
		RunID:         runID,
		StateChanged:  make(map[string]bool),
		ReasonChanged: make(map[string]bool),
		Commands:      []string{},
		Data:          Snapshot{},
		DryRun:        dryRun,
		Phase:         PhaseValidating,
	}
}

// NodesNeedingAction counts nodes whose recorded decision requires an update.
func (r *Report) NodesNeedingAction() int {
	n := 0
	for name, state := range r.StateChanged {
		if state || r.ReasonChanged[name] {
			n++
		}
	}
	return n
}
