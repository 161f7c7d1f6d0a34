package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/snodectl/snodectl/internal/config"
	"github.com/snodectl/snodectl/internal/logger"
	"github.com/snodectl/snodectl/internal/model"
)

// Reconciler drives one full reconciliation pass: validate, probe, collect,
// diff, plan, apply, re-collect, report. There is no retry transition
// anywhere; every failure is terminal for the run and the partial report
// assembled so far is returned alongside the error.
type Reconciler struct {
	client ControlClient
	log    *logger.Logger
	events Publisher
}

// NewReconciler builds a reconciler around the given control client. A nil
// events publisher is replaced with a no-op one.
func NewReconciler(client ControlClient, log *logger.Logger, events Publisher) *Reconciler {
	if events == nil {
		events = NopPublisher{}
	}
	return &Reconciler{client: client, log: log, events: events}
}

// Run executes one reconciliation pass for the request and assembles its
// report. On failure the returned report carries everything observed up to
// the failing step and its phase settles at failed; the error type names the
// step that failed.
func (r *Reconciler) Run(ctx context.Context, req *config.Request) (*model.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	report := model.NewReport(uuid.NewString(), req != nil && req.DryRun)
	log := r.log.WithRun(report.RunID)

	finish := func(err error) (*model.Report, error) {
		report.Duration = time.Since(start).Seconds()
		if err != nil {
			r.setPhase(report, model.PhaseFailed)
			log.Error(err, "reconciliation failed")
			return report, err
		}
		r.setPhase(report, model.PhaseDone)
		return report, nil
	}

	r.setPhase(report, model.PhaseValidating)
	if err := config.ValidateRequest(req); err != nil {
		return finish(err)
	}

	// Every requested node is keyed in the per-node maps exactly once,
	// before any decision is computed.
	for _, node := range req.Nodes {
		report.StateChanged[node] = false
		report.ReasonChanged[node] = false
	}

	r.setPhase(report, model.PhaseProbing)
	log.Debug("probing slurm controller")
	if err := r.client.Ping(ctx); err != nil {
		return finish(err)
	}

	collector := NewCollector(r.client, req.Parallel, r.events)

	r.setPhase(report, model.PhaseCollecting)
	log.Debug("collecting node records")
	initial, err := collector.Collect(ctx, req.Nodes, false)
	if err != nil {
		return finish(err)
	}
	report.Data = initial

	if req.Desired == nil {
		log.Info("read-only pass, no desired state supplied")
		return finish(nil)
	}
	desired := *req.Desired

	r.setPhase(report, model.PhaseDiffing)
	decisions := make(map[string]model.Decision, len(req.Nodes))
	for _, node := range req.Nodes {
		decision := Diff(initial[node], desired)
		decisions[node] = decision
		report.StateChanged[node] = decision.StateChanged
		report.ReasonChanged[node] = decision.ReasonChanged
		r.events.Publish(NodeDecidedEvent{Node: node, Decision: decision})
	}

	r.setPhase(report, model.PhasePlanning)
	actions := Plan(req.Nodes, decisions, desired)
	if len(actions) == 0 {
		log.Info("all nodes already in desired state")
		return finish(nil)
	}

	r.setPhase(report, model.PhaseApplying)
	for i, action := range actions {
		report.Commands = append(report.Commands, action.Command())
		r.events.Publish(ActionStartedEvent{Index: i, Total: len(actions), Action: action, DryRun: report.DryRun})

		if report.DryRun {
			r.events.Publish(ActionCompletedEvent{Index: i, Total: len(actions), Action: action})
			continue
		}

		report.UpdateRan = true
		if err := r.client.Update(ctx, action); err != nil {
			r.events.Publish(ActionCompletedEvent{Index: i, Total: len(actions), Action: action, Err: err})
			return finish(err)
		}
		r.events.Publish(ActionCompletedEvent{Index: i, Total: len(actions), Action: action})
	}

	if report.UpdateRan {
		r.setPhase(report, model.PhaseRecollecting)
		log.Debug("re-collecting node records")
		final, err := collector.Collect(ctx, req.Nodes, true)
		if err != nil {
			return finish(err)
		}
		report.Data = final
	}

	report.Changed = report.UpdateRan
	return finish(nil)
}

func (r *Reconciler) setPhase(report *model.Report, phase model.Phase) {
	report.Phase = phase
	r.events.Publish(PhaseEvent{RunID: report.RunID, Phase: phase})
}
