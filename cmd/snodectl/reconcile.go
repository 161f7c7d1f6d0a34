package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/snodectl/snodectl/internal/config"
	"github.com/snodectl/snodectl/internal/model"
	"github.com/snodectl/snodectl/pkg/diff"
)

type reconcileOptions struct {
	state          string
	reason         string
	reasonSet      bool
	dryRun         bool
	parallel       int
	nonInteractive bool
}

var reconcileCmdRunner = runReconcile

func newReconcileCmd(root *rootFlags) *cobra.Command {
	opts := reconcileOptions{}

	cmd := &cobra.Command{
		Use:   "reconcile NODES...",
		Short: "Drive nodes to a desired administrative state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dryRun = root.dryRun
			opts.reasonSet = cmd.Flags().Changed("reason")
			opts.nonInteractive = root.jsonOut || !term.IsTerminal(int(os.Stdout.Fd()))

			return reconcileCmdRunner(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.state, "state", "", "Desired state token ("+model.TokenList()+")")
	cmd.Flags().StringVar(&opts.reason, "reason", "", "Reason recorded alongside the state change")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "Query up to N nodes concurrently (1-16)")
	cmd.MarkFlagRequired("state") //nolint:errcheck

	return cmd
}

func runReconcile(cmd *cobra.Command, root *rootFlags, opts reconcileOptions, args []string) error {
	nodes, err := config.ExpandHostlist(args)
	if err != nil {
		return err
	}

	var reason *string
	if opts.reasonSet {
		reason = &opts.reason
	}

	desired, err := config.DesiredFromArgs(opts.state, reason)
	if err != nil {
		return err
	}

	req := &config.Request{
		Nodes:    nodes,
		Desired:  desired,
		DryRun:   opts.dryRun,
		Parallel: opts.parallel,
	}

	log, err := newLogger(root)
	if err != nil {
		return err
	}

	interactive := !opts.nonInteractive
	report, runErr := executeRequest(cmd.Context(), log, newControlClient(root, 0), req, "reconcile", interactive)

	if !interactive {
		if werr := writeReportJSON(cmd.OutOrStdout(), report, runErr); werr != nil && runErr == nil {
			runErr = werr
		}
	}
	if runErr != nil {
		return runErr
	}

	if interactive && report.DryRun {
		renderDriftPreview(cmd.OutOrStdout(), req, report)
	}

	return pendingIfDryRun(report)
}

// renderDriftPreview prints a unified diff of each drifted node's observed
// record against the record the pending update asks for. The desired side
// keeps the observed token set and adds the requested token, which is how
// additive flags such as DRAIN land on a node.
func renderDriftPreview(w io.Writer, req *config.Request, report *model.Report) {
	for _, name := range req.Nodes {
		if !report.StateChanged[name] && !report.ReasonChanged[name] {
			continue
		}

		observed, ok := report.Data[name]
		if !ok {
			continue
		}

		target := observed
		if !target.HasState(req.Desired.State) {
			states := make([]string, 0, len(observed.State)+1)
			states = append(states, observed.State...)
			states = append(states, string(req.Desired.State))
			target.State = states
		}
		target.Reason = req.Desired.ReasonText()

		before, err := yaml.Marshal(observed)
		if err != nil {
			continue
		}
		after, err := yaml.Marshal(target)
		if err != nil {
			continue
		}

		if text := diff.Unified(before, after, name+" (observed)", name+" (desired)"); text != "" {
			fmt.Fprintln(w, text)
		}
	}
}
