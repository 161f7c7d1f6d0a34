package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snodectl/snodectl/internal/config"
	"github.com/snodectl/snodectl/internal/engine"
	"github.com/snodectl/snodectl/internal/model"
)

type showOptions struct {
	parallel int
}

var showCmdRunner = runShow

func newShowCmd(root *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show NODES...",
		Short: "Show the administrative state of nodes without changing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCmdRunner(cmd, root, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.parallel, "parallel", 0, "Query up to N nodes concurrently (1-16)")

	return cmd
}

func runShow(cmd *cobra.Command, root *rootFlags, opts *showOptions, args []string) error {
	nodes, err := config.ExpandHostlist(args)
	if err != nil {
		return err
	}

	req := &config.Request{Nodes: nodes, Parallel: opts.parallel}

	log, err := newLogger(root)
	if err != nil {
		return err
	}

	reconciler := engine.NewReconciler(newControlClient(root, 0), log, engine.NewLogPublisher(log))
	report, runErr := reconciler.Run(cmd.Context(), req)

	if root.jsonOut {
		if werr := writeReportJSON(cmd.OutOrStdout(), report, runErr); werr != nil && runErr == nil {
			runErr = werr
		}
		return runErr
	}
	if runErr != nil {
		return runErr
	}

	renderNodeTable(cmd, nodes, report)
	return nil
}

func renderNodeTable(cmd *cobra.Command, nodes []string, report *model.Report) {
	out := cmd.OutOrStdout()
	for _, name := range nodes {
		record, ok := report.Data[name]
		if !ok {
			continue
		}

		reason := record.Reason
		if reason == "" {
			reason = "(none)"
		}
		fmt.Fprintf(out, "%-16s %-24s %s\n", name, strings.Join(record.State, ","), reason)
	}
}
