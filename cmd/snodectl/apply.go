package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/snodectl/snodectl/internal/config"
	"github.com/snodectl/snodectl/internal/model"
)

type applyOptions struct {
	file           string
	dryRun         bool
	nonInteractive bool
}

var applyCmdRunner = runApply

func newApplyCmd(root *rootFlags) *cobra.Command {
	opts := applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a batch reconciliation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dryRun = root.dryRun
			opts.nonInteractive = root.jsonOut || !term.IsTerminal(int(os.Stdout.Fd()))

			return applyCmdRunner(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the batch file")
	cmd.MarkFlagRequired("file") //nolint:errcheck

	return cmd
}

// runApply compiles the batch into one request per target and runs them in
// file order. The first failing target aborts the rest; targets that already
// ran keep their reports in the output.
func runApply(cmd *cobra.Command, root *rootFlags, opts applyOptions) error {
	batch, err := config.ParseBatchFile(opts.file)
	if err != nil {
		return err
	}

	requests, err := batch.Requests(opts.dryRun)
	if err != nil {
		return err
	}

	log, err := newLogger(root)
	if err != nil {
		return err
	}

	client := newControlClient(root, batch.Settings.Timeout)
	interactive := !opts.nonInteractive

	reports := make([]*model.Report, 0, len(requests))
	var runErr error
	for i, req := range requests {
		runName := fmt.Sprintf("%s (%d/%d)", batch.Name, i+1, len(requests))
		report, err := executeRequest(cmd.Context(), log, client, req, runName, interactive)
		reports = append(reports, report)
		if err != nil {
			runErr = err
			break
		}
	}

	if !interactive {
		if werr := writeBatchJSON(cmd.OutOrStdout(), batch.Name, reports, runErr); werr != nil && runErr == nil {
			runErr = werr
		}
	}
	if runErr != nil {
		return runErr
	}

	return pendingInBatch(reports)
}
