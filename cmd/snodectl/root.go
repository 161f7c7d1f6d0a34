package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/snodectl/snodectl/internal/logger"
	"github.com/snodectl/snodectl/internal/scontrol"
)

type rootFlags struct {
	verbose bool
	dryRun  bool
	jsonOut bool
	bin     string
	timeout int
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "snodectl",
		Short:         "snodectl reconciles the administrative state of Slurm nodes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Report pending actions without submitting them")
	cmd.PersistentFlags().BoolVar(&flags.jsonOut, "json", false, "Write the run report as JSON to stdout")
	cmd.PersistentFlags().StringVar(&flags.bin, "scontrol-bin", scontrol.DefaultBin, "Path to the scontrol binary")
	cmd.PersistentFlags().IntVar(&flags.timeout, "timeout", int(scontrol.DefaultTimeout/time.Second), "Timeout in seconds for each scontrol call")

	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newReconcileCmd(flags))
	cmd.AddCommand(newApplyCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newLogger(flags *rootFlags) (*logger.Logger, error) {
	level := "info"
	if flags.verbose {
		level = "debug"
	}

	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: !flags.jsonOut,
	})
}

// newControlClient builds the scontrol client used by a command. A positive
// timeoutSeconds overrides the root flag, which lets batch files carry their
// own per-call budget.
func newControlClient(flags *rootFlags, timeoutSeconds int) *scontrol.Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = flags.timeout
	}

	return scontrol.NewClient(scontrol.NewExecRunner(flags.bin, time.Duration(timeoutSeconds)*time.Second))
}
