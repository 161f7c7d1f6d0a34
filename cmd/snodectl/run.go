package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snodectl/snodectl/internal/config"
	"github.com/snodectl/snodectl/internal/engine"
	"github.com/snodectl/snodectl/internal/logger"
	"github.com/snodectl/snodectl/internal/model"
	"github.com/snodectl/snodectl/internal/tui"
)

// executeRequest runs one reconciliation pass. In interactive mode a TUI
// renders progress while the engine runs on the calling goroutine; quitting
// the TUI cancels the pass. In non-interactive mode progress goes to the
// structured log and the caller renders the report itself.
func executeRequest(ctx context.Context, log *logger.Logger, client engine.ControlClient, req *config.Request, runName string, interactive bool) (*model.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := []engine.Publisher{engine.NewLogPublisher(log)}

	var program *tea.Program
	var programErr error
	done := make(chan struct{})

	if interactive {
		modelState := tui.NewModel(runName, req.Nodes, req.DryRun)
		program = tea.NewProgram(modelState)
		events = append(events, &programPublisher{program: program})

		go func() {
			final, err := program.Run()
			programErr = err
			if m, ok := final.(tui.Model); ok && m.Cancelled() {
				cancel()
			}
			close(done)
		}()
	}

	reconciler := engine.NewReconciler(client, log, engine.NewMultiPublisher(events...))
	report, runErr := reconciler.Run(ctx, req)

	if interactive {
		program.Send(tui.DoneMsg{Report: report, Err: runErr})
		<-done
		if programErr != nil && runErr == nil {
			runErr = programErr
		}
	}

	return report, runErr
}
