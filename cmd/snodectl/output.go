package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/snodectl/snodectl/internal/model"
)

// pendingChangesError marks a dry-run that found out-of-sync nodes. It maps
// to its own exit status so scripts can tell "clean" from "would change".
type pendingChangesError struct {
	nodes int
}

func (e *pendingChangesError) Error() string {
	return fmt.Sprintf("dry-run: %d node(s) would change", e.nodes)
}

// reportDocument is the JSON shape written to stdout for a single run.
// Failed and Msg appear only when the run aborted.
type reportDocument struct {
	*model.Report
	Failed bool   `json:"failed,omitempty"`
	Msg    string `json:"msg,omitempty"`
}

func writeReportJSON(w io.Writer, report *model.Report, runErr error) error {
	doc := reportDocument{Report: report}
	if runErr != nil {
		doc.Failed = true
		doc.Msg = runErr.Error()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// batchDocument is the JSON shape written to stdout for an apply run, one
// report per executed target.
type batchDocument struct {
	Name    string          `json:"name"`
	Changed bool            `json:"changed"`
	Runs    []*model.Report `json:"runs"`
	Failed  bool            `json:"failed,omitempty"`
	Msg     string          `json:"msg,omitempty"`
}

func writeBatchJSON(w io.Writer, name string, reports []*model.Report, runErr error) error {
	doc := batchDocument{Name: name, Runs: reports}
	for _, report := range reports {
		if report != nil && report.Changed {
			doc.Changed = true
		}
	}
	if runErr != nil {
		doc.Failed = true
		doc.Msg = runErr.Error()
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

func pendingIfDryRun(report *model.Report) error {
	if report == nil || !report.DryRun {
		return nil
	}

	if n := report.NodesNeedingAction(); n > 0 {
		return &pendingChangesError{nodes: n}
	}
	return nil
}

func pendingInBatch(reports []*model.Report) error {
	pending := 0
	for _, report := range reports {
		if report != nil && report.DryRun {
			pending += report.NodesNeedingAction()
		}
	}

	if pending > 0 {
		return &pendingChangesError{nodes: pending}
	}
	return nil
}
