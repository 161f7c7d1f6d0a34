package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the run.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("snodectl • %s", m.title())))
	sections = append(sections, pendingStyle.Render(fmt.Sprintf("phase: %s", m.phaseText())))

	if m.total > 0 {
		sections = append(sections, sectionStyle.Render("Actions"), m.renderProgress())
	}

	if len(m.nodes) > 0 {
		sections = append(sections, sectionStyle.Render("Nodes"), m.renderNodes())
	}

	if summary := m.renderSummary(); strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) title() string {
	if strings.TrimSpace(m.runName) != "" {
		return m.runName
	}
	return "reconcile"
}

func (m Model) phaseText() string {
	if m.phase == "" {
		return "starting"
	}
	return string(m.phase)
}

func (m Model) renderProgress() string {
	ratio := 0.0
	if m.total > 0 {
		ratio = math.Min(1.0, float64(m.completed)/float64(m.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", m.completed, m.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", m.bar.ViewAs(ratio))
}

func (m Model) renderNodes() string {
	var lines []string
	for _, node := range m.nodes {
		line := fmt.Sprintf(" %s %s", statusIcon(m.statuses[node]), node)
		if record, ok := m.records[node]; ok {
			line = fmt.Sprintf("%s [%s]", line, strings.Join(record.State, ","))
			if strings.TrimSpace(record.Reason) != "" {
				line = fmt.Sprintf("%s %s", line, plannedStyle.Render(record.Reason))
			}
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSummary() string {
	if !m.finished {
		return ""
	}

	if m.cancelled {
		return failureStyle.Render("run cancelled")
	}

	if m.err != nil {
		return failureStyle.Render(fmt.Sprintf("run failed: %v", m.err))
	}

	if m.report == nil {
		return ""
	}

	var lines []string
	switch {
	case m.report.DryRun:
		pending := m.report.NodesNeedingAction()
		if pending > 0 {
			lines = append(lines, driftedStyle.Render(fmt.Sprintf("dry-run: %d node(s) would change", pending)))
		} else {
			lines = append(lines, inSyncStyle.Render("dry-run: all nodes already in desired state"))
		}
	case m.report.Changed:
		lines = append(lines, appliedStyle.Render(fmt.Sprintf("%d command(s) applied", len(m.report.Commands))))
	default:
		lines = append(lines, inSyncStyle.Render("no changes needed"))
	}
	lines = append(lines, pendingStyle.Render(fmt.Sprintf("completed in %.2fs", m.report.Duration)))

	return strings.Join(lines, "\n")
}

// statusIcon returns the glyph representing a node status.
func statusIcon(status string) string {
	switch status {
	case statusApplied:
		return appliedStyle.Render("✓")
	case statusApplying:
		return applyingStyle.Render("⏳")
	case statusFailed:
		return failureStyle.Render("✗")
	case statusInSync:
		return inSyncStyle.Render("=")
	case statusDrifted:
		return driftedStyle.Render("≠")
	case statusPlanned:
		return plannedStyle.Render("↻")
	case statusObserved:
		return applyingStyle.Render("·")
	default:
		return pendingStyle.Render("…")
	}
}
