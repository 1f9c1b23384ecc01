package ui

import (
	"fmt"
	"strings"

	"github.com/archie-linux/process-explorer/config"
	"github.com/archie-linux/process-explorer/model"
	"github.com/archie-linux/process-explorer/monitor"
)

const nameWidth = 24

func (m Model) View() string {
	if m.mode == helpMode {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderRows())
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
	}

	switch m.mode {
	case filterMode:
		b.WriteString("\n")
		b.WriteString(m.filterInput.View())
	case confirmKillMode:
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(m.killPrompt()))
	}

	return b.String()
}

func (m Model) killPrompt() string {
	if m.killName == "" {
		return fmt.Sprintf("Kill process %d? (y/n)", m.killPID)
	}
	return fmt.Sprintf("Kill process %d (%s)? (y/n)", m.killPID, m.killName)
}

func (m Model) renderTitle() string {
	return titleBarStyle.Width(m.lineWidth()).Render(titleStyle.Render("PROCESS EXPLORER"))
}

func (m Model) renderSummary() string {
	sys := m.view.System
	line := fmt.Sprintf(
		"Tasks: %d total, %d running | Load: %.2f %.2f %.2f | Uptime: %s | Mem: %.1f%%",
		m.view.Snapshot.Len(), m.view.Snapshot.Running(),
		sys.Load1, sys.Load5, sys.Load15,
		FormatUptime(sys.Uptime),
		sys.MemUsedPercent,
	)
	return summaryStyle.Render(clip(line, m.lineWidth()))
}

func (m Model) renderHeader() string {
	cfg := m.view.Config
	cpu, mem := "CPU%", "MEM%"
	if cfg.Mode == config.ListView {
		arrow := "↓"
		if !cfg.Sorter.Descending {
			arrow = "↑"
		}
		switch cfg.Sorter.Key {
		case model.SortByCPU:
			cpu += arrow
		case model.SortByMemory:
			mem += arrow
		}
	}

	header := fmt.Sprintf(" %6s %-*s %7s %7s %-9s %7s %12s %-12s",
		"PID", nameWidth, "NAME", cpu, mem, "STATUS", "THREADS", "AGE", "USER")
	return headerStyle.Render(clip(header, m.lineWidth()))
}

// renderRows draws the window of rows selected by the scroll offset.
// Every line ends with a newline.
func (m Model) renderRows() string {
	width := m.lineWidth()
	cfg := m.view.Config
	visible := m.visibleRows(cfg.ShowDetail)

	start := cfg.Scroll
	if start > len(m.view.Rows) {
		start = len(m.view.Rows)
	}
	end := start + visible
	if end > len(m.view.Rows) {
		end = len(m.view.Rows)
	}
	if end-start > model.MaxRows {
		end = start + model.MaxRows
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := m.view.Rows[i]
		b.WriteString(m.renderRow(row, i == m.view.SelectedIndex, width))
		b.WriteString("\n")
		if cfg.ShowDetail {
			b.WriteString(renderDetail(row.Record, width))
			b.WriteString("\n")
		}
	}
	// keep the footer at a stable position
	lines := end - start
	if cfg.ShowDetail {
		lines *= 2
		visible *= 2
	}
	for ; lines < visible; lines++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(row monitor.Row, selected bool, width int) string {
	r := row.Record
	line := fmt.Sprintf(" %6d %s %7.1f %7.1f %-9s %7d %12s %s",
		r.PID,
		fit(row.Branch+r.Name, nameWidth),
		r.CPU,
		r.Mem,
		clip(string(r.Status), 9),
		r.Threads,
		FormatAge(r.Age),
		fit(r.User, 12),
	)
	line = clip(line, width)

	switch {
	case selected:
		return selectedStyle.Width(width).Render(line)
	case r.CPU > hotCPU:
		return hotStyle.Render(line)
	}
	return line
}

func renderDetail(r model.ProcessRecord, width int) string {
	cmd := r.Cmdline
	if cmd == "" {
		cmd = "[" + r.Name + "]"
	}
	return detailStyle.Render(clip("    └─ "+cmd, width))
}

func (m Model) renderFooter() string {
	cfg := m.view.Config
	dir := "desc"
	if !cfg.Sorter.Descending {
		dir = "asc"
	}
	footer := fmt.Sprintf(" Sort: %s %s | Filter: %s | View: %s | Selected: %s ",
		cfg.Sorter.Key, dir, cfg.Filter, cfg.Mode, cfg.Selected)
	return footerStyle.Render(clip(footer, m.lineWidth()))
}

func (m Model) renderStatus() string {
	style := successStyle
	if m.statusError {
		style = errorStyle
	}
	return style.Render(clip(m.statusText, m.lineWidth()))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(sortedColumnStyle.Render("Keys"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString("c/m pick the sort key; pressing it again flips the direction.\n")
	b.WriteString("The filter matches process names, ignoring case.\n")
	b.WriteString("k sends SIGTERM and escalates to SIGKILL after a short grace period.\n")
	b.WriteString("\nPress esc or ? to return")
	return helpBoxStyle.Render(b.String())
}
