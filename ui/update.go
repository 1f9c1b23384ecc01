package ui

import (
	"fmt"

	"github.com/archie-linux/process-explorer/monitor"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.refresh()
		return m, nil

	case updateMsg:
		m.view = m.engine.Present(monitor.Update(msg))
		if msg.Err != nil {
			m.statusText = fmt.Sprintf("Capture failed: %v", msg.Err)
			m.statusError = true
		}
		return m, nil

	case killResultMsg:
		m.refresh()
		return m, m.showStatus(killStatus(msg))

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		return m, nil
	}

	if m.mode == filterMode {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case normalMode:
		return m.handleNormalMode(msg)
	case filterMode:
		return m.handleFilterMode(msg)
	case confirmKillMode:
		return m.handleConfirmKill(msg)
	case helpMode:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.mode = helpMode
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = filterMode
		m.prevFilter = m.view.Config.Filter
		m.filterInput.SetValue(m.prevFilter)
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()
	}

	cmd, ok := m.keys.command(msg)
	if !ok {
		return m, nil
	}

	effect := m.engine.OnKey(cmd)
	if effect.Quit {
		return m, tea.Quit
	}
	if effect.Kill.Valid {
		m.killPID = effect.Kill.PID
		m.killName = ""
		if r, ok := m.view.Snapshot.Lookup(m.killPID); ok {
			m.killName = r.Name
		}
		m.mode = confirmKillMode
		return m, nil
	}

	m.refresh()
	return m, nil
}

// handleFilterMode applies the filter while typing; esc restores the
// filter that was active before.
func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = normalMode
		m.filterInput.Blur()
		m.setFilter(m.prevFilter)
		return m, nil
	case "enter":
		m.mode = normalMode
		m.filterInput.Blur()
		m.setFilter(m.filterInput.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.setFilter(m.filterInput.Value())
	return m, cmd
}

func (m *Model) setFilter(filter string) {
	m.engine.OnKey(monitor.Command{Kind: monitor.CmdSetFilter, Filter: filter})
	m.refresh()
}

func (m Model) handleConfirmKill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = normalMode
		m.statusText = fmt.Sprintf("Terminating PID %d...", m.killPID)
		m.statusError = false
		return m, m.terminate(m.killPID)

	case "n", "N", "esc", "q":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = normalMode
		m.help.ShowAll = false
		return m, nil
	}
	return m, nil
}

// terminate runs the terminator off the event loop; the grace wait
// would otherwise freeze the UI.
func (m Model) terminate(pid int32) tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		outcome, err := engine.Terminate(ctx, pid)
		return killResultMsg{pid: pid, outcome: outcome, err: err}
	}
}

func killStatus(msg killResultMsg) (string, bool) {
	if msg.err != nil {
		return fmt.Sprintf("Error: PID %d: %v", msg.pid, msg.err), true
	}
	switch {
	case msg.outcome.Succeeded():
		return fmt.Sprintf("PID %d %s", msg.pid, msg.outcome), false
	default:
		return fmt.Sprintf("Could not kill PID %d: %s", msg.pid, msg.outcome), true
	}
}

func (m Model) showStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
