package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spuoss/aichat/internal/config"
)

// openProviderSelector enters provider selection mode with the cursor on
// the current provider.
func (m *Model) openProviderSelector() {
	m.selectingProvider = true
	m.providerCursor = 0
	for i, id := range m.registry.IDs() {
		if id == m.providerID {
			m.providerCursor = i
			break
		}
	}
}

// updateProviderSelection handles updates while the selector is open
func (m Model) updateProviderSelection(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		ids := m.registry.IDs()

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m.selectingProvider = false

		case "up", "k":
			m.providerCursor--
			if m.providerCursor < 0 {
				m.providerCursor = len(ids) - 1
			}

		case "down", "j":
			m.providerCursor++
			if m.providerCursor >= len(ids) {
				m.providerCursor = 0
			}

		case "enter":
			if m.providerCursor < len(ids) {
				m.switchProvider(ids[m.providerCursor])
			}
			m.selectingProvider = false
		}
	}

	return m, nil
}

// switchProvider changes the active provider, persists the preference, and
// starts a fresh conversation. Provider changes always reset the
// transcript: transcripts never mix providers.
func (m *Model) switchProvider(id string) {
	if id == m.providerID {
		return
	}

	m.providerID = id
	m.cfg.DefaultProvider = id
	_ = config.SaveConfig(m.cfg)

	m.textarea.Placeholder = fmt.Sprintf("Message %s...", id)
	m.resetChat()
}

// renderProviderSelector renders the provider selection overlay
func (m Model) renderProviderSelector() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	title := selectorTitleStyle.Render("Select a provider")
	title += hintStyle.Render(fmt.Sprintf("  (current: %s)", m.providerID))
	content.WriteString(title)
	content.WriteString("\n\n")

	for i, cfg := range m.registry.All() {
		cursor := "  "
		nameStyle := selectorItemStyle
		if i == m.providerCursor {
			cursor = selectorCursorStyle.Render("▸ ")
			nameStyle = selectorSelectedStyle
		}

		name := nameStyle.Render(cfg.ID)
		model := selectorValueStyle.Render(fmt.Sprintf("[%s]", cfg.Model))
		content.WriteString(fmt.Sprintf("%s%s %s\n", cursor, name, model))
	}

	content.WriteString("\n")

	shortcuts := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Select"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}
