package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spuoss/aichat/internal/api"
	"github.com/spuoss/aichat/internal/config"
	apierrors "github.com/spuoss/aichat/internal/errors"
	"github.com/spuoss/aichat/internal/history"
	"github.com/spuoss/aichat/internal/models"
	"github.com/spuoss/aichat/internal/providers"
	"github.com/spuoss/aichat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Message types for the TUI
type (
	responseMsg struct {
		reply string
	}
	errMsg struct {
		err error
	}
)

// KeyLookup resolves the API key for a provider.
type KeyLookup func(providerID string) (string, error)

// Model represents the TUI state
type Model struct {
	runner     *api.Runner
	registry   *providers.Registry
	transcript *api.Transcript
	cfg        config.Config
	providerID string
	keys       KeyLookup

	// History persistence (nil store disables it)
	store        *history.Store
	conversation *history.Conversation

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	messages       []chatMessage
	loading        bool
	ready          bool
	err            error
	animationFrame int

	// Provider selection state
	selectingProvider bool
	providerCursor    int

	// Dimensions
	width  int
	height int
}

// chatMessage represents a message shown in the chat viewport
type chatMessage struct {
	role    string // "user" or "assistant"
	content string
}

// NewChatModel creates a new chat TUI model. The runner performs all
// network I/O; the store is optional and enables conversation persistence.
// A nil keys lookup falls back to the credential store.
func NewChatModel(runner *api.Runner, cfg config.Config, store *history.Store, keys KeyLookup) Model {
	if keys == nil {
		keys = config.APIKey
	}
	ta := textarea.New()
	ta.Placeholder = fmt.Sprintf("Message %s...", cfg.DefaultProvider)
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		runner:     runner,
		registry:   runner.Registry(),
		transcript: api.NewTranscript(cfg.SystemPrompt),
		cfg:        cfg,
		providerID: cfg.DefaultProvider,
		keys:       keys,
		store:      store,
		textarea:   ta,
		spinner:    s,
		messages:   []chatMessage{},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selectingProvider {
		return m.updateProviderSelection(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 1 // Status bar
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.loading {
				// The request itself cannot be cancelled; the timeout
				// bounds it. Only the indicator is dismissed.
				m.loading = false
			} else {
				return m, tea.Quit
			}

		case "enter":
			if !m.loading && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
					return m, tea.Quit
				}

				if input == "/new" {
					m.textarea.Reset()
					m.resetChat()
					return m, nil
				}

				if input == "/provider" || input == "/providers" {
					m.textarea.Reset()
					m.openProviderSelector()
					return m, nil
				}

				return m.submit(input)
			}
		}

	case responseMsg:
		m.loading = false
		m.transcript.AppendAssistant(msg.reply)
		m.messages = append(m.messages, chatMessage{
			role:    models.RoleAssistant,
			content: msg.reply,
		})
		m.persistMessage(models.RoleAssistant, msg.reply)
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		// Terminal for this request; input is re-enabled and the
		// transcript keeps only the turns appended before submission.
		m.loading = false
		m.err = msg.err

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Update child components - only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit validates preconditions, records the user turn, and starts the
// request worker. The user-turn append happens before submission, and the
// busy gate comes first: while an outcome is pending nothing may touch the
// transcript, even if Esc has dismissed the loading indicator.
func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	if m.runner.Busy() {
		m.err = apierrors.ErrRequestInFlight
		return m, nil
	}

	apiKey, err := m.keys(m.providerID)
	if err != nil {
		m.err = err
		return m, nil
	}
	if apiKey == "" {
		// Precondition failure: no network call, transcript unchanged.
		m.err = fmt.Errorf("no API key configured for %s; run 'aichat keys set %q'", m.providerID, m.providerID)
		return m, nil
	}

	m.transcript.AppendUser(input)
	m.messages = append(m.messages, chatMessage{
		role:    models.RoleUser,
		content: input,
	})
	m.persistMessage(models.RoleUser, input)
	m.updateViewport()
	m.viewport.GotoBottom()

	ch, err := m.runner.Submit(m.providerID, apiKey, m.transcript.Messages())
	if err != nil {
		m.err = err
		return m, nil
	}

	m.loading = true
	m.err = nil
	m.animationFrame = 0
	m.textarea.Reset()

	return m, tea.Batch(
		awaitOutcome(ch),
		m.spinner.Tick,
		animationTick(),
	)
}

// awaitOutcome blocks on the runner's outcome channel inside a tea.Cmd, so
// the result is marshaled back onto the Update loop before any state
// mutation happens.
func awaitOutcome(ch <-chan api.Outcome) tea.Cmd {
	return func() tea.Msg {
		out := <-ch
		if out.Err != nil {
			return errMsg{err: out.Err}
		}
		return responseMsg{reply: out.Reply}
	}
}

// resetChat starts a fresh conversation with the current provider.
func (m *Model) resetChat() {
	m.transcript.Reset(m.cfg.SystemPrompt)
	m.messages = []chatMessage{}
	m.conversation = nil
	m.err = nil
	m.updateViewport()
}

// persistMessage appends a turn to the history store, creating the
// conversation lazily on the first turn.
func (m *Model) persistMessage(role, content string) {
	if m.store == nil {
		return
	}

	if m.conversation == nil {
		conv, err := m.store.Create(m.providerID)
		if err != nil {
			return
		}
		m.conversation = conv
	}

	_ = m.store.AddMessage(m.conversation.ID, role, content)
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.selectingProvider {
		return m.renderProviderSelector()
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	providerCfg, _ := m.registry.Lookup(m.providerID)
	headerParts := []string{
		titleStyle.Render("✦ aichat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.providerID),
	}
	if providerCfg.Model != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(providerCfg.Model),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if len(m.messages) == 0 {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error display
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to aichat")
	subtitle := welcomeStyle.Width(width).Render(
		fmt.Sprintf("Chatting with %s. Type a message, /provider to switch, /new to start over.", m.providerID),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render("█"))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(fmt.Sprintf(" %s is thinking ", m.providerID))

	return fmt.Sprintf("%s %s %s", spin, bar.String(), text)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/provider", "Switch"},
		{"/new", "New chat"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.role == models.RoleUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.content)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("✦ " + m.providerID)

			// Replies may contain markdown; render them for the terminal
			rendered, err := render.MarkdownWithWidth(msg.content, bubbleWidth-4)
			if err != nil {
				rendered = msg.content
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI
func RunChat(runner *api.Runner, cfg config.Config, store *history.Store) error {
	m := NewChatModel(runner, cfg, store, config.APIKey)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
