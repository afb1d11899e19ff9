package commands

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/spuoss/aichat/internal/api"
	"github.com/spuoss/aichat/internal/config"
	"github.com/spuoss/aichat/internal/render"
	"github.com/spuoss/aichat/internal/tui"
)

// Gradient colors for the spinner animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"), // Red
	lipgloss.Color("#feca57"), // Yellow
	lipgloss.Color("#48dbfb"), // Cyan
	lipgloss.Color("#ff9ff3"), // Pink
	lipgloss.Color("#54a0ff"), // Blue
	lipgloss.Color("#5f27cd"), // Purple
	lipgloss.Color("#00d2d3"), // Teal
	lipgloss.Color("#1dd1a1"), // Green
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7aa2f7")
)

var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginTop(1).
				MarginBottom(1)
)

// spinner handles the animated loading indicator
type spinner struct {
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(os.Stderr, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(os.Stderr, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinIdx := s.frame % len(chars)
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 16
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + s.frame) % len(gradientColors)
		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render("█"))
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)

	fmt.Fprintf(os.Stderr, "\r\033[K%s %s %s", spinnerChar, bar.String(), msg)
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(os.Stderr, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner without a message
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery executes a single query and outputs the response.
// If rawOutput is true, only the raw reply text is printed.
func runQuery(prompt string, rawOutput bool) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}

	cfg, _ := config.LoadConfig()
	providerID := getProvider()

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Provider: %s\n", providerID)
	}

	client, err := api.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if !client.Registry().Has(providerID) {
		return fmt.Errorf("unknown provider %q; run 'aichat providers' to list them", providerID)
	}

	// Missing key aborts before any network call
	apiKey, err := config.APIKey(providerID)
	if err != nil {
		return err
	}
	if apiKey == "" {
		return fmt.Errorf("no API key configured for %s; run 'aichat keys set %q'", providerID, providerID)
	}

	transcript := api.NewTranscript(getSystemPrompt())
	transcript.AppendUser(prompt)

	var spin *spinner
	if !rawOutput {
		spin = newSpinner(fmt.Sprintf("Asking %s", providerID))
		spin.start()
	}

	startTime := time.Now()
	reply, err := client.Send(providerID, apiKey, transcript.Messages())
	requestDuration := time.Since(startTime)

	if err != nil {
		if !rawOutput {
			spin.stopWithError()
			tui.PrintError(err)
		}
		return err
	}
	if !rawOutput {
		spin.stopWithSuccess("Done")
	}

	if cfg.Verbose && !rawOutput {
		fmt.Fprintf(os.Stderr, "[verbose] Request took %s\n", requestDuration.Round(time.Millisecond))
	}

	// Save to file if requested
	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !rawOutput {
			fmt.Fprintf(os.Stderr, "Response saved to %s\n", outputFlag)
		}
	}

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(reply); err != nil && cfg.Verbose && !rawOutput {
			fmt.Fprintf(os.Stderr, "[verbose] clipboard copy failed: %v\n", err)
		}
	}

	printReply(providerID, reply, cfg, rawOutput)
	return nil
}

// printReply writes the reply to stdout: markdown-rendered in a bubble when
// attached to a terminal, plain text otherwise.
func printReply(providerID, reply string, cfg config.Config, rawOutput bool) {
	if rawOutput || !isTerminal() {
		fmt.Println(reply)
		return
	}

	width := terminalWidth() - 8
	if width < 40 {
		width = 40
	}

	opts := render.DefaultOptions().
		WithWidth(width).
		WithStyle(cfg.Markdown.Style).
		WithEmoji(cfg.Markdown.EnableEmoji).
		WithPreserveNewLines(cfg.Markdown.PreserveNewLines)

	rendered, err := render.Markdown(reply, opts)
	if err != nil {
		rendered = reply
	}
	rendered = strings.TrimRight(rendered, "\n")

	label := assistantLabelStyle.Render("✦ " + providerID)
	bubble := assistantBubbleStyle.Width(width + 4).Render(rendered)
	fmt.Println(label + "\n" + bubble)
}

// terminalWidth returns the current terminal width, or a default of 80
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isTerminal reports whether stdout is attached to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
