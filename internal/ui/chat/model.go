// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yabooung/regnav-tui/internal/config"
	"github.com/yabooung/regnav-tui/internal/model"
	"github.com/yabooung/regnav-tui/internal/ragapi"
	"github.com/yabooung/regnav-tui/internal/ui/components"
	"github.com/yabooung/regnav-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat screen.
type State int

const (
	StateReady    State = iota // Ready for input
	StateAwaiting              // A turn is in flight
)

// Layout constants used to size the viewport. renderChat measures actual
// heights and falls back when these drift.
const (
	headerHeight = 1
	inputHeight  = 3
	statusHeight = 1
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	conversation *model.Conversation

	// RAG client and session config
	client *ragapi.Client
	cfg    *config.Config

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	welcome  components.Welcome
	settings *components.Settings

	// Key bindings
	keyMap KeyMap

	// Error box shown under the conversation, dismissed on next submit
	lastError *components.ErrorBox

	// View toggles
	showRaw      bool // raw payload instead of the answer view
	refsExpanded bool // reference sections unfolded
	showHelp     bool

	// Thinking state
	thinkingStart   time.Time
	thinkingElapsed time.Duration
}

// New creates a new chat model bound to the given session config and client.
func New(theme *styles.Theme, cfg *config.Config, client *ragapi.Client) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "규제 관련 질문을 입력하세요..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 12,
	}
	sp.Style = theme.Spinner

	m := Model{
		state:        StateReady,
		theme:        theme,
		conversation: model.NewConversation(),
		client:       client,
		cfg:          cfg,
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		welcome:      components.NewWelcome(theme),
		settings:     components.NewSettings(theme, cfg),
		keyMap:       DefaultKeyMap(),
	}
	m.updateViewport()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case AnswerMsg:
		return m.handleAnswer(msg)

	case AnswerErrorMsg:
		return m.handleAnswerError(msg)

	case ThinkingTickMsg:
		if m.state != StateAwaiting {
			return m, nil
		}
		m.thinkingElapsed = msg.Elapsed
		m.updateViewport()
		return m, ThinkingTickCmd(m.thinkingStart)

	case spinner.TickMsg:
		if m.state != StateAwaiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd

	case ErrorDismissMsg:
		m.lastError = nil
		m.updateViewport()
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil {
			// The settings overlay and in-flight snapshots alias the same
			// pointer, so copy the new values in place.
			*m.cfg = *msg.Config
		}
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat screen.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// handleResize recomputes the viewport size from the terminal dimensions.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.settings.SetSize(msg.Width, msg.Height)

	viewportHeight := msg.Height - headerHeight - inputHeight - statusHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = viewportHeight

	m.input.Width = msg.Width - 6
	m.welcome.SetWidth(msg.Width)

	m.updateViewport()
	return m, nil
}

// handleKey dispatches key presses. The settings overlay captures all keys
// while it is open.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.settings.IsVisible() {
		return m.handleSettingsKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.Clear):
		if m.conversation.Clear() {
			m.lastError = nil
			m.showRaw = false
			m.refsExpanded = false
			m.updateViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleRaw):
		m.showRaw = !m.showRaw
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleRefs):
		m.refsExpanded = !m.refsExpanded
		m.updateViewport()
		return m, nil

	case key.Matches(msg, m.keyMap.Settings):
		m.settings.Show()
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Home):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.End):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Number keys insert example prompts from the welcome screen.
	if m.conversation.IsEmpty() && m.input.Value() == "" {
		if example := exampleForKey(msg.String()); example != "" {
			m.input.SetValue(example)
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSettingsKey routes keys to the settings overlay.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+o":
		m.settings.Hide()
		m.updateViewport()
	case "up":
		m.settings.MoveUp()
	case "down":
		m.settings.MoveDown()
	case " ", "enter":
		m.settings.Toggle()
	case "left":
		m.settings.Decrease()
	case "right":
		m.settings.Increase()
	case "r":
		m.settings.Reset()
	case "ctrl+q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// submitInput begins a send for the current input value. The conversation
// refuses empty queries and double submits, so this is a no-op in those
// cases.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	userMsg, ok := m.conversation.BeginSend(m.input.Value())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.state = StateAwaiting
	m.thinkingStart = time.Now()
	m.thinkingElapsed = 0
	m.lastError = nil

	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		SendQueryCmd(m.client, m.cfg, m.conversation.ID, userMsg.Content),
		m.spinner.Tick,
		ThinkingTickCmd(m.thinkingStart),
	)
}

// handleAnswer completes the in-flight turn with the received envelope.
func (m Model) handleAnswer(msg AnswerMsg) (tea.Model, tea.Cmd) {
	if msg.ConversationID != m.conversation.ID {
		return m, nil
	}

	m.conversation.CompleteSend(msg.Envelope)
	m.state = StateReady
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleAnswerError records the failure and shows a classified error box.
func (m Model) handleAnswerError(msg AnswerErrorMsg) (tea.Model, tea.Cmd) {
	if msg.ConversationID != m.conversation.ID {
		return m, nil
	}

	m.conversation.FailSend()
	m.state = StateReady

	box := components.NewErrorBoxFromErr(m.theme, msg.Err)
	box.SetWidth(m.width)
	m.lastError = &box

	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// =============================================================================
// HELPERS AND ACCESSORS
// =============================================================================

// exampleForKey maps a number key to its example prompt.
func exampleForKey(k string) string {
	switch k {
	case "1":
		return components.ExamplePrompt(1)
	case "2":
		return components.ExamplePrompt(2)
	case "3":
		return components.ExamplePrompt(3)
	case "4":
		return components.ExamplePrompt(4)
	}
	return ""
}

// updateViewport re-renders the message area into the viewport.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
}

// GetState returns the current screen state.
func (m *Model) GetState() State {
	return m.state
}

// IsAwaiting reports whether a turn is in flight.
func (m *Model) IsAwaiting() bool {
	return m.state == StateAwaiting
}

// GetConversation returns the underlying conversation.
func (m *Model) GetConversation() *model.Conversation {
	return m.conversation
}

// GetSettings returns the settings overlay.
func (m *Model) GetSettings() *components.Settings {
	return m.settings
}

// ShowingRaw reports whether the raw payload view is active.
func (m *Model) ShowingRaw() bool {
	return m.showRaw
}
