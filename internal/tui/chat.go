// Package tui holds the Bubble Tea models for the two terminal frontends.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/llm"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/memory"
)

// ChatPort is the TUI-facing subset of the chat service.
type ChatPort interface {
	Send(ctx context.Context, sessionID, input string) (<-chan llm.StreamToken, error)
	History(ctx context.Context, sessionID string) ([]memory.Turn, error)
	Reset(ctx context.Context, sessionID string) error
}

type streamTokenMsg struct {
	token llm.StreamToken
	ok    bool
}

type streamStartMsg struct {
	stream <-chan llm.StreamToken
	err    error
}

// ChatModel is the Bubble Tea model for the conversational frontend.
type ChatModel struct {
	service   ChatPort
	sessionID string
	input     textinput.Model
	viewport  viewport.Model
	lines     []string
	partial   string
	stream    <-chan llm.StreamToken
	status    string
	streaming bool
	failed    bool
	ready     bool
}

// NewChat creates the chat model for the given session.
func NewChat(service ChatPort, sessionID string) ChatModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := ChatModel{
		service:   service,
		sessionID: sessionID,
		input:     ti,
		viewport:  vp,
		status:    "Ready. Ctrl+N starts a fresh conversation.",
	}
	if history, err := service.History(context.Background(), sessionID); err == nil {
		for _, turn := range history {
			m.lines = append(m.lines, renderTurn(turn.Role, turn.Content))
		}
	}
	return m
}

func (m ChatModel) Init() tea.Cmd { return textinput.Blink }

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - th
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.streaming {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.input.Reset()
			m.lines = append(m.lines, renderTurn("user", input))
			m.partial = ""
			m.streaming = true
			m.failed = false
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, startStream(m.service, m.sessionID, input)
		case "ctrl+n":
			if m.streaming {
				return m, nil
			}
			if err := m.service.Reset(context.Background(), m.sessionID); err != nil {
				m.status = "Error: " + err.Error()
				return m, nil
			}
			m.lines = nil
			m.partial = ""
			m.status = "Conversation cleared."
			m.viewport.SetContent(m.renderTranscript())
			return m, nil
		}

	case streamStartMsg:
		if msg.err != nil {
			m.streaming = false
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.stream = msg.stream
		return m, awaitToken(m.stream)

	case streamTokenMsg:
		if !msg.ok {
			// Channel closed. A failed stream was not persisted, so its
			// partial text is dropped rather than shown as a finished reply.
			if m.partial != "" && !m.failed {
				m.lines = append(m.lines, renderTurn("assistant", m.partial))
			}
			m.partial = ""
			m.stream = nil
			m.streaming = false
			if !m.failed {
				m.status = "Ready. Ctrl+N starts a fresh conversation."
			}
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, nil
		}
		if msg.token.Err != nil {
			m.failed = true
			m.status = "Error: " + msg.token.Err.Error() + " (reply not saved)"
		}
		m.partial += msg.token.Content
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, awaitToken(m.stream)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Chat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func (m ChatModel) renderTranscript() string {
	if len(m.lines) == 0 && m.partial == "" {
		return "No messages yet. Say hello."
	}
	out := strings.Join(m.lines, "\n\n")
	if m.partial != "" {
		if out != "" {
			out += "\n\n"
		}
		out += renderTurn("assistant", m.partial)
	}
	return out
}

func startStream(service ChatPort, sessionID, input string) tea.Cmd {
	return func() tea.Msg {
		stream, err := service.Send(context.Background(), sessionID, input)
		return streamStartMsg{stream: stream, err: err}
	}
}

func awaitToken(stream <-chan llm.StreamToken) tea.Cmd {
	return func() tea.Msg {
		token, ok := <-stream
		return streamTokenMsg{token: token, ok: ok}
	}
}

func renderTurn(role, content string) string {
	label := roleUserStyle.Render("You")
	if role != "user" {
		label = roleAssistantStyle.Render("Assistant")
	}
	return fmt.Sprintf("%s\n%s", label, content)
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	roleUserStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	roleAssistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
