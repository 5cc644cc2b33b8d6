package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

// AnswerPort is the TUI-facing subset of the answer pipeline.
type AnswerPort interface {
	Run(ctx context.Context, question string) (domain.AnswerState, error)
}

type answerMsg struct {
	state domain.AnswerState
	err   error
}

// QAModel is the Bubble Tea model for the document Q&A frontend.
type QAModel struct {
	pipeline AnswerPort
	input    textinput.Model
	viewport viewport.Model
	state    domain.AnswerState
	summary  string
	status   string
	showDocs bool
	busy     bool
	ready    bool
}

// NewQA creates the Q&A model. summary describes the ingested corpus and is
// shown under the header.
func NewQA(pipeline AnswerPort, summary string) QAModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question about the documents"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return QAModel{
		pipeline: pipeline,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Ready. Tab toggles retrieved passages.",
	}
}

func (m QAModel) Init() tea.Cmd { return textinput.Blink }

func (m QAModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 3 + ih + 1 // header, summary, status, input frame, spacer
		vh := msg.Height - reserved - ah
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderBody())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.input.Reset()
			m.busy = true
			m.status = "Answering..."
			return m, runPipeline(m.pipeline, question)
		case "tab":
			m.showDocs = !m.showDocs
			m.viewport.SetContent(m.renderBody())
			m.viewport.GotoTop()
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}

	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.showDocs = false
		m.status = fmt.Sprintf("Answered %q. Tab toggles retrieved passages.", msg.state.Question)
		m.viewport.SetContent(m.renderBody())
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m QAModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Q&A")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	body := answerBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + body + "\n" + input + "\n" + status
}

func (m QAModel) renderBody() string {
	if m.state.Question == "" {
		return "No answers yet. Ask away."
	}
	if m.showDocs {
		return m.renderDocs()
	}
	question := questionStyle.Render(m.state.Question)
	return question + "\n\n" + m.state.Answer
}

func (m QAModel) renderDocs() string {
	if len(m.state.RetrievedDocs) == 0 {
		return "No passages were retrieved for this question."
	}
	parts := make([]string, 0, len(m.state.RetrievedDocs))
	for i, res := range m.state.RetrievedDocs {
		title := res.Chunk.Title
		if title == "" {
			title = res.Chunk.Source
		}
		head := questionStyle.Render(fmt.Sprintf("Passage %d  %s  score=%.3f", i+1, title, res.Score))
		parts = append(parts, head+"\n"+res.Chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}

func runPipeline(pipeline AnswerPort, question string) tea.Cmd {
	return func() tea.Msg {
		state, err := pipeline.Run(context.Background(), question)
		return answerMsg{state: state, err: err}
	}
}

var (
	answerBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
