package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/llm"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/memory"
)

type stubChatPort struct {
	tokens []llm.StreamToken
}

func (s *stubChatPort) Send(ctx context.Context, sessionID, input string) (<-chan llm.StreamToken, error) {
	out := make(chan llm.StreamToken, len(s.tokens))
	for _, tok := range s.tokens {
		out <- tok
	}
	close(out)
	return out, nil
}

func (s *stubChatPort) History(ctx context.Context, sessionID string) ([]memory.Turn, error) {
	return nil, nil
}

func (s *stubChatPort) Reset(ctx context.Context, sessionID string) error { return nil }

// runStream drives the model through a full send: enter key, stream start,
// then every token message until the channel-closed message.
func runStream(t *testing.T, m ChatModel, input string) ChatModel {
	t.Helper()
	m.input.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(ChatModel)
	require.NotNil(t, cmd)

	msg := cmd()
	for msg != nil {
		model, cmd = m.Update(msg)
		m = model.(ChatModel)
		if cmd == nil {
			break
		}
		msg = cmd()
	}
	return m
}

func TestChatCompletedReplyJoinsTranscript(t *testing.T) {
	port := &stubChatPort{tokens: []llm.StreamToken{
		{Content: "Hello"},
		{Content: " there"},
		{Done: true},
	}}
	m := runStream(t, NewChat(port, "s1"), "hi")

	require.False(t, m.streaming)
	require.Len(t, m.lines, 2)
	require.Contains(t, m.lines[1], "Hello there")
	require.Empty(t, m.partial)
}

func TestChatFailedReplyNotShownAsFinished(t *testing.T) {
	port := &stubChatPort{tokens: []llm.StreamToken{
		{Content: "partial answer"},
		{Err: errors.New("connection reset")},
	}}
	m := runStream(t, NewChat(port, "s1"), "hi")

	// The service persists nothing for a failed stream, so the transcript
	// must not show the fragment as a completed assistant turn.
	require.False(t, m.streaming)
	require.Len(t, m.lines, 1)
	require.Contains(t, m.lines[0], "hi")
	require.Empty(t, m.partial)
	require.True(t, strings.Contains(m.status, "connection reset"))
	require.True(t, strings.Contains(m.status, "not saved"))
}
