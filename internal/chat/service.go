// Package chat implements the direct conversation mode: streamed completions
// with history persisted per session.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/llm"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/logger"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/memory"
)

const systemPrompt = "You are a friendly assistant. Answer the user's " +
	"questions clearly and concisely, using the conversation so far for context."

// Service answers conversational turns against the persisted session history.
type Service struct {
	store  *memory.Store
	client llm.Client
}

func NewService(store *memory.Store, client llm.Client) *Service {
	return &Service{store: store, client: client}
}

// Send submits the user's input with the session history prepended and
// returns the assistant's reply as a token stream. Once the stream finishes
// cleanly, both the user turn and the full assistant reply are appended to
// the session; a failed stream persists nothing.
func (s *Service) Send(ctx context.Context, sessionID, input string) (<-chan llm.StreamToken, error) {
	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: domain.RoleSystem, Content: systemPrompt})
	for _, turn := range history {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: domain.RoleUser, Content: input})

	stream, err := s.client.CompleteStream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("starting completion: %w", err)
	}

	out := make(chan llm.StreamToken)
	go func() {
		defer close(out)
		var reply strings.Builder
		failed := false
		for token := range stream {
			if token.Err != nil {
				failed = true
			}
			reply.WriteString(token.Content)
			out <- token
		}
		if failed {
			return
		}
		// The reply is complete; persist it even if the caller's context has
		// since been cancelled.
		persistCtx := context.WithoutCancel(ctx)
		if err := s.store.Append(persistCtx, sessionID, domain.RoleUser, input); err != nil {
			logger.Error("persisting user turn", "session", sessionID, "error", err)
			return
		}
		if err := s.store.Append(persistCtx, sessionID, domain.RoleAssistant, reply.String()); err != nil {
			logger.Error("persisting assistant turn", "session", sessionID, "error", err)
		}
	}()
	return out, nil
}

// History returns the session's persisted turns.
func (s *Service) History(ctx context.Context, sessionID string) ([]memory.Turn, error) {
	return s.store.History(ctx, sessionID)
}

// Reset discards the session's history.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
