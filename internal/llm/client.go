// Package llm provides the chat completion clients, one per provider.
package llm

import (
	"context"
	"fmt"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/config"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/tools"
)

// Message is a single turn on the completion wire. ToolCallID and ToolCalls
// are only populated during agentic tool exchanges.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is the model's request to invoke a tool. Arguments is the raw JSON
// object the model produced.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResponse is a completion that may either answer directly or ask for
// tool invocations.
type ToolResponse struct {
	Content   string
	ToolCalls []ToolCall
}

// StreamToken is one fragment of a streamed completion. The channel carrying
// these is a lazy, finite, non-restartable sequence: it closes after the
// final token or after a token with Err set.
type StreamToken struct {
	Content string
	Done    bool
	Err     error
}

// Client is the capability interface over a chat completion provider,
// selected once at construction time.
type Client interface {
	// Complete submits the messages and blocks for the full response text.
	Complete(ctx context.Context, messages []Message) (string, error)
	// CompleteStream submits the messages and returns the response as a
	// fragment stream.
	CompleteStream(ctx context.Context, messages []Message) (<-chan StreamToken, error)
	// CompleteTools submits the messages along with callable tool schemas;
	// the response either carries content or tool call requests.
	CompleteTools(ctx context.Context, messages []Message, toolkit []tools.Tool) (*ToolResponse, error)
}

// New builds the client for the configured provider.
func New(cfg *config.AppConfig) (Client, error) {
	switch cfg.LLM.Provider {
	case "ollama":
		return NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model), nil
	case "openai", "groq":
		return NewOpenAIClient(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.APIKey()), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.LLM.Provider)
	}
}
