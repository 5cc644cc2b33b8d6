// Package agent runs the retrieval-augmented answer pipeline: an eager
// pre-fetch from the index followed by a bounded tool-calling loop.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/llm"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/logger"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/tools"
)

// NoAnswer is the answer when the loop ends without a usable final message.
// The request degrades to this sentinel instead of failing.
const NoAnswer = "Could not generate answer"

// DefaultMaxIterations caps the decide/call/observe loop.
const DefaultMaxIterations = 8

const systemPrompt = "You are a question answering assistant. " +
	"Use the retriever tool to look up passages from the indexed documents and " +
	"the wikipedia tool for general knowledge. Call tools as often as needed, " +
	"then answer the question from what you found."

// Pipeline wires the retriever and the LLM into the agentic answer flow.
type Pipeline struct {
	retriever     domain.Retriever
	client        llm.Client
	toolkit       tools.Toolkit
	topK          int
	maxIterations int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

func WithTopK(k int) Option {
	return func(p *Pipeline) {
		if k > 0 {
			p.topK = k
		}
	}
}

func WithMaxIterations(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxIterations = n
		}
	}
}

// WithToolkit replaces the default retriever+wikipedia toolkit.
func WithToolkit(tk tools.Toolkit) Option {
	return func(p *Pipeline) { p.toolkit = tk }
}

func New(retriever domain.Retriever, client llm.Client, opts ...Option) *Pipeline {
	p := &Pipeline{
		retriever:     retriever,
		client:        client,
		toolkit:       tools.NewToolkit(tools.NewRetrieverTool(retriever), tools.NewWikipediaTool()),
		topK:          4,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run answers the question. RetrievedDocs always holds the eager pre-fetch;
// the agent may consult different passages through its own retriever calls,
// so the pre-fetch is a display-only approximation of what was used.
func (p *Pipeline) Run(ctx context.Context, question string) (domain.AnswerState, error) {
	state := domain.AnswerState{Question: question}

	prefetch, err := p.retriever.Retrieve(ctx, question, p.topK)
	if err != nil {
		return state, fmt.Errorf("retrieving documents: %w", err)
	}
	state.RetrievedDocs = prefetch

	answer, err := p.loop(ctx, question)
	if err != nil {
		return state, err
	}
	if answer == "" {
		answer = NoAnswer
	}
	state.Answer = answer
	return state, nil
}

// loop is the agent's control structure, modeled as an explicit bounded state
// machine: ask the model to decide, execute requested tool calls, feed the
// observations back, repeat until a final answer or the iteration cap.
func (p *Pipeline) loop(ctx context.Context, question string) (string, error) {
	messages := []llm.Message{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: question},
	}
	schemas := p.toolkit.List()

	for iteration := 0; iteration < p.maxIterations; iteration++ {
		resp, err := p.client.CompleteTools(ctx, messages, schemas)
		if err != nil {
			return "", fmt.Errorf("agent iteration %d: %w", iteration, err)
		}

		if len(resp.ToolCalls) == 0 {
			// FINAL: the model answered instead of requesting a tool.
			return resp.Content, nil
		}

		messages = append(messages, llm.Message{
			Role:      domain.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, call := range resp.ToolCalls {
			messages = append(messages, llm.Message{
				Role:       domain.RoleTool,
				Content:    p.invoke(ctx, call),
				ToolCallID: call.ID,
			})
		}
	}

	logger.Warn("agent hit iteration cap without final answer", "question", question)
	return "", nil
}

// invoke executes one tool call. Tool failures become observations so the
// model can adapt; they never abort the loop.
func (p *Pipeline) invoke(ctx context.Context, call llm.ToolCall) string {
	tool, ok := p.toolkit[call.Name]
	if !ok {
		return fmt.Sprintf("unknown tool: %s", call.Name)
	}
	var args map[string]any
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return fmt.Sprintf("invalid tool arguments: %v", err)
		}
	}
	result, err := tool.Handler(ctx, args)
	if err != nil {
		logger.Warn("tool call failed", "tool", call.Name, "error", err)
		return fmt.Sprintf("tool %s failed: %v", call.Name, err)
	}
	logger.Debug("tool call", "tool", call.Name, "args", call.Arguments)
	return result
}
