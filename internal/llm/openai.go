package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/tools"
)

// OpenAIClient implements Client against any OpenAI-compatible chat
// completions endpoint; it serves both OpenAI and Groq (the base URL and
// credential are all that differ).
type OpenAIClient struct {
	baseURL string
	model   string
	apiKey  string
	client  *http.Client
}

func NewOpenAIClient(baseURL, model, apiKey string) *OpenAIClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 300 * time.Second},
	}
}

type openaiToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type openaiMessage struct {
	Role       string           `json:"role"`
	Content    string           `json:"content"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
	ToolCalls  []openaiToolCall `json:"tool_calls,omitempty"`
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
	Stream   bool            `json:"stream,omitempty"`
	Tools    []toolPayload   `json:"tools,omitempty"`
}

type openaiResponse struct {
	Choices []struct {
		Message      openaiMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

type openaiStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	out, err := c.complete(ctx, messages, nil)
	if err != nil {
		return "", err
	}
	return out.Content, nil
}

func (c *OpenAIClient) CompleteTools(ctx context.Context, messages []Message, toolkit []tools.Tool) (*ToolResponse, error) {
	return c.complete(ctx, messages, toolkit)
}

func (c *OpenAIClient) complete(ctx context.Context, messages []Message, toolkit []tools.Tool) (*ToolResponse, error) {
	req := openaiRequest{Model: c.model, Messages: toOpenAIMessages(messages)}
	for _, t := range toolkit {
		req.Tools = append(req.Tools, toolPayload{Type: "function", Function: t})
	}
	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("empty completion response")
	}
	msg := out.Choices[0].Message
	tr := &ToolResponse{Content: msg.Content}
	for _, call := range msg.ToolCalls {
		tr.ToolCalls = append(tr.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return tr, nil
}

func (c *OpenAIClient) CompleteStream(ctx context.Context, messages []Message) (<-chan StreamToken, error) {
	req := openaiRequest{Model: c.model, Messages: toOpenAIMessages(messages), Stream: true}
	resp, err := c.post(ctx, req)
	if err != nil {
		return nil, err
	}

	ch := make(chan StreamToken, 64)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				ch <- StreamToken{Done: true, Err: ctx.Err()}
				return
			default:
			}
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == "[DONE]" {
				ch <- StreamToken{Done: true}
				return
			}
			var chunk openaiStreamChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil || len(chunk.Choices) == 0 {
				continue
			}
			choice := chunk.Choices[0]
			ch <- StreamToken{
				Content: choice.Delta.Content,
				Done:    choice.FinishReason != nil,
			}
			if choice.FinishReason != nil {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			ch <- StreamToken{Done: true, Err: err}
		}
	}()
	return ch, nil
}

func (c *OpenAIClient) post(ctx context.Context, payload openaiRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling chat completions: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("chat completions: status %d", resp.StatusCode)
	}
	return resp, nil
}

func toOpenAIMessages(messages []Message) []openaiMessage {
	out := make([]openaiMessage, 0, len(messages))
	for _, m := range messages {
		om := openaiMessage{Role: m.Role, Content: m.Content, ToolCallID: m.ToolCallID}
		for _, call := range m.ToolCalls {
			oc := openaiToolCall{ID: call.ID, Type: "function"}
			oc.Function.Name = call.Name
			oc.Function.Arguments = call.Arguments
			om.ToolCalls = append(om.ToolCalls, oc)
		}
		out = append(out, om)
	}
	return out
}
