package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/tools"
)

// OllamaClient talks to a local Ollama server's chat API.
type OllamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		// Long timeout: streaming completions can run for minutes.
		client: &http.Client{Timeout: 300 * time.Second},
	}
}

type ollamaMessage struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	ToolCalls []ollamaToolCall `json:"tool_calls,omitempty"`
}

type ollamaToolCall struct {
	Function struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	} `json:"function"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Tools    []toolPayload   `json:"tools,omitempty"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type toolPayload struct {
	Type     string     `json:"type"`
	Function tools.Tool `json:"function"`
}

func (c *OllamaClient) Complete(ctx context.Context, messages []Message) (string, error) {
	resp, err := c.chat(ctx, messages, nil, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	return out.Message.Content, nil
}

func (c *OllamaClient) CompleteStream(ctx context.Context, messages []Message) (<-chan StreamToken, error) {
	resp, err := c.chat(ctx, messages, nil, true)
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
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var part ollamaChatResponse
			if err := json.Unmarshal(line, &part); err != nil {
				continue
			}
			ch <- StreamToken{Content: part.Message.Content, Done: part.Done}
			if part.Done {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			ch <- StreamToken{Done: true, Err: err}
		}
	}()
	return ch, nil
}

func (c *OllamaClient) CompleteTools(ctx context.Context, messages []Message, toolkit []tools.Tool) (*ToolResponse, error) {
	resp, err := c.chat(ctx, messages, toolkit, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}
	tr := &ToolResponse{Content: out.Message.Content}
	for i, call := range out.Message.ToolCalls {
		tr.ToolCalls = append(tr.ToolCalls, ToolCall{
			ID:        "call_" + strconv.Itoa(i),
			Name:      call.Function.Name,
			Arguments: string(call.Function.Arguments),
		})
	}
	return tr, nil
}

func (c *OllamaClient) chat(ctx context.Context, messages []Message, toolkit []tools.Tool, stream bool) (*http.Response, error) {
	req := ollamaChatRequest{Model: c.model, Stream: stream}
	for _, m := range messages {
		om := ollamaMessage{Role: m.Role, Content: m.Content}
		for _, call := range m.ToolCalls {
			args := call.Arguments
			if args == "" {
				args = "{}"
			}
			var oc ollamaToolCall
			oc.Function.Name = call.Name
			oc.Function.Arguments = json.RawMessage(args)
			om.ToolCalls = append(om.ToolCalls, oc)
		}
		req.Messages = append(req.Messages, om)
	}
	for _, t := range toolkit {
		req.Tools = append(req.Tools, toolPayload{Type: "function", Function: t})
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling ollama request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("ollama: status %d", resp.StatusCode)
	}
	return resp, nil
}
