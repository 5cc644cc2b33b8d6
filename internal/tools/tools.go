// Package tools defines the callable tools exposed to the answer agent.
package tools

import "context"

// Tool describes a callable function the model may invoke. Parameters follow
// the JSON-schema shape chat completion APIs expect.
type Tool struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Parameters  Parameter `json:"parameters"`
	Handler     func(ctx context.Context, args map[string]any) (string, error) `json:"-"`
}

// Parameter is the JSON-schema of a tool's arguments.
type Parameter struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

// Toolkit is a set of tools keyed by name.
type Toolkit map[string]Tool

func NewToolkit(ts ...Tool) Toolkit {
	m := make(Toolkit, len(ts))
	for _, t := range ts {
		m[t.Name] = t
	}
	return m
}

// List returns the tools in a stable order for request payloads.
func (tk Toolkit) List() []Tool {
	names := []string{"retriever", "wikipedia"}
	out := make([]Tool, 0, len(tk))
	for _, n := range names {
		if t, ok := tk[n]; ok {
			out = append(out, t)
		}
	}
	for n, t := range tk {
		known := false
		for _, k := range names {
			if n == k {
				known = true
				break
			}
		}
		if !known {
			out = append(out, t)
		}
	}
	return out
}

func queryParameter() Parameter {
	return Parameter{
		Type: "object",
		Properties: map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query.",
			},
		},
		Required: []string{"query"},
	}
}

func queryArg(args map[string]any) string {
	if q, ok := args["query"].(string); ok {
		return q
	}
	return ""
}
