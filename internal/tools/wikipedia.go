package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultWikipediaBase = "https://en.wikipedia.org/api/rest_v1"

// NewWikipediaTool looks up a short page summary. Failures come back as the
// tool's result string so the model can react to them instead of aborting.
func NewWikipediaTool() Tool {
	return NewWikipediaToolWithBase(defaultWikipediaBase)
}

func NewWikipediaToolWithBase(base string) Tool {
	client := &http.Client{Timeout: 15 * time.Second}
	return Tool{
		Name:        "wikipedia",
		Description: "Search Wikipedia for general knowledge.",
		Parameters:  queryParameter(),
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			summary, err := fetchSummary(ctx, client, base, queryArg(args))
			if err != nil {
				return fmt.Sprintf("Wikipedia search failed: %v", err), nil
			}
			return summary, nil
		},
	}
}

func fetchSummary(ctx context.Context, client *http.Client, base, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", fmt.Errorf("empty query")
	}
	title := url.PathEscape(strings.ReplaceAll(query, " ", "_"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/page/summary/"+title, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "ragchat/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d for %q", resp.StatusCode, query)
	}

	var out struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Extract == "" {
		return "", fmt.Errorf("no summary for %q", query)
	}
	return out.Extract, nil
}
