package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

// NoDocumentsFound is returned by the retriever tool when nothing matches.
// The agent reads it as an observation, not as a failure.
const NoDocumentsFound = "No documents found"

// retrieverToolLimit caps how many excerpts one tool call returns.
const retrieverToolLimit = 8

// NewRetrieverTool wraps the index in a tool the agent can call to re-query
// the corpus with its own search terms.
func NewRetrieverTool(retriever domain.Retriever) Tool {
	return Tool{
		Name:        "retriever",
		Description: "Fetch passages from the indexed document store.",
		Parameters:  queryParameter(),
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			results, err := retriever.Retrieve(ctx, queryArg(args), retrieverToolLimit)
			if err != nil {
				return "", fmt.Errorf("retriever tool: %w", err)
			}
			if len(results) == 0 {
				return NoDocumentsFound, nil
			}
			parts := make([]string, 0, len(results))
			for i, r := range results {
				title := r.Chunk.Title
				if title == "" {
					title = r.Chunk.Source
				}
				if title == "" {
					title = fmt.Sprintf("Document_%d", i+1)
				}
				parts = append(parts, fmt.Sprintf("Document %d: %s\n%s", i+1, title, r.Chunk.Text))
			}
			return strings.Join(parts, "\n\n"), nil
		},
	}
}
