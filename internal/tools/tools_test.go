package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

type stubRetriever struct {
	results []domain.SearchResult
	err     error
}

func (s *stubRetriever) Retrieve(context.Context, string, int) ([]domain.SearchResult, error) {
	return s.results, s.err
}

func TestRetrieverToolFormatsExcerpts(t *testing.T) {
	tool := NewRetrieverTool(&stubRetriever{results: []domain.SearchResult{
		{Chunk: domain.Chunk{Title: "paper.pdf", Text: "first passage"}},
		{Chunk: domain.Chunk{Source: "https://example.com", Text: "second passage"}},
	}})

	out, err := tool.Handler(context.Background(), map[string]any{"query": "anything"})
	require.NoError(t, err)
	require.Contains(t, out, "Document 1: paper.pdf\nfirst passage")
	require.Contains(t, out, "Document 2: https://example.com\nsecond passage")
}

func TestRetrieverToolNoMatchesSentinel(t *testing.T) {
	tool := NewRetrieverTool(&stubRetriever{})

	out, err := tool.Handler(context.Background(), map[string]any{"query": "unrelated"})
	require.NoError(t, err)
	// The literal sentinel, never an empty string.
	require.Equal(t, NoDocumentsFound, out)
}

func TestRetrieverToolIndexError(t *testing.T) {
	tool := NewRetrieverTool(&stubRetriever{err: errors.New("boom")})

	_, err := tool.Handler(context.Background(), map[string]any{"query": "q"})
	require.Error(t, err)
}

func TestWikipediaToolSummary(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/page/summary/Go_(programming_language)", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"extract": "Go is a programming language."})
	}))
	defer ts.Close()

	tool := NewWikipediaToolWithBase(ts.URL)
	out, err := tool.Handler(context.Background(), map[string]any{"query": "Go (programming language)"})
	require.NoError(t, err)
	require.Equal(t, "Go is a programming language.", out)
}

func TestWikipediaToolFailureIsData(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	tool := NewWikipediaToolWithBase(ts.URL)
	out, err := tool.Handler(context.Background(), map[string]any{"query": "nonexistent page"})
	// Failures are observations for the agent, never handler errors.
	require.NoError(t, err)
	require.Contains(t, out, "Wikipedia search failed:")
}

func TestToolkitListOrder(t *testing.T) {
	tk := NewToolkit(NewWikipediaTool(), NewRetrieverTool(&stubRetriever{}))
	list := tk.List()
	require.Len(t, list, 2)
	require.Equal(t, "retriever", list[0].Name)
	require.Equal(t, "wikipedia", list[1].Name)
}
