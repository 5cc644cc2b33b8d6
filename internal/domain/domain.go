package domain

import "context"

// Document is a single loaded source: one PDF page or one fetched web page.
type Document struct {
	ID      string
	Source  string
	Title   string
	Content string
}

// Chunk is a bounded span of document text, the unit of retrieval.
// Chunks are immutable once created.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Source     string
	Title      string
	Text       string
	Index      int
}

// SearchResult is a matching chunk with a relevance score, most relevant first.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Message roles understood by the chat completion providers and the
// conversation store.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// AnswerState is threaded through the answer pipeline. RetrievedDocs holds the
// eager pre-fetch; Answer stays empty until the final stage completes.
type AnswerState struct {
	Question      string
	RetrievedDocs []SearchResult
	Answer        string
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Embedder converts free text into a fixed-length vector. The same embedder
// must be used at index-build time and query time.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Retriever returns the most relevant chunks for a query, nearest first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]SearchResult, error)
}
