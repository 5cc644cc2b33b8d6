// Package index builds the searchable vector index over ingested chunks.
package index

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/logger"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/vectorstore"
)

var (
	// ErrEmptyCorpus is returned by Build when there are no chunks to index.
	ErrEmptyCorpus = errors.New("index: no chunks to index")
	// ErrNotBuilt is returned by Retrieve before a successful Build.
	ErrNotBuilt = errors.New("index: not built")
)

// DefaultTopK is the retrieval depth used when the caller passes k <= 0.
const DefaultTopK = 4

// Index embeds chunks once at build time and answers nearest-neighbor
// queries. It is immutable after Build; rebuilding means creating a new one.
type Index struct {
	embedder domain.Embedder
	store    vectorstore.Storage

	mu    sync.Mutex
	built bool
}

func New(embedder domain.Embedder, store vectorstore.Storage) *Index {
	return &Index{embedder: embedder, store: store}
}

// Build embeds every chunk with the configured provider and loads the store.
// It fails with ErrEmptyCorpus on empty input and refuses to run twice.
func (ix *Index) Build(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return ErrEmptyCorpus
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.built {
		return errors.New("index: already built")
	}

	vectors := make([][]float64, len(chunks))
	for i, ch := range chunks {
		vec, err := ix.embedder.Embed(ctx, ch.Text)
		if err != nil {
			return fmt.Errorf("embedding chunk %s: %w", ch.ChunkID, err)
		}
		vectors[i] = vec
	}
	if err := ix.store.Init(ix.embedder.Dimension()); err != nil {
		return fmt.Errorf("initializing vector store: %w", err)
	}
	if err := ix.store.Upsert(chunks, vectors); err != nil {
		return fmt.Errorf("storing vectors: %w", err)
	}
	ix.built = true
	logger.Info("index built", "chunks", len(chunks), "dimension", ix.embedder.Dimension())
	return nil
}

// Retrieve embeds the query with the same provider used at build time and
// returns the k nearest chunks, nearest first.
func (ix *Index) Retrieve(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	ix.mu.Lock()
	built := ix.built
	ix.mu.Unlock()
	if !built {
		return nil, ErrNotBuilt
	}
	if k <= 0 {
		k = DefaultTopK
	}
	vec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return ix.store.Search(vec, k)
}
