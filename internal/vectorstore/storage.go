// Package vectorstore provides the similarity search backends.
package vectorstore

import "github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"

// Storage persists vectors and supports nearest-neighbor search.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
	Clear() error
}
