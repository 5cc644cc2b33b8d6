package vectorstore

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

// MemoryStore is an in-memory vector store using brute-force cosine similarity.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	norms     []float64
	chunks    []domain.Chunk
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.norms = nil
	s.chunks = nil
	return nil
}

func (s *MemoryStore) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	for _, v := range vectors {
		s.norms = append(s.norms, norm(v))
	}
	return nil
}

func (s *MemoryStore) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if topK <= 0 {
		topK = 4
	}
	qn := norm(vector)
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, len(s.vectors))
	for i := range s.vectors {
		scores[i] = scored{i, cosine(s.vectors[i], s.norms[i], vector, qn)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if topK > len(scores) {
		topK = len(scores)
	}
	results := make([]domain.SearchResult, 0, topK)
	for i := 0; i < topK; i++ {
		results = append(results, domain.SearchResult{Chunk: s.chunks[scores[i].idx], Score: scores[i].score})
	}
	return results, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.norms = nil
	s.chunks = nil
	return nil
}

func cosine(a []float64, an float64, b []float64, bn float64) float64 {
	if an == 0 || bn == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum / (an * bn)
}

func norm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
