package vectorstore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

func TestQdrantUpsertUsesUUIDPointIDs(t *testing.T) {
	var captured struct {
		Points []struct {
			ID      string         `json:"id"`
			Vector  []float64      `json:"vector"`
			Payload map[string]any `json:"payload"`
		} `json:"points"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewQdrantStore(QdrantConfig{URL: srv.URL, Collection: "docs"})
	chunks := []domain.Chunk{
		{DocumentID: "d1", ChunkID: "d1:0", Text: "first", Index: 0},
		{DocumentID: "d1", ChunkID: "d1:1", Text: "second", Index: 1},
	}
	vectors := [][]float64{{1, 0}, {0, 1}}
	require.NoError(t, store.Upsert(chunks, vectors))

	require.Len(t, captured.Points, 2)
	for _, p := range captured.Points {
		_, err := uuid.Parse(p.ID)
		require.NoError(t, err)
	}
	require.NotEqual(t, captured.Points[0].ID, captured.Points[1].ID)
	require.Equal(t, "d1:0", captured.Points[0].Payload["chunk_id"])
}

func TestQdrantPointIDDeterministic(t *testing.T) {
	require.Equal(t, pointID("d1:0"), pointID("d1:0"))
	require.NotEqual(t, pointID("d1:0"), pointID("d1:1"))
}

func TestQdrantUpsertLengthMismatch(t *testing.T) {
	store := NewQdrantStore(QdrantConfig{URL: "http://localhost:6333", Collection: "docs"})
	err := store.Upsert([]domain.Chunk{{ChunkID: "c"}}, nil)
	require.Error(t, err)
}
