package chunker

import (
	"strconv"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

// WindowChunker splits text into fixed-size character windows where each
// window shares `overlap` characters with the previous one, so context at
// chunk boundaries is never lost. Step between windows is size - overlap.
type WindowChunker struct {
	size    int
	overlap int
}

func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	return &WindowChunker{size: size, overlap: overlap}
}

func (c *WindowChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	runes := []rune(document.Content)
	if len(runes) == 0 {
		return nil, nil
	}
	step := c.size - c.overlap
	var chunks []domain.Chunk
	idx := 0
	for start := 0; ; start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(idx),
			Source:     document.Source,
			Title:      document.Title,
			Text:       string(runes[start:end]),
			Index:      idx,
		})
		if end == len(runes) {
			break
		}
		idx++
	}
	return chunks, nil
}
