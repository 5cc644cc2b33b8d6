package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

func doc(content string) domain.Document {
	return domain.Document{ID: "d1", Source: "test.txt", Title: "test", Content: content}
}

func TestWindowChunkerBoundaryArithmetic(t *testing.T) {
	// 1000 chars, size 500, overlap 50 -> [0:500], [450:950], [900:1000]
	content := strings.Repeat("a", 450) + strings.Repeat("b", 450) + strings.Repeat("c", 100)
	c := NewWindowChunker(500, 50)

	chunks, err := c.Chunk(doc(content))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	require.Equal(t, content[0:500], chunks[0].Text)
	require.Equal(t, content[450:950], chunks[1].Text)
	require.Equal(t, content[900:1000], chunks[2].Text)

	for i, ch := range chunks {
		require.Equal(t, i, ch.Index)
		require.Equal(t, "d1", ch.DocumentID)
	}
}

func TestWindowChunkerOverlapAndCoverage(t *testing.T) {
	const size, overlap = 100, 20
	content := strings.Repeat("0123456789", 55) // 550 chars
	c := NewWindowChunker(size, overlap)

	chunks, err := c.Chunk(doc(content))
	require.NoError(t, err)

	// Consecutive chunks share exactly `overlap` characters.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Text
		require.Equal(t, prev[len(prev)-overlap:], chunks[i].Text[:overlap])
	}

	// Reassembling without the overlap reproduces the input with no gaps.
	var sb strings.Builder
	sb.WriteString(chunks[0].Text)
	for i := 1; i < len(chunks); i++ {
		sb.WriteString(chunks[i].Text[overlap:])
	}
	require.Equal(t, content, sb.String())
}

func TestWindowChunkerShortInput(t *testing.T) {
	c := NewWindowChunker(500, 50)

	chunks, err := c.Chunk(doc("short text"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "short text", chunks[0].Text)
}

func TestWindowChunkerExactSize(t *testing.T) {
	content := strings.Repeat("x", 500)
	c := NewWindowChunker(500, 50)

	chunks, err := c.Chunk(doc(content))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, content, chunks[0].Text)
}

func TestWindowChunkerEmptyInput(t *testing.T) {
	c := NewWindowChunker(500, 50)

	chunks, err := c.Chunk(doc(""))
	require.NoError(t, err)
	require.Empty(t, chunks)
}

func TestWindowChunkerMultibyte(t *testing.T) {
	content := strings.Repeat("héllo wörld ", 30)
	c := NewWindowChunker(50, 10)

	chunks, err := c.Chunk(doc(content))
	require.NoError(t, err)
	for _, ch := range chunks {
		require.True(t, len([]rune(ch.Text)) <= 50)
		require.Contains(t, content, ch.Text)
	}
}
