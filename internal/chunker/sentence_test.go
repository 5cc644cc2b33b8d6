package chunker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentenceChunkerGroupsWithOverlap(t *testing.T) {
	content := "One. Two. Three. Four. Five. Six. Seven."
	c := NewSentenceChunker(3, 1)

	chunks, err := c.Chunk(doc(content))
	require.NoError(t, err)
	require.Equal(t, "One. Two. Three.", chunks[0].Text)
	require.Equal(t, "Three. Four. Five.", chunks[1].Text)
	require.Equal(t, "Five. Six. Seven.", chunks[2].Text)
}

func TestSentenceChunkerOverlapClampedToAdvance(t *testing.T) {
	// An overlap at or above the chunk size would stall the loop; the
	// constructor clamps it so every chunk still advances by one sentence.
	c := NewSentenceChunker(2, 2)

	chunks, err := c.Chunk(doc("One. Two. Three. Four. Five."))
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	require.Equal(t, "One. Two.", chunks[0].Text)
	require.Equal(t, "Two. Three.", chunks[1].Text)
	require.Equal(t, "Four. Five.", chunks[3].Text)
}

func TestSentenceChunkerNoTerminators(t *testing.T) {
	c := NewSentenceChunker(5, 1)

	chunks, err := c.Chunk(doc("text without sentence punctuation"))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "text without sentence punctuation", chunks[0].Text)
}

func TestSentenceChunkerEmpty(t *testing.T) {
	c := NewSentenceChunker(5, 1)

	chunks, err := c.Chunk(doc("   "))
	require.NoError(t, err)
	require.Empty(t, chunks)
}
