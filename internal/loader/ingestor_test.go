package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/chunker"
)

const page = `<html><head><title>Agentic AI</title></head><body>
<nav>menu items</nav>
<main><p>Agentic AI systems plan and act toward goals.</p>
<p>They can call tools and observe results.</p></main>
<footer>copyright</footer>
</body></html>`

func TestWebLoaderExtractsMainText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(page))
	}))
	defer ts.Close()

	doc, err := NewWebLoader().Load(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Equal(t, "Agentic AI", doc.Title)
	require.Equal(t, ts.URL, doc.Source)
	require.Contains(t, doc.Content, "plan and act toward goals")
	require.NotContains(t, doc.Content, "menu items")
	require.NotContains(t, doc.Content, "copyright")
}

func TestWebLoaderErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := NewWebLoader().Load(context.Background(), ts.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestIngestorSkipsFailedSources(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(page))
	}))
	defer ts.Close()

	dead := httptest.NewServer(nil)
	deadURL := dead.URL
	dead.Close()

	in := NewIngestor(chunker.NewWindowChunker(500, 50))
	chunks, report, err := in.Load(context.Background(), "", []string{deadURL, ts.URL})
	require.NoError(t, err)

	// The unreachable URL is counted and skipped, the good one still loads.
	require.Equal(t, 1, report.Skipped)
	require.Len(t, report.Errors, 1)
	require.NotEmpty(t, chunks)
	require.Equal(t, report.URLChunks, len(chunks))
	require.Equal(t, report.Total(), len(chunks))
}

func TestIngestorMissingDirectoryIsNotFatal(t *testing.T) {
	in := NewIngestor(chunker.NewWindowChunker(500, 50))
	chunks, report, err := in.Load(context.Background(), "does-not-exist", nil)
	require.NoError(t, err)
	require.Empty(t, chunks)
	require.Equal(t, 1, report.Skipped)
	require.Equal(t, 0, report.Total())
}

func TestIngestorIgnoresNonPDFFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain text"), 0o644))

	in := NewIngestor(chunker.NewWindowChunker(500, 50))
	chunks, report, err := in.Load(context.Background(), dir, nil)
	require.NoError(t, err)
	require.Empty(t, chunks)
	require.Zero(t, report.Skipped)
}
