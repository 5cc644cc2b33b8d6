package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/agent"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/chunker"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/config"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/embedding"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/index"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/llm"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/loader"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/logger"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/tui"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/vectorstore"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Init(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}

	var ch domain.Chunker
	switch cfg.Chunker.Type {
	case "window", "":
		ch = chunker.NewWindowChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	case "sentence":
		ch = chunker.NewSentenceChunker(cfg.Chunker.SentencesPerChunk, cfg.Chunker.OverlapSentences)
	default:
		log.Fatalf("unknown chunker: %s", cfg.Chunker.Type)
	}

	var emb domain.Embedder
	switch cfg.Embedder.Provider {
	case "ollama", "":
		emb = embedding.NewOllamaEmbedder(cfg.Embedder.BaseURL, cfg.Embedder.Model)
	case "openai":
		emb, err = embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			BaseURL:   cfg.Embedder.BaseURL,
			APIKeyEnv: cfg.Embedder.APIKeyEnv,
			Model:     cfg.Embedder.Model,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
	default:
		log.Fatalf("unknown embedder provider: %s", cfg.Embedder.Provider)
	}

	var store vectorstore.Storage
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = vectorstore.NewMemoryStore()
	case "qdrant":
		q := cfg.VectorStore.Qdrant
		if q == nil {
			log.Fatalf("qdrant store config missing")
		}
		store = vectorstore.NewQdrantStore(vectorstore.QdrantConfig{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.Collection,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	client, err := llm.New(cfg)
	if err != nil {
		log.Fatalf("failed to build LLM client: %v", err)
	}

	ctx := context.Background()
	start := time.Now()
	chunks, report, err := loader.NewIngestor(ch).Load(ctx, cfg.Ingest.DataDir, cfg.Ingest.URLs)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	for _, e := range report.Errors {
		logger.Warn("source skipped during ingest", "error", e)
	}

	idx := index.New(emb, store)
	if err := idx.Build(ctx, chunks); err != nil {
		log.Fatalf("index build failed: %v", err)
	}
	logger.Info("index ready",
		"pdf_chunks", report.PDFChunks, "url_chunks", report.URLChunks,
		"skipped", report.Skipped, "took", time.Since(start).String())

	summary := fmt.Sprintf("%d chunks indexed (%d from PDFs, %d from URLs, %d sources skipped)",
		report.Total(), report.PDFChunks, report.URLChunks, report.Skipped)

	pipeline := agent.New(idx, client, agent.WithTopK(cfg.TopK))
	model := tui.NewQA(pipeline, summary)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}
