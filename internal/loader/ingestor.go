// Package loader turns raw sources (PDF files, URLs) into retrieval chunks.
package loader

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/logger"
)

// Report summarizes an ingest run. Failed sources are skipped, counted and
// kept as errors; they never abort the remaining sources.
type Report struct {
	PDFChunks int
	URLChunks int
	Skipped   int
	Errors    []error
}

// Total returns the number of chunks produced.
func (r Report) Total() int { return r.PDFChunks + r.URLChunks }

// Ingestor loads documents from a PDF directory and a URL list and splits
// them with the configured chunker.
type Ingestor struct {
	pdfs    *PDFLoader
	web     *WebLoader
	chunker domain.Chunker
}

func NewIngestor(chunker domain.Chunker) *Ingestor {
	return &Ingestor{pdfs: NewPDFLoader(), web: NewWebLoader(), chunker: chunker}
}

// Load ingests every .pdf in dir (non-recursive) and every URL in urls.
// The caller decides whether a zero-chunk result is an error.
func (in *Ingestor) Load(ctx context.Context, dir string, urls []string) ([]domain.Chunk, Report, error) {
	var report Report
	var chunks []domain.Chunk

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, fmt.Errorf("reading directory %s: %w", dir, err))
			logger.Warn("pdf directory unreadable", "dir", dir, "error", err)
		} else {
			for _, entry := range entries {
				if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
					continue
				}
				path := filepath.Join(dir, entry.Name())
				docs, err := in.pdfs.Load(path)
				if err != nil {
					report.Skipped++
					report.Errors = append(report.Errors, err)
					logger.Warn("pdf skipped", "path", path, "error", err)
					continue
				}
				n, err := in.appendChunks(&chunks, docs)
				if err != nil {
					return nil, report, err
				}
				report.PDFChunks += n
			}
		}
	}

	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		doc, err := in.web.Load(ctx, url)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, err)
			logger.Warn("url skipped", "url", url, "error", err)
			continue
		}
		n, err := in.appendChunks(&chunks, []domain.Document{doc})
		if err != nil {
			return nil, report, err
		}
		report.URLChunks += n
	}

	logger.Info("ingest finished",
		"pdf_chunks", report.PDFChunks, "url_chunks", report.URLChunks, "skipped", report.Skipped)
	return chunks, report, nil
}

func (in *Ingestor) appendChunks(dst *[]domain.Chunk, docs []domain.Document) (int, error) {
	n := 0
	for _, d := range docs {
		cs, err := in.chunker.Chunk(d)
		if err != nil {
			return n, fmt.Errorf("chunking %s: %w", d.Source, err)
		}
		*dst = append(*dst, cs...)
		n += len(cs)
	}
	return n, nil
}

func hashID(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
