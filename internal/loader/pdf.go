package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

// PDFLoader extracts text from PDF files, one Document per page.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader { return &PDFLoader{} }

// Load reads the PDF at path and returns its pages as Documents. Pages whose
// text cannot be decoded are skipped; the file as a whole fails only when it
// cannot be opened at all.
func (l *PDFLoader) Load(path string) ([]domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	reader, err := pdf.NewReader(strings.NewReader(string(content)), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	title := filepath.Base(path)
	var docs []domain.Document
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		source := fmt.Sprintf("%s#page=%d", path, i)
		docs = append(docs, domain.Document{
			ID:      hashID(source),
			Source:  source,
			Title:   title,
			Content: text,
		})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	return docs, nil
}
