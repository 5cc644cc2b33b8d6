package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/domain"
)

// WebLoader fetches web pages and extracts their readable text.
type WebLoader struct {
	client *http.Client
}

func NewWebLoader() *WebLoader {
	return &WebLoader{client: &http.Client{Timeout: 30 * time.Second}}
}

// Load fetches the URL and returns one Document with the page's main text.
func (l *WebLoader) Load(ctx context.Context, url string) (domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Document{}, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "ragchat/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	gdoc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Document{}, fmt.Errorf("parsing %s: %w", url, err)
	}

	title := strings.TrimSpace(gdoc.Find("title").First().Text())
	if title == "" {
		title = url
	}
	text := extractMainContent(gdoc)
	if text == "" {
		return domain.Document{}, fmt.Errorf("no readable text at %s", url)
	}
	return domain.Document{
		ID:      hashID(url),
		Source:  url,
		Title:   title,
		Content: text,
	}, nil
}

// extractMainContent prefers semantic containers and falls back to body text,
// with boilerplate elements removed first.
func extractMainContent(doc *goquery.Document) string {
	doc.Find("script, style, nav, footer, header, aside, noscript").Remove()

	for _, selector := range []string{"main", "article", "[role='main']", "body"} {
		var sb strings.Builder
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" {
				sb.WriteString(text)
				sb.WriteString("\n")
			}
		})
		if content := collapseWhitespace(sb.String()); len(content) > 0 {
			return content
		}
	}
	return ""
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
