package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"foliodesk/config"
)

// PreviewClient fetches headline pages for the quick article preview. It is
// separate from Client so article fetches never inherit the API base URL.
type PreviewClient struct {
	http *resty.Client
}

// NewPreviewClient creates a preview client with a browser-ish user agent.
func NewPreviewClient(cfg *config.Config) *PreviewClient {
	client := resty.New()
	if t := cfg.Timeout(); t > 0 {
		client.SetTimeout(t)
	}
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; foliodesk/1.0)")

	return &PreviewClient{http: client}
}

// ArticlePreview is the quick look shown before opening a headline.
type ArticlePreview struct {
	Title       string
	Description string
}

// Preview fetches a headline's page and pulls its title and description.
// News pages are messy; missing tags yield empty fields, not errors.
func (p *PreviewClient) Preview(link string) (*ArticlePreview, error) {
	if strings.TrimSpace(link) == "" {
		return nil, fmt.Errorf("headline has no link")
	}

	resp, err := p.http.R().Get(link)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNetwork, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("article returned status %d", resp.StatusCode()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article page: %w", err)
	}

	preview := &ArticlePreview{}
	preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		preview.Title = strings.TrimSpace(og)
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		preview.Description = strings.TrimSpace(desc)
	}
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		preview.Description = strings.TrimSpace(og)
	}

	return preview, nil
}
