package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/seo-optimizer/geoaudit/models"
)

var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// Config contains fetcher configuration
type Config struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// DefaultConfig returns default fetcher configuration
func DefaultConfig() Config {
	return Config{
		Timeout:      15 * time.Second,
		UserAgent:    "GEOAudit/1.0",
		MaxBodyBytes: 10 * 1024 * 1024,
	}
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// Scraper fetches pages and turns them into ContentRecords
type Scraper struct {
	config Config
	client *http.Client
}

// New creates a new Scraper instance
func New(config Config) *Scraper {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Scraper{
		config: config,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

// Fetch downloads targetURL and extracts its content record
func (s *Scraper) Fetch(ctx context.Context, targetURL string) (*models.ContentRecord, error) {
	pageURL, err := url.Parse(targetURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, targetURL)
	}

	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	body := io.Reader(resp.Body)
	if s.config.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, s.config.MaxBodyBytes)
	}
	if _, err := io.Copy(buf, body); err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	loadTime := time.Since(startTime)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	record := Extract(doc, pageURL)
	record.URL = targetURL
	record.LoadTimeMs = int(loadTime.Milliseconds())
	return record, nil
}

// Extract builds a ContentRecord from a parsed document. LoadTimeMs is left
// for the caller.
func Extract(doc *goquery.Document, pageURL *url.URL) *models.ContentRecord {
	record := &models.ContentRecord{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Headings:    []models.Heading{},
		Images:      []models.Image{},
		Links:       []models.Link{},
		SchemaTypes: []string{},
	}
	record.MetaDescription, _ = doc.Find("meta[name='description']").Attr("content")
	record.MetaDescription = strings.TrimSpace(record.MetaDescription)

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level := int(goquery.NodeName(s)[1] - '0')
		record.Headings = append(record.Headings, models.Heading{
			Level: level,
			Text:  collapseSpace(s.Text()),
		})
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, exists := s.Attr("alt")
		record.Images = append(record.Images, models.Image{
			Src:    src,
			Alt:    alt,
			HasAlt: exists && strings.TrimSpace(alt) != "",
		})
	})

	record.Links = extractLinks(doc, pageURL)
	record.HasSchema, record.SchemaTypes = extractSchema(doc)
	record.Content = extractText(doc)
	record.WordCount = len(strings.Fields(record.Content))
	return record
}

func extractLinks(doc *goquery.Document, pageURL *url.URL) []models.Link {
	links := []models.Link{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		lower := strings.ToLower(href)
		if href == "" || href == "#" || strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := ref
		if pageURL != nil {
			resolved = pageURL.ResolveReference(ref)
		}
		internal := pageURL != nil && strings.EqualFold(resolved.Host, pageURL.Host)
		links = append(links, models.Link{
			Href:       resolved.String(),
			Text:       collapseSpace(s.Text()),
			IsInternal: internal,
		})
	})
	return links
}

// extractSchema reads JSON-LD blocks and microdata itemtype attributes.
func extractSchema(doc *goquery.Document) (bool, []string) {
	found := false
	types := map[string]struct{}{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		found = true
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}
		collectTypes(payload, types)
	})

	doc.Find("[itemtype]").Each(func(_ int, s *goquery.Selection) {
		found = true
		itemType, _ := s.Attr("itemtype")
		for _, t := range strings.Fields(itemType) {
			if i := strings.LastIndex(t, "/"); i >= 0 {
				t = t[i+1:]
			}
			if t != "" {
				types[t] = struct{}{}
			}
		}
	})

	out := make([]string, 0, len(types))
	for t := range types {
		out = append(out, t)
	}
	sort.Strings(out)
	return found, out
}

func collectTypes(v interface{}, types map[string]struct{}) {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			collectTypes(item, types)
		}
	case map[string]interface{}:
		switch t := node["@type"].(type) {
		case string:
			types[t] = struct{}{}
		case []interface{}:
			for _, item := range t {
				if s, ok := item.(string); ok {
					types[s] = struct{}{}
				}
			}
		}
		if graph, ok := node["@graph"]; ok {
			collectTypes(graph, types)
		}
		if entities, ok := node["mainEntity"]; ok {
			collectTypes(entities, types)
		}
	}
}

var (
	blockElements = map[string]bool{
		"p": true, "li": true, "div": true, "section": true, "article": true, "main": true,
		"header": true, "footer": true, "aside": true, "nav": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"blockquote": true, "pre": true, "table": true, "tr": true, "ul": true, "ol": true,
		"dl": true, "dt": true, "dd": true, "figure": true, "figcaption": true, "br": true,
	}
	skippedElements = map[string]bool{
		"script": true, "style": true, "noscript": true, "template": true, "svg": true,
		"head": true, "iframe": true, "#comment": true,
	}
)

// textBlocks accumulates inline text until a block boundary flushes it.
type textBlocks struct {
	blocks []string
	inline strings.Builder
	prefix string
}

func (t *textBlocks) flush() {
	text := collapseSpace(t.inline.String())
	t.inline.Reset()
	if text == "" {
		return
	}
	t.blocks = append(t.blocks, t.prefix+text)
	t.prefix = ""
}

func (t *textBlocks) walk(s *goquery.Selection) {
	s.Contents().Each(func(_ int, n *goquery.Selection) {
		name := goquery.NodeName(n)
		switch {
		case name == "#text":
			t.inline.WriteString(n.Text())
		case skippedElements[name]:
		case blockElements[name]:
			t.flush()
			if name == "li" {
				t.prefix = "- "
			}
			t.walk(n)
			t.flush()
			t.prefix = ""
		default:
			t.walk(n)
		}
	})
}

// extractText flattens the body into paragraphs separated by blank lines.
// Text sitting directly in a container is emitted as its own paragraph, and
// list items keep a "- " marker so list heuristics can see them.
func extractText(doc *goquery.Document) string {
	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}

	var t textBlocks
	t.walk(body)
	t.flush()
	return strings.Join(t.blocks, "\n\n")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
