package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/geoaudit/models"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
  <title> Guide to GEO </title>
  <meta name="description" content=" A short guide. ">
  <script type="application/ld+json">
  {"@context":"https://schema.org","@graph":[
    {"@type":"Article"},
    {"@type":["FAQPage","WebPage"],"mainEntity":[{"@type":"Question"}]}
  ]}
  </script>
</head>
<body>
  <h1>Guide</h1>
  <p>First   paragraph.</p>
  <ul><li>One</li><li><p>Two</p></li></ul>
  <h2>Details <em>here</em></h2>
  <img src="a.png" alt="Chart"><img src="b.png" alt=" "><img src="c.png">
  <a href="/about">About us</a>
  <a href="https://other.org/x">Other</a>
  <a href="#">skip</a>
  <a href="mailto:team@example.com">mail</a>
  <a href="javascript:void(0)">js</a>
  <div itemscope itemtype="https://schema.org/Organization"><span>Acme</span></div>
  <script>var hidden = "script text";</script>
</body>
</html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	pageURL, _ := url.Parse("https://example.com/guide")
	r := Extract(parse(t, testPage), pageURL)

	assert.Equal(t, "Guide to GEO", r.Title)
	assert.Equal(t, "A short guide.", r.MetaDescription)

	assert.Equal(t, []models.Heading{
		{Level: 1, Text: "Guide"},
		{Level: 2, Text: "Details here"},
	}, r.Headings)

	require.Len(t, r.Images, 3)
	assert.True(t, r.Images[0].HasAlt)
	assert.False(t, r.Images[1].HasAlt, "blank alt does not count")
	assert.False(t, r.Images[2].HasAlt)

	assert.Equal(t, []models.Link{
		{Href: "https://example.com/about", Text: "About us", IsInternal: true},
		{Href: "https://other.org/x", Text: "Other", IsInternal: false},
	}, r.Links)

	assert.True(t, r.HasSchema)
	assert.Equal(t, []string{"Article", "FAQPage", "Organization", "Question", "WebPage"}, r.SchemaTypes)

	assert.Equal(t, "Guide\n\nFirst paragraph.\n\n- One\n\n- Two\n\nDetails here\n\nAbout us Other skip mail js\n\nAcme", r.Content)
	assert.NotContains(t, r.Content, "script text")
	assert.Equal(t, 16, r.WordCount)
}

func TestExtract_ContainerText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		content string
		words   int
	}{
		{
			name: "div only",
			body: `<h1>Guide</h1><div>TL;DR: schema matters for AI answers across platforms.</div>` +
				`<div><span>Acme Inc</span> published a study in 2025.</div>`,
			content: "Guide\n\nTL;DR: schema matters for AI answers across platforms.\n\nAcme Inc published a study in 2025.",
			words:   16,
		},
		{
			name:    "direct text around nested blocks",
			body:    `<section>Intro text <p>Nested para</p> tail text</section>`,
			content: "Intro text\n\nNested para\n\ntail text",
			words:   6,
		},
		{
			name:    "article and main",
			body:    `<main><article><b>Bold</b> lead</article></main>`,
			content: "Bold lead",
			words:   2,
		},
		{
			name:    "nested list items",
			body:    `<ul><li>Parent<ul><li>Child</li></ul></li><li></li></ul><p>After</p>`,
			content: "- Parent\n\n- Child\n\nAfter",
			words:   5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Extract(parse(t, "<html><body>"+tt.body+"</body></html>"), nil)
			assert.Equal(t, tt.content, r.Content)
			assert.Equal(t, tt.words, r.WordCount)
		})
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	r := Extract(parse(t, "<html><body></body></html>"), nil)

	assert.Empty(t, r.Title)
	assert.NotNil(t, r.Headings)
	assert.NotNil(t, r.Images)
	assert.NotNil(t, r.Links)
	assert.NotNil(t, r.SchemaTypes)
	assert.False(t, r.HasSchema)
	assert.Empty(t, r.Content)
	assert.Zero(t, r.WordCount)
}

func TestExtract_InvalidJSONLD(t *testing.T) {
	r := Extract(parse(t, `<html><head><script type="application/ld+json">{not json</script></head><body><div>Loose text</div></body></html>`), nil)

	assert.True(t, r.HasSchema, "a JSON-LD block marks the page even if it does not parse")
	assert.Empty(t, r.SchemaTypes)
	assert.Equal(t, "Loose text", r.Content, "container text is kept")
}

func TestFetch(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	}))
	defer srv.Close()

	s := New(DefaultConfig())
	r, err := s.Fetch(context.Background(), srv.URL+"/guide")
	require.NoError(t, err)

	assert.Equal(t, "GEOAudit/1.0", userAgent)
	assert.Equal(t, srv.URL+"/guide", r.URL)
	assert.Equal(t, "Guide to GEO", r.Title)
	assert.Equal(t, srv.URL+"/about", r.Links[0].Href)
	assert.True(t, r.Links[0].IsInternal)
	assert.GreaterOrEqual(t, r.LoadTimeMs, 0)
}

func TestFetch_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	s := New(DefaultConfig())
	ctx := context.Background()

	for _, bad := range []string{"", "not a url", "ftp://example.com/file", "https://"} {
		_, err := s.Fetch(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidURL, bad)
	}

	_, err := s.Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Timeout = 50 * time.Millisecond
	_, err := New(cfg).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidURL)
}
