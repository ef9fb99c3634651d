package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seo-optimizer/geoaudit/models"
)

func withYear(t *testing.T, year int) {
	t.Helper()
	original := currentYear
	currentYear = func() int { return year }
	t.Cleanup(func() { currentYear = original })
}

func TestFactorsCatalogue(t *testing.T) {
	want := []models.FactorName{
		models.FactorCrawlability,
		models.FactorHTMLStructure,
		models.FactorClarity,
		models.FactorScannability,
		models.FactorSummary,
		models.FactorQA,
		models.FactorSchema,
		models.FactorEntities,
		models.FactorDataFormats,
		models.FactorReadability,
		models.FactorFreshness,
		models.FactorCredibility,
	}

	got := make([]models.FactorName, len(Factors))
	for i, f := range Factors {
		got[i] = f.Name
		assert.NotEmpty(t, f.Description, f.Name)
		assert.NotNil(t, f.Assess, f.Name)
	}
	assert.Equal(t, want, got)
}

func TestFactors_EmptyRecordBaselines(t *testing.T) {
	withYear(t, 2025)
	r := emptyRecord()

	assert.Equal(t, 85, AssessCrawlability(r))
	assert.Equal(t, 0, AssessHTMLStructure(r))
	assert.Equal(t, 10, AssessClarity(r))
	assert.Equal(t, 5, AssessScannability(r))
	assert.Equal(t, 0, AssessSummary(r))
	assert.Equal(t, 0, AssessQA(r))
	assert.Equal(t, 0, AssessSchema(r))
	assert.Equal(t, 5, AssessEntities(r))
	assert.Equal(t, 5, AssessDataFormats(r))
	assert.Equal(t, 30, AssessReadability(r))
	assert.Equal(t, 10, AssessFreshness(r))
	assert.Equal(t, 15, AssessCredibility(r))
}

func TestAssessCrawlability(t *testing.T) {
	blocked := &models.ContentRecord{
		Title:   "404 Not Found",
		Content: "Subscribe to read the rest. Login required.",
	}
	assert.Equal(t, 40, AssessCrawlability(blocked))

	open := &models.ContentRecord{
		Title:   "Guide",
		Content: "A free and public guide.",
	}
	assert.Equal(t, 95, AssessCrawlability(open))

	walled := &models.ContentRecord{
		Content: strings.Repeat("Members only. Paywall. ", 4),
	}
	assert.Equal(t, 0, AssessCrawlability(walled), "penalties clamp at zero")
}

func TestAssessHTMLStructure(t *testing.T) {
	r := &models.ContentRecord{
		Title:           strings.Repeat("t", 40),
		MetaDescription: strings.Repeat("m", 130),
		Headings: []models.Heading{
			{Level: 1, Text: "Topic"},
			{Level: 2, Text: "Section"},
			{Level: 3, Text: "Subsection"},
		},
	}
	assert.Equal(t, 100, AssessHTMLStructure(r))

	r.Headings = append(r.Headings, models.Heading{Level: 1, Text: "Second H1"})
	assert.Equal(t, 75, AssessHTMLStructure(r))
}

func TestAssessClarity(t *testing.T) {
	r := &models.ContentRecord{
		Title:     "Generative Engine Optimization Guide",
		Content:   "In this guide you will learn what GEO is. GEO refers to optimizing content for AI answers.",
		WordCount: 300,
	}
	// 10 base + 15 intro + 1 question density + 15 definition + 15 length + 5 title overlap
	assert.Equal(t, 61, AssessClarity(r))
}

func TestAssessScannability(t *testing.T) {
	r := &models.ContentRecord{
		Content:   "Intro line.\n\n- a point\n- another point\n\nClosing line.",
		Headings:  []models.Heading{{Level: 1, Text: "A"}, {Level: 2, Text: "B"}},
		WordCount: 10,
	}
	assert.Equal(t, 70, AssessScannability(r))
}

func TestAssessSummary(t *testing.T) {
	r := &models.ContentRecord{Content: "TL;DR: quick answer.\n\nKey takeaways below.\n\nIn conclusion, done."}
	assert.Equal(t, 100, AssessSummary(r))

	r = &models.ContentRecord{Headings: []models.Heading{{Level: 2, Text: "Summary"}}}
	assert.Equal(t, 30, AssessSummary(r), "headings count towards summary markers")
}

func TestAssessQA(t *testing.T) {
	r := &models.ContentRecord{
		Headings: []models.Heading{{Level: 2, Text: "What is GEO?"}},
		Content:  "Q: What is it?\nA: It is a way to structure content.",
	}
	assert.Equal(t, 100, AssessQA(r))

	r = &models.ContentRecord{Headings: []models.Heading{{Level: 2, Text: "How pricing works"}}}
	assert.Equal(t, 30, AssessQA(r), "interrogative heading without question mark")
}

func TestAssessSchema(t *testing.T) {
	tests := []struct {
		name  string
		has   bool
		types []string
		want  int
	}{
		{"none", false, nil, 0},
		{"types ignored without schema", false, []string{"FAQPage"}, 0},
		{"generic", true, []string{"Organization"}, 50},
		{"faq and article", true, []string{"FAQPage", "Article"}, 85},
		{"all bonuses", true, []string{"FAQPage", "Article", "HowTo"}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssessSchema(&models.ContentRecord{HasSchema: tt.has, SchemaTypes: tt.types}))
		})
	}
}

func TestAssessEntities(t *testing.T) {
	r := &models.ContentRecord{
		Content: "According to a Stanford study published in a journal, Acme Inc grew.",
		Links: []models.Link{
			{Href: "https://www.nih.gov/x", IsInternal: false},
			{Href: "https://en.wikipedia.org/wiki/GEO", IsInternal: false},
		},
	}
	// 5 base + 10 domains + 16 research + 5 industry + 4 external links + 2 corporate
	assert.Equal(t, 42, AssessEntities(r))
}

func TestAssessDataFormats(t *testing.T) {
	r := &models.ContentRecord{
		Content: "- one\n- two\n1. first\n2. second\nGrowth hit 45% and $1,200 in 3 months. See the table: A vs B.",
	}
	// 5 base + 6 bullets + 6 numbered + 6 stats + 4 visual + 3 comparison
	assert.Equal(t, 30, AssessDataFormats(r))
}

func TestAssessReadability(t *testing.T) {
	r := &models.ContentRecord{Content: "The cat sat on the mat and then it went to sleep."}
	assert.Equal(t, 90, AssessReadability(r))

	dense := &models.ContentRecord{
		Content: strings.Repeat("Comprehensive organizational implementation considerations necessitate extraordinary deliberation ", 8),
	}
	assert.Less(t, AssessReadability(dense), AssessReadability(r))
}

func TestAssessFreshness(t *testing.T) {
	withYear(t, 2025)

	r := &models.ContentRecord{Content: "Last updated March 2025. Covers 2024 changes."}
	// 10 base + 8 current year + 4 prior year + 14 freshness terms + 2 month
	assert.Equal(t, 38, AssessFreshness(r))

	stale := &models.ContentRecord{Content: "2017 2018 2019 2020 2017"}
	assert.Equal(t, 0, AssessFreshness(stale))

	lowercase := &models.ContentRecord{Content: "you may march on"}
	assert.Equal(t, 10, AssessFreshness(lowercase), "month names are case sensitive")

	embedded := &models.ContentRecord{Content: "build 20255, tag v2025 and ref x2025y"}
	assert.Equal(t, 10, AssessFreshness(embedded), "years inside longer tokens do not count")

	dated := &models.ContentRecord{Content: "Shipped 2025-01-02."}
	assert.Equal(t, 18, AssessFreshness(dated))
}

func TestFullText_HeadingsNotRepeated(t *testing.T) {
	r := &models.ContentRecord{
		Title: "Guide",
		Headings: []models.Heading{
			{Level: 1, Text: "Release 2025"},
			{Level: 2, Text: "Extras"},
		},
		Content: "Release 2025\n\nBody text.",
	}
	text := fullText(r)
	assert.Equal(t, "Guide\nExtras\nRelease 2025\n\nBody text.", text)
	assert.Equal(t, 1, strings.Count(text, "2025"))

	withYear(t, 2025)
	// 10 base + 8 current year + 3 version term
	assert.Equal(t, 21, AssessFreshness(r))
}

func TestAssessCredibility(t *testing.T) {
	r := &models.ContentRecord{
		Content: "By Jane Doe\nWritten by a certified expert. Published 2024. Sources: see references.",
		Links: []models.Link{
			{Href: "/contact", Text: "Contact us", IsInternal: true},
			{Href: "/privacy", Text: "Privacy Policy", IsInternal: true},
		},
	}
	assert.Equal(t, 72, AssessCredibility(r))
}

func TestFactorsStayInRange(t *testing.T) {
	withYear(t, 2025)
	loud := &models.ContentRecord{
		Title:   "2025 2025 2025 TL;DR FAQ",
		Content: strings.Repeat("TL;DR summary in conclusion. Q: why? A: because. study research journal 45% $10 table vs ```x``` latest updated 2025 January certified expert privacy policy source.\n- item\n1. step\n\n", 40),
		Headings: []models.Heading{
			{Level: 1, Text: "What is it?"},
			{Level: 2, Text: "How it works"},
			{Level: 3, Text: "Details"},
		},
		HasSchema:   true,
		SchemaTypes: []string{"FAQPage", "Article", "HowTo", "Organization"},
		WordCount:   1200,
	}
	for _, f := range Factors {
		score := f.Assess(loud)
		assert.GreaterOrEqual(t, score, 0, f.Name)
		assert.LessOrEqual(t, score, 100, f.Name)
	}
}
