package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/geoaudit/models"
)

func priorities(items []models.AIImprovement) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Priority
	}
	return out
}

func TestAIImprovements_Bands(t *testing.T) {
	tests := []struct {
		score int
		want  []int
	}{
		{0, []int{1, 2, 3, 4, 5, 6}},
		{49, []int{1, 2, 3, 4, 5, 6}},
		{50, []int{4, 5, 6, 7, 8}},
		{74, []int{4, 5, 6, 7, 8}},
		{75, []int{7, 8}},
		{84, []int{7, 8}},
		{85, []int{9, 10}},
		{100, []int{9, 10}},
	}

	for _, tt := range tests {
		got := AIImprovements(tt.score)
		assert.Equal(t, tt.want, priorities(got), "score %d", tt.score)
		assert.LessOrEqual(t, len(got), MaxAIImprovements)
	}
}

func TestGenerateContentSuggestions_Static(t *testing.T) {
	s := GenerateContentSuggestions(nil, emptyRecord(), 30)

	assert.Equal(t, catalogueKeywords, s.MissingKeywords)
	assert.Equal(t, catalogueBlogTitles, s.BlogTitles)
	assert.Equal(t, catalogueStructure, s.ContentStructure)
	assert.Equal(t, catalogueFAQs, s.FAQs)
	assert.Equal(t, models.VisibilityHigh, s.AIVisibility[models.PlatformPerplexity])
	assert.Len(t, s.AIVisibility, 5)
	assert.Len(t, s.AIImprovements, MaxAIImprovements)

	s.MissingKeywords[0] = "mutated"
	assert.NotEqual(t, "mutated", catalogueKeywords[0], "catalogue is copied")
}

func TestContentDerived(t *testing.T) {
	r := emptyRecord()
	r.Title = "Structured data for AI visibility"
	r.Content = "Structured data and FAQ schema help featured snippets."
	r.Headings = []models.Heading{
		{Level: 1, Text: "Structured data"},
		{Level: 2, Text: "Why it matters?"},
		{Level: 2, Text: "Getting started"},
	}

	s := GenerateContentSuggestions(ContentDerived{}, r, 90)

	assert.Equal(t, []string{"generative engine optimization", "content strategy"}, s.MissingKeywords)
	assert.Equal(t, []string{
		"H1: Structured data",
		"H2: Why it matters?",
		"H2: Getting started",
	}, s.ContentStructure)
	require.Len(t, s.BlogTitles, 2)
	assert.Equal(t, "getting started", s.BlogTitles[1].Target)
	require.Len(t, s.FAQs, 1)
	assert.Equal(t, "Why it matters?", s.FAQs[0].Question)
	assert.Equal(t, []int{9, 10}, priorities(s.AIImprovements))
}

func TestContentDerived_FallsBackToCatalogue(t *testing.T) {
	s := ContentDerived{}.Suggest(emptyRecord())

	assert.Equal(t, catalogueKeywords, s.MissingKeywords)
	assert.Equal(t, catalogueBlogTitles, s.BlogTitles)
	assert.Equal(t, catalogueStructure, s.ContentStructure)
	assert.Equal(t, catalogueFAQs, s.FAQs)
}
