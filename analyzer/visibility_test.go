package analyzer

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/geoaudit/models"
)

func TestAnalyzeAIPlatformVisibility_EmptyRecord(t *testing.T) {
	withYear(t, 2025)

	v := AnalyzeAIPlatformVisibility(emptyRecord())

	require.Len(t, v.Factors, len(Factors))
	// 85+0+10+5+0+0+0+5+5+30+10+15 = 165 -> 13.75
	assert.Equal(t, 14, v.OverallScore)
	assert.True(t, strings.HasPrefix(v.Summary, "Low AI visibility"))

	actions := make([]string, len(v.Recommendations))
	for i, r := range v.Recommendations {
		actions[i] = r.Action
	}
	assert.Equal(t, []string{
		FailRecommendations[models.FactorClarity].Action,
		FailRecommendations[models.FactorSummary].Action,
		FailRecommendations[models.FactorQA].Action,
		FailRecommendations[models.FactorSchema].Action,
		freshnessRecommendation.Action,
		statisticsRecommendation.Action,
	}, actions)
}

func TestOverallScore(t *testing.T) {
	assert.Equal(t, 0, OverallScore(0, 12))
	assert.Equal(t, 100, OverallScore(1200, 12))
	assert.Equal(t, 50, OverallScore(600, 12))
	assert.Equal(t, 14, OverallScore(165, 12))
	assert.Equal(t, 0, OverallScore(0, 0))
}

func TestSummarize(t *testing.T) {
	factors := []models.FactorResult{
		{Factor: models.FactorSchema, Status: models.StatusFail},
		{Factor: models.FactorQA, Status: models.StatusWarning},
		{Factor: models.FactorSummary, Status: models.StatusPass},
	}

	assert.True(t, strings.HasPrefix(Summarize(80, factors), "Excellent AI visibility"))
	assert.Contains(t, Summarize(60, factors), "2 factors need attention")
	assert.Contains(t, Summarize(40, factors), "1 factors are failing")
	assert.True(t, strings.HasPrefix(Summarize(39, factors), "Low AI visibility"))
}

// randomRecord builds an arbitrary record from a vocabulary that triggers
// most of the keyword heuristics.
func randomRecord(rng *rand.Rand) *models.ContentRecord {
	vocab := []string{
		"TL;DR", "summary", "FAQ", "Q:", "A:", "what", "how", "why", "study", "research",
		"2019", "2024", "2025", "March", "updated", "latest", "free", "paywall", "login required",
		"45%", "$300", "table", "vs", "Acme Inc", "Stanford", "certified", "expert", "privacy policy",
		"- item", "1. step", "**bold**", "Note:", "in conclusion", "for example", "is defined as",
		"the", "a", "content", "page", "engine", "optimization", "\n", "\n\n", ".", "?",
	}
	words := rng.Intn(400)
	var b strings.Builder
	for i := 0; i < words; i++ {
		b.WriteString(vocab[rng.Intn(len(vocab))])
		b.WriteByte(' ')
	}
	content := b.String()

	r := &models.ContentRecord{
		URL:             "https://example.com/random",
		Title:           strings.Repeat("t", rng.Intn(80)),
		MetaDescription: strings.Repeat("m", rng.Intn(200)),
		Content:         content,
		WordCount:       len(strings.Fields(content)),
		LoadTimeMs:      rng.Intn(6000),
		HasSchema:       rng.Intn(2) == 0,
	}
	for i := rng.Intn(8); i > 0; i-- {
		text := vocab[rng.Intn(len(vocab))]
		if rng.Intn(3) == 0 {
			text += "?"
		}
		r.Headings = append(r.Headings, models.Heading{Level: 1 + rng.Intn(6), Text: text})
	}
	for i := rng.Intn(5); i > 0; i-- {
		hasAlt := rng.Intn(2) == 0
		r.Images = append(r.Images, models.Image{Src: "img.png", HasAlt: hasAlt})
	}
	for i := rng.Intn(10); i > 0; i-- {
		r.Links = append(r.Links, models.Link{Href: "https://en.wikipedia.org/wiki/X", Text: "Contact us", IsInternal: rng.Intn(2) == 0})
	}
	if r.HasSchema {
		types := []string{"FAQPage", "Article", "HowTo", "Organization"}
		for _, typ := range types {
			if rng.Intn(2) == 0 {
				r.SchemaTypes = append(r.SchemaTypes, typ)
			}
		}
	}
	return r
}

func TestVisibilityProperties(t *testing.T) {
	withYear(t, 2025)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 300; i++ {
		r := randomRecord(rng)

		v := AnalyzeAIPlatformVisibility(r)
		require.Len(t, v.Factors, len(Factors))

		total := 0
		for j, f := range v.Factors {
			assert.Equal(t, Factors[j].Name, f.Factor, "catalogue order")
			assert.GreaterOrEqual(t, f.Score, 0)
			assert.LessOrEqual(t, f.Score, 100)
			assert.Equal(t, models.StatusForScore(f.Score), f.Status)
			total += f.Score
		}

		want := int(math.Round(float64(total) / float64(len(Factors)*100) * 100))
		assert.Equal(t, want, v.OverallScore)
		assert.LessOrEqual(t, len(v.Recommendations), MaxRecommendations)

		again := AnalyzeAIPlatformVisibility(r)
		assert.Equal(t, v, again, "assessment is deterministic")

		seoResults, seo := AnalyzeTraditionalSeo(r)
		assert.Len(t, seoResults, len(SeoRules))
		assert.GreaterOrEqual(t, seo, 0)
		assert.LessOrEqual(t, seo, 100)

		geoResults, geo := AnalyzeGeo(r)
		assert.Len(t, geoResults, len(GeoRules))
		assert.GreaterOrEqual(t, geo, 0)
		assert.LessOrEqual(t, geo, 100)
	}
}
