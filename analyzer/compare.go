package analyzer

import (
	"fmt"

	"github.com/seo-optimizer/geoaudit/models"
)

// Score gaps a category must exceed before its key differences are listed.
const (
	seoDiffThreshold          = 10
	aiVisibilityDiffThreshold = 15
	geoDiffThreshold          = 10
)

const notAssessed = "Not assessed"

// CompareWebsites diffs two analyses. Every diff is B minus A; ties in the
// combined diff go to A.
func CompareWebsites(
	recordA *models.ContentRecord, reportA *models.AuditReport,
	recordB *models.ContentRecord, reportB *models.AuditReport,
	visA, visB *models.AiVisibilityAssessment,
) models.Differences {
	d := models.Differences{
		SeoScoreDiff:     reportB.SeoScore - reportA.SeoScore,
		AiScoreDiff:      reportB.AiScore - reportA.AiScore,
		AiVisibilityDiff: visB.OverallScore - visA.OverallScore,
		BetterPerformer:  models.SideA,
		KeyDifferences:   []models.KeyDifference{},
	}
	if d.SeoScoreDiff+d.AiScoreDiff+d.AiVisibilityDiff > 0 {
		d.BetterPerformer = models.SideB
	}

	if abs(d.SeoScoreDiff) > seoDiffThreshold {
		d.KeyDifferences = append(d.KeyDifferences,
			lengthDifference(models.CategorySEO, "Title Optimization", textLength(recordA.Title), textLength(recordB.Title), 30, 60,
				"Keep the title between 30 and 60 characters and lead with the primary keyword."),
			lengthDifference(models.CategorySEO, "Meta Description", textLength(recordA.MetaDescription), textLength(recordB.MetaDescription), 120, 160,
				"Write a 120-160 character meta description that summarizes the page."),
		)
	}

	if abs(d.AiVisibilityDiff) > aiVisibilityDiffThreshold {
		d.KeyDifferences = append(d.KeyDifferences,
			factorDifference(visA, visB, models.FactorSummary, "TL;DR & Summary Sections",
				"Add a TL;DR at the top and a key takeaways section at the end."),
			factorDifference(visA, visB, models.FactorSchema, "Structured Data Implementation",
				"Add FAQPage, Article or HowTo JSON-LD markup."),
		)
	}

	if abs(d.AiScoreDiff) > geoDiffThreshold {
		h2A, h2B := recordA.HeadingCount(2), recordB.HeadingCount(2)
		d.KeyDifferences = append(d.KeyDifferences,
			models.KeyDifference{
				Category:       models.CategoryGEO,
				Aspect:         "Content Structure (Headings)",
				SiteA:          fmt.Sprintf("%d headings (%d H2)", len(recordA.Headings), h2A),
				SiteB:          fmt.Sprintf("%d headings (%d H2)", len(recordB.Headings), h2B),
				Recommendation: leaderAdvice(h2A, h2B, "Organize content under descriptive H2 sections so generative engines can quote each part."),
			},
			models.KeyDifference{
				Category:       models.CategoryGEO,
				Aspect:         "Schema Types",
				SiteA:          fmt.Sprintf("%d schema types", len(recordA.SchemaTypes)),
				SiteB:          fmt.Sprintf("%d schema types", len(recordB.SchemaTypes)),
				Recommendation: leaderAdvice(len(recordA.SchemaTypes), len(recordB.SchemaTypes), "Describe the page with more schema.org types."),
			},
		)
	}
	return d
}

func lengthDifference(cat models.Category, aspect string, a, b, lo, hi int, advice string) models.KeyDifference {
	inRange := func(n int) int {
		if n >= lo && n <= hi {
			return 1
		}
		return 0
	}
	return models.KeyDifference{
		Category:       cat,
		Aspect:         aspect,
		SiteA:          fmt.Sprintf("%d characters", a),
		SiteB:          fmt.Sprintf("%d characters", b),
		Recommendation: leaderAdvice(inRange(a), inRange(b), advice),
	}
}

func factorDifference(visA, visB *models.AiVisibilityAssessment, name models.FactorName, aspect, advice string) models.KeyDifference {
	fa, okA := visA.Factor(name)
	fb, okB := visB.Factor(name)
	kd := models.KeyDifference{
		Category:       models.CategoryAIVisibility,
		Aspect:         aspect,
		SiteA:          notAssessed,
		SiteB:          notAssessed,
		Recommendation: advice,
	}
	if !okA || !okB {
		return kd
	}
	kd.SiteA = fmt.Sprintf("%d/100", fa.Score)
	kd.SiteB = fmt.Sprintf("%d/100", fb.Score)
	kd.Recommendation = leaderAdvice(fa.Score, fb.Score, advice)
	return kd
}

// leaderAdvice names the side that leads on a measure and prefixes the advice
// for the trailing side.
func leaderAdvice(a, b int, advice string) string {
	switch {
	case b > a:
		return "Site B leads here. Site A: " + advice
	case a > b:
		return "Site A leads here. Site B: " + advice
	default:
		return "Both sites are level. " + advice
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
