package analyzer

import "github.com/seo-optimizer/geoaudit/models"

// FailRecommendations holds the targeted advice for failing factors.
// Factors without an entry produce no targeted recommendation.
var FailRecommendations = map[models.FactorName]models.Recommendation{
	models.FactorSummary: {
		Priority:    models.PriorityHigh,
		Action:      "Add a TL;DR or summary section",
		Description: "Open the page with a two or three sentence TL;DR and close it with key takeaways.",
		Impact:      "AI assistants frequently quote summary sections verbatim.",
	},
	models.FactorQA: {
		Priority:    models.PriorityHigh,
		Action:      "Add a question and answer section",
		Description: "Phrase headings as the questions your audience asks and answer each one directly beneath it.",
		Impact:      "Matches the way users prompt AI platforms and increases the chance of direct citation.",
	},
	models.FactorSchema: {
		Priority:    models.PriorityHigh,
		Action:      "Implement structured data markup",
		Description: "Add JSON-LD schema such as FAQPage, Article or HowTo describing the page content.",
		Impact:      "Gives AI systems explicit, machine-readable facts about the page.",
	},
	models.FactorClarity: {
		Priority:    models.PriorityHigh,
		Action:      "Improve content clarity",
		Description: "Introduce the topic in the first paragraph, define key terms and keep the body focused on the title.",
		Impact:      "Clear, definitional content is easier for AI models to summarize accurately.",
	},
}

// WarningRecommendations holds the advice for factors in the warning band.
var WarningRecommendations = map[models.FactorName]models.Recommendation{
	models.FactorHTMLStructure: {
		Priority:    models.PriorityMedium,
		Action:      "Tighten the heading hierarchy",
		Description: "Use a single H1, H2 for main sections and H3 for subsections, with a 30-60 character title.",
		Impact:      "A clean hierarchy helps AI crawlers map the structure of the page.",
	},
	models.FactorScannability: {
		Priority:    models.PriorityMedium,
		Action:      "Make content easier to scan",
		Description: "Break long paragraphs up, add bullet lists and insert a heading every few hundred words.",
		Impact:      "Scannable sections are extracted more reliably as standalone answers.",
	},
	models.FactorReadability: {
		Priority:    models.PriorityMedium,
		Action:      "Improve readability",
		Description: "Aim for 10-20 words per sentence, prefer plain words and add examples.",
		Impact:      "Readable text is summarized with fewer errors.",
	},
}

var (
	freshnessRecommendation = models.Recommendation{
		Priority:    models.PriorityMedium,
		Action:      "Keep content fresh",
		Description: "Add a last-updated date and refresh statistics and examples with current information.",
		Impact:      "AI platforms favour recent, maintained sources.",
	}
	statisticsRecommendation = models.Recommendation{
		Priority:    models.PriorityLow,
		Action:      "Add data and statistics",
		Description: "Support claims with concrete numbers, percentages and cited research.",
		Impact:      "Specific, verifiable figures make content more quotable.",
	}
)

// Recommend builds the ordered recommendation list: failing factors first,
// then warning factors, then score-banded generic advice, capped at
// MaxRecommendations.
func Recommend(overall int, factors []models.FactorResult) []models.Recommendation {
	recs := make([]models.Recommendation, 0, MaxRecommendations)
	for _, f := range factors {
		if f.Status != models.StatusFail {
			continue
		}
		if rec, ok := FailRecommendations[f.Factor]; ok {
			recs = append(recs, rec)
		}
	}
	for _, f := range factors {
		if f.Status != models.StatusWarning {
			continue
		}
		if rec, ok := WarningRecommendations[f.Factor]; ok {
			recs = append(recs, rec)
		}
	}
	if overall < 70 {
		recs = append(recs, freshnessRecommendation)
	}
	if overall < 50 {
		recs = append(recs, statisticsRecommendation)
	}
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}
