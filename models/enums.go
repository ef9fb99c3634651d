package models

// Status is the pass/warning/fail band of a factor score.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// StatusForScore maps a 0-100 score onto its status band.
func StatusForScore(score int) Status {
	switch {
	case score >= 80:
		return StatusPass
	case score >= 50:
		return StatusWarning
	default:
		return StatusFail
	}
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ResultType classifies a single SEO or GEO check outcome.
type ResultType string

const (
	ResultSuccess ResultType = "success"
	ResultWarning ResultType = "warning"
	ResultError   ResultType = "error"
)

// FactorName identifies one of the twelve AI-visibility factors.
type FactorName string

const (
	FactorCrawlability  FactorName = "Crawlability"
	FactorHTMLStructure FactorName = "HTML Structure"
	FactorClarity       FactorName = "Content Clarity"
	FactorScannability  FactorName = "Content Scannability"
	FactorSummary       FactorName = "TL;DR & Summary"
	FactorQA            FactorName = "Q&A Format"
	FactorSchema        FactorName = "Schema Markup"
	FactorEntities      FactorName = "Trusted Entities"
	FactorDataFormats   FactorName = "Data Extraction Formats"
	FactorReadability   FactorName = "Readability"
	FactorFreshness     FactorName = "Content Freshness"
	FactorCredibility   FactorName = "Credibility Signals"
)

// Category groups comparison key differences.
type Category string

const (
	CategorySEO          Category = "Traditional SEO"
	CategoryAIVisibility Category = "AI Visibility"
	CategoryGEO          Category = "GEO"
)

// Side identifies one of the two compared pages.
type Side string

const (
	SideA Side = "site_a"
	SideB Side = "site_b"
)

type AIPlatform string

const (
	PlatformChatGPT    AIPlatform = "ChatGPT"
	PlatformClaude     AIPlatform = "Claude"
	PlatformPerplexity AIPlatform = "Perplexity"
	PlatformGemini     AIPlatform = "Gemini"
	PlatformCopilot    AIPlatform = "Copilot"
)

type VisibilityLevel string

const (
	VisibilityLow    VisibilityLevel = "low"
	VisibilityMedium VisibilityLevel = "medium"
	VisibilityHigh   VisibilityLevel = "high"
)
