package analyzer

import (
	"strconv"

	"github.com/seo-optimizer/geoaudit/models"
)

// Rule is one entry of an ordered check catalogue. Check always returns
// exactly one result and the points that result earns.
type Rule struct {
	Name  string
	Check func(r *models.ContentRecord) (models.SeoResult, int)
}

// runRules evaluates a catalogue in order and clamps the summed points.
func runRules(rules []Rule, r *models.ContentRecord) ([]models.SeoResult, int) {
	results := make([]models.SeoResult, 0, len(rules))
	score := 0
	for _, rl := range rules {
		res, pts := rl.Check(r)
		results = append(results, res)
		score += pts
	}
	return results, clamp(score, 0)
}

// SeoRules is the traditional SEO check catalogue in evaluation order.
var SeoRules = []Rule{
	{Name: "title", Check: checkTitle},
	{Name: "meta-description", Check: checkMetaDescription},
	{Name: "h1", Check: checkH1},
	{Name: "image-alt", Check: checkImageAlt},
	{Name: "schema", Check: checkSeoSchema},
	{Name: "load-time", Check: checkLoadTime},
}

// AnalyzeTraditionalSeo runs every SEO rule against the record.
func AnalyzeTraditionalSeo(r *models.ContentRecord) ([]models.SeoResult, int) {
	return runRules(SeoRules, r)
}

func checkTitle(r *models.ContentRecord) (models.SeoResult, int) {
	length := textLength(r.Title)
	metrics := map[string]string{"Length": strconv.Itoa(length)}
	switch {
	case length == 0:
		return models.SeoResult{
			Type:        models.ResultError,
			Title:       "Missing Title Tag",
			Description: "The page has no title tag. Search engines use the title as the main headline in results.",
			Metrics:     metrics,
		}, 0
	case length < 30 || length > 60:
		return models.SeoResult{
			Type:        models.ResultWarning,
			Title:       "Title Length Not Optimal",
			Description: "The title should be between 30 and 60 characters.",
			Details:     "Current title: " + r.Title,
			Metrics:     metrics,
		}, 10
	default:
		return models.SeoResult{
			Type:        models.ResultSuccess,
			Title:       "Title Tag Optimized",
			Description: "The title length is within the recommended 30-60 characters.",
			Details:     "Current title: " + r.Title,
			Metrics:     metrics,
		}, 20
	}
}

func checkMetaDescription(r *models.ContentRecord) (models.SeoResult, int) {
	length := textLength(r.MetaDescription)
	metrics := map[string]string{"Length": strconv.Itoa(length)}
	switch {
	case length == 0:
		return models.SeoResult{
			Type:        models.ResultError,
			Title:       "Missing Meta Description",
			Description: "Add a meta description to control the snippet shown in search results.",
			Metrics:     metrics,
		}, 0
	case length < 120 || length > 160:
		return models.SeoResult{
			Type:        models.ResultWarning,
			Title:       "Meta Description Length Not Optimal",
			Description: "The meta description should be between 120 and 160 characters.",
			Metrics:     metrics,
		}, 10
	default:
		return models.SeoResult{
			Type:        models.ResultSuccess,
			Title:       "Meta Description Optimized",
			Description: "The meta description length is within the recommended range.",
			Metrics:     metrics,
		}, 20
	}
}

func checkH1(r *models.ContentRecord) (models.SeoResult, int) {
	count := r.HeadingCount(1)
	metrics := map[string]string{"H1 Count": strconv.Itoa(count)}
	switch {
	case count == 0:
		return models.SeoResult{
			Type:        models.ResultError,
			Title:       "Missing H1 Heading",
			Description: "Every page should have exactly one H1 heading describing its topic.",
			Metrics:     metrics,
		}, 0
	case count == 1:
		return models.SeoResult{
			Type:        models.ResultSuccess,
			Title:       "Single H1 Heading",
			Description: "The page has exactly one H1 heading.",
			Metrics:     metrics,
		}, 20
	default:
		return models.SeoResult{
			Type:        models.ResultWarning,
			Title:       "Multiple H1 Headings",
			Description: "Multiple H1 headings found - consider using only one.",
			Metrics:     metrics,
		}, 10
	}
}

func checkImageAlt(r *models.ContentRecord) (models.SeoResult, int) {
	total := len(r.Images)
	withAlt := 0
	for _, img := range r.Images {
		if img.HasAlt {
			withAlt++
		}
	}
	metrics := map[string]string{
		"Images":   strconv.Itoa(total),
		"With Alt": strconv.Itoa(withAlt),
	}
	switch {
	case total == 0:
		return models.SeoResult{
			Type:        models.ResultWarning,
			Title:       "No Images Found",
			Description: "Images with descriptive alt text help both accessibility and image search.",
			Metrics:     metrics,
		}, 0
	case withAlt == total:
		return models.SeoResult{
			Type:        models.ResultSuccess,
			Title:       "All Images Have Alt Text",
			Description: "Every image on the page has alternative text.",
			Metrics:     metrics,
		}, 15
	default:
		return models.SeoResult{
			Type:        models.ResultWarning,
			Title:       "Images Missing Alt Text",
			Description: "Add alt text to all images.",
			Details:     strconv.Itoa(total-withAlt) + " image(s) have no alt text",
			Metrics:     metrics,
		}, 5
	}
}

func checkSeoSchema(r *models.ContentRecord) (models.SeoResult, int) {
	if r.HasSchema {
		return models.SeoResult{
			Type:        models.ResultSuccess,
			Title:       "Structured Data Present",
			Description: "The page includes schema.org structured data.",
		}, 10
	}
	return models.SeoResult{
		Type:        models.ResultWarning,
		Title:       "No Structured Data",
		Description: "Add schema.org markup so search engines can show rich results.",
	}, 0
}

func checkLoadTime(r *models.ContentRecord) (models.SeoResult, int) {
	metrics := map[string]string{"Load Time (ms)": strconv.Itoa(r.LoadTimeMs)}
	if r.LoadTimeMs > 3000 {
		return models.SeoResult{
			Type:        models.ResultWarning,
			Title:       "Slow Page Load",
			Description: "The page took more than 3 seconds to load. Consider using a CDN and reducing resource size.",
			Metrics:     metrics,
		}, 5
	}
	return models.SeoResult{
		Type:        models.ResultSuccess,
		Title:       "Fast Page Load",
		Description: "The page loaded in under 3 seconds.",
		Metrics:     metrics,
	}, 15
}
