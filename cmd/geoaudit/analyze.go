package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geoaudit/analyzer"
	"github.com/seo-optimizer/geoaudit/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Run the SEO and GEO audit for a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a := newAnalyzer()
	defer a.Shutdown()

	analysis, err := a.Analyze(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, struct {
			models.AuditReport
			AiVisibility models.AiVisibilityAssessment `json:"aiVisibility"`
		}{analysis.Report, analysis.Visibility})
	}

	printAudit(cmd, analysis)
	return nil
}

func printAudit(cmd *cobra.Command, analysis *analyzer.Analysis) {
	out := cmd.OutOrStdout()
	report := analysis.Report

	fmt.Fprintln(out, titleStyle.Render("Audit: " + report.URL))
	fmt.Fprintf(out, "SEO score: %s   GEO score: %s   AI visibility: %s\n",
		score(report.SeoScore), score(report.AiScore), score(analysis.Visibility.OverallScore))
	fmt.Fprintln(out)

	printResults(cmd, "Traditional SEO", report.TraditionalSeoResults)
	printResults(cmd, "GEO", report.GeoResults)

	suggestions := report.ContentSuggestions
	if len(suggestions.AIImprovements) > 0 {
		fmt.Fprintln(out, sectionStyle.Render("Improvements"))
		for _, imp := range suggestions.AIImprovements {
			fmt.Fprintf(out, "  %d. %s %s\n", imp.Priority, imp.Action, mutedStyle.Render("("+imp.Impact+" impact)"))
		}
		fmt.Fprintln(out)
	}
	if len(suggestions.MissingKeywords) > 0 {
		fmt.Fprintln(out, sectionStyle.Render("Missing keywords"))
		for _, kw := range suggestions.MissingKeywords {
			fmt.Fprintln(out, "  - " + kw)
		}
		fmt.Fprintln(out)
	}
}

func printResults(cmd *cobra.Command, heading string, results []models.SeoResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, sectionStyle.Render(heading))
	for _, r := range results {
		marker := resultStyle(r.Type).Render(fmt.Sprintf("[%s]", r.Type))
		fmt.Fprintf(out, "  %s %s: %s\n", marker, r.Title, r.Description)
		if r.Details != "" {
			fmt.Fprintln(out, "      " + mutedStyle.Render(r.Details))
		}
	}
	fmt.Fprintln(out)
}
