package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geoaudit/models"
)

var compareCmd = &cobra.Command{
	Use:   "compare [urlA] [urlB]",
	Short: "Compare two pages side by side",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	a := newAnalyzer()
	defer a.Shutdown()

	result, err := a.Compare(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, result)
	}

	printComparison(cmd, args[0], args[1], result)
	return nil
}

func printComparison(cmd *cobra.Command, urlA, urlB string, result *models.ComparisonResult) {
	out := cmd.OutOrStdout()
	d := result.Differences

	fmt.Fprintln(out, titleStyle.Render("Comparison"))
	fmt.Fprintf(out, "  A: %s\n  B: %s\n\n", urlA, urlB)
	fmt.Fprintf(out, "  %-14s %8s %8s %6s\n", "", "Site A", "Site B", "B-A")
	fmt.Fprintf(out, "  %-14s %8d %8d %+6d\n", "SEO", result.ReportA.SeoScore, result.ReportB.SeoScore, d.SeoScoreDiff)
	fmt.Fprintf(out, "  %-14s %8d %8d %+6d\n", "GEO", result.ReportA.AiScore, result.ReportB.AiScore, d.AiScoreDiff)
	fmt.Fprintf(out, "  %-14s %8d %8d %+6d\n", "AI visibility", result.AIVisibilityA.OverallScore, result.AIVisibilityB.OverallScore, d.AiVisibilityDiff)
	fmt.Fprintln(out)

	winner := "Site A"
	if d.BetterPerformer == models.SideB {
		winner = "Site B"
	}
	fmt.Fprintln(out, "Better performer: " + successStyle.Render(winner))

	if len(d.KeyDifferences) == 0 {
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, sectionStyle.Render("Key differences"))
	for _, kd := range d.KeyDifferences {
		fmt.Fprintf(out, "  %s / %s: A=%s B=%s\n", kd.Category, kd.Aspect, kd.SiteA, kd.SiteB)
		fmt.Fprintln(out, "      " + mutedStyle.Render(kd.Recommendation))
	}
}
