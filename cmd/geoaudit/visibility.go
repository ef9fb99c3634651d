package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geoaudit/models"
)

var visibilityCmd = &cobra.Command{
	Use:   "visibility [url]",
	Short: "Score a page against the twelve AI-visibility factors",
	Args:  cobra.ExactArgs(1),
	RunE:  runVisibility,
}

func init() {
	rootCmd.AddCommand(visibilityCmd)
}

func runVisibility(cmd *cobra.Command, args []string) error {
	a := newAnalyzer()
	defer a.Shutdown()

	analysis, err := a.Analyze(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("visibility assessment failed: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd, analysis.Visibility)
	}

	printVisibility(cmd, args[0], analysis.Visibility)
	return nil
}

func printVisibility(cmd *cobra.Command, url string, v models.AiVisibilityAssessment) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("AI visibility: " + url))
	fmt.Fprintf(out, "Overall: %s\n", score(v.OverallScore))
	fmt.Fprintln(out, mutedStyle.Render(v.Summary))
	fmt.Fprintln(out)

	fmt.Fprintln(out, sectionStyle.Render("Factors"))
	for _, f := range v.Factors {
		status := statusStyle(f.Status).Render(fmt.Sprintf("%-7s", f.Status))
		fmt.Fprintf(out, "  %s %3d  %s\n", status, f.Score, f.Factor)
	}
	fmt.Fprintln(out)

	if len(v.Recommendations) == 0 {
		return
	}
	fmt.Fprintln(out, sectionStyle.Render("Recommendations"))
	for _, r := range v.Recommendations {
		fmt.Fprintf(out, "  [%s] %s\n", r.Priority, r.Action)
		fmt.Fprintln(out, "      " + mutedStyle.Render(r.Description))
	}
}
