package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/geoaudit/analyzer"
	"github.com/seo-optimizer/geoaudit/scraper"
)

var (
	fetchTimeout      time.Duration
	jsonOutput        bool
	deriveSuggestions bool
)

var rootCmd = &cobra.Command{
	Use:   "geoaudit",
	Short: "Audit pages for traditional SEO and AI visibility",
	Long: `geoaudit fetches a page and scores it for traditional SEO, generative
engine optimization (GEO) and twelve AI-visibility factors.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", 15*time.Second, "page fetch timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().BoolVar(&deriveSuggestions, "derive-suggestions", false, "build content suggestions from the page itself")
}

// newFetcher is swapped in tests.
var newFetcher = func() analyzer.Fetcher {
	cfg := scraper.DefaultConfig()
	cfg.Timeout = fetchTimeout
	return scraper.New(cfg)
}

func newAnalyzer() *analyzer.Analyzer {
	opts := analyzer.DefaultOptions()
	if deriveSuggestions {
		opts.Strategy = analyzer.ContentDerived{}
	}
	return analyzer.New(newFetcher(), nil, nil, opts)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
