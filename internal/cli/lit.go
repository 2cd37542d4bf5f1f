package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitalctl/vital/internal/cache"
	"github.com/vitalctl/vital/internal/llm"
	"github.com/vitalctl/vital/internal/model"
	"github.com/vitalctl/vital/internal/pubmed"
)

var (
	litMax       int
	litSummarize bool
)

// litCmd represents the lit command
var litCmd = &cobra.Command{
	Use:   "lit",
	Short: "Search the medical literature",
}

// litSearchCmd represents the lit search subcommand
var litSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search PubMed for meta-analyses and systematic reviews",
	Long: `Search queries PubMed's E-utilities, restricted to meta-analyses and
systematic reviews, and reports effect sizes found in the abstracts.

Searches are best effort: network or upstream failures are reported
and never fail the command. Results inform hand-curated records; they
are never written into the catalog automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLitSearch,
}

func init() {
	rootCmd.AddCommand(litCmd)
	litCmd.AddCommand(litSearchCmd)

	litSearchCmd.Flags().IntVar(&litMax, "max", 0, "maximum number of results (0 = configured default)")
	litSearchCmd.Flags().BoolVar(&litSummarize, "llm", false, "summarize the results with the configured LLM provider")
}

// newSearchCache builds the response cache the config asks for: layered
// memory+disk when a cache dir is resolvable, memory only otherwise,
// nil when caching is off.
func newSearchCache(cfg model.PubMedConfig) cache.Cache {
	if !cfg.CacheEnabled {
		return nil
	}

	dir := cfg.CacheDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cache.NewMemory(cfg.CacheTTL, cfg.CacheTTL)
		}
		dir = filepath.Join(home, ".vital", "cache")
	}
	return cache.NewLayered(cfg.CacheTTL, dir, cfg.CacheTTL)
}

func runLitSearch(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()
	query := strings.Join(args, " ")

	client := pubmed.NewClient(cfg.PubMed, newSearchCache(cfg.PubMed))

	articles, err := client.Search(context.Background(), query, litMax)
	if err != nil {
		// Best effort: report and move on.
		fmt.Fprintf(os.Stderr, "Search error: %v\n", err)
		return nil
	}
	if len(articles) == 0 {
		fmt.Printf("No meta-analyses or systematic reviews found for %q.\n", query)
		return nil
	}

	fmt.Printf("Found %d articles for %q:\n", len(articles), query)
	for i, a := range articles {
		fmt.Println()
		color.New(color.Bold).Printf("%d. %s\n", i+1, a.Title)
		fmt.Printf("   %s %d, PMID %s\n", a.Journal, a.Year, a.PMID)
		if len(a.Authors) > 0 {
			fmt.Printf("   %s\n", formatAuthors(a.Authors))
		}
		for _, e := range pubmed.ExtractEffects(a.Abstract) {
			mean, std := e.MeanStd()
			fmt.Printf("   %s %.2f (95%% CI %.2f-%.2f), mean %.2f std %.3f\n",
				e.Measure, e.Estimate, e.CILower, e.CIUpper, mean, std)
		}
	}

	if litSummarize {
		if err := summarizeResults(cfg.LLM, query, articles); err != nil {
			fmt.Fprintf(os.Stderr, "Summarization error: %v\n", err)
		}
	}
	return nil
}

func formatAuthors(authors []string) string {
	if len(authors) > 3 {
		return strings.Join(authors[:3], ", ") + ", et al."
	}
	return strings.Join(authors, ", ")
}

func summarizeResults(cfg model.LLMConfig, query string, articles []pubmed.Article) error {
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return err
	}

	resp, err := provider.Summarize(context.Background(), llm.SummarizeRequest{
		Query:    query,
		Articles: articles,
	})
	if err != nil {
		return err
	}

	color.New(color.Bold).Println("\nSummary (of the listed abstracts only):")
	fmt.Println(resp.Summary)
	fmt.Printf("\n(%s, %d tokens)\n", resp.Model, resp.TokensUsed)
	return nil
}
