package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitalctl/vital/internal/stats"
	"github.com/vitalctl/vital/internal/store"
)

var listDomain string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List choices in the catalog, grouped by domain",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listDomain, "domain", "d", "", "only list choices in this domain (e.g. diet, exercise)")
}

var (
	glyphBeneficial = color.New(color.FgGreen).Sprint("✓")
	glyphHarmful    = color.New(color.FgRed).Sprint("✗")
	glyphUncertain  = color.New(color.FgYellow).Sprint("?")
)

func classGlyph(c stats.Classification) string {
	switch c {
	case stats.Beneficial:
		return glyphBeneficial
	case stats.Harmful:
		return glyphHarmful
	default:
		return glyphUncertain
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	choices, err := store.LoadChoices(cfg.DataDir, listDomain)
	if err != nil {
		return fmt.Errorf("loading choices: %w", err)
	}
	if len(choices) == 0 {
		if listDomain != "" {
			fmt.Printf("No choices found in domain %q.\n", listDomain)
		} else {
			fmt.Println("No choices found.")
		}
		return nil
	}

	// Walk in load order: paths are sorted, so choices within a domain
	// are contiguous.
	currentDomain := ""
	for _, c := range choices {
		if c.Domain != currentDomain {
			if currentDomain != "" {
				fmt.Println()
			}
			currentDomain = c.Domain
			color.New(color.Bold).Printf("%s\n", c.Domain)
		}
		fmt.Printf("  %s\n", c.Name)
		if c.Summary != "" {
			fmt.Printf("    %s\n", c.Summary)
		}
		for _, e := range c.Effects {
			fmt.Printf("    %s %s: %.3f (95%% CI %.3f to %.3f)\n",
				classGlyph(e.Classify()), e.Outcome, e.Mean, e.CILower(), e.CIUpper())
		}
	}

	printChoiceCount(len(choices))
	return nil
}

func printChoiceCount(n int) {
	noun := "choices"
	if n == 1 {
		noun = "choice"
	}
	fmt.Printf("\n%d %s.\n", n, noun)
}
