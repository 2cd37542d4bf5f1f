package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitalctl/vital/internal/model"
	"github.com/vitalctl/vital/internal/score"
	"github.com/vitalctl/vital/internal/store"
)

var (
	rankTop       int
	rankDomain    string
	rankMaxDomain int
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank choices by conservative lifespan impact",
	Long: `Rank ranks every choice with a delayed-aging estimate by its
30th-percentile impact: the value the true effect exceeds with 70%
probability under the Gaussian model. Pessimistic on purpose, so wide
uncertain estimates don't crowd out solid ones.`,
	RunE: runRank,
}

// rankDescribeCmd represents the rank describe subcommand
var rankDescribeCmd = &cobra.Command{
	Use:   "describe NAME",
	Short: "Explain one choice's ranking inputs in detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runRankDescribe,
}

func init() {
	rootCmd.AddCommand(rankCmd)
	rankCmd.AddCommand(rankDescribeCmd)

	rankCmd.Flags().IntVarP(&rankTop, "top", "n", 0, "show only the top N choices (0 = all)")
	rankCmd.Flags().StringVarP(&rankDomain, "domain", "d", "", "only rank choices in this domain")
	rankCmd.Flags().IntVar(&rankMaxDomain, "maxd", 0, "keep at most M choices per domain (0 = no cap)")
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	choices, err := store.LoadChoices(cfg.DataDir, rankDomain)
	if err != nil {
		return fmt.Errorf("loading choices: %w", err)
	}

	entries := score.CapPerDomain(score.RankByP30(choices), rankMaxDomain)
	if len(entries) == 0 {
		fmt.Println("No choices with a delayed-aging estimate to rank.")
		return nil
	}

	color.New(color.Bold).Printf("%-4s %-35s %-12s %10s %10s %10s\n",
		"#", "Choice", "Domain", "P30 years", "$/year", "h/year")

	// With -n, show the top and bottom N and elide the middle.
	elideFrom, elideTo := len(entries), len(entries)
	if rankTop > 0 && len(entries) > 2*rankTop {
		elideFrom, elideTo = rankTop, len(entries)-rankTop
	}
	for i, e := range entries {
		if i == elideFrom {
			fmt.Printf("%-4s (%d more)\n", "...", elideTo-elideFrom)
		}
		if i >= elideFrom && i < elideTo {
			continue
		}
		fmt.Printf("%-4d %-35s %-12s %10.3f %10.0f %10.1f\n",
			i+1, e.Name, e.Domain, e.P30, e.AnnualCostUSD, e.AnnualCostH)
	}
	return nil
}

func runRankDescribe(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	choices, err := store.LoadChoices(cfg.DataDir, "")
	if err != nil {
		return fmt.Errorf("loading choices: %w", err)
	}

	prompter := &store.TerminalPrompter{In: os.Stdin, Out: os.Stdout}
	choice, err := store.FindChoiceByName(choices, args[0], prompter)
	if err != nil {
		return err
	}

	printChoiceDetail(*choice, score.Rates(cfg.Rates))
	return nil
}

func printChoiceDetail(c model.Choice, rates score.Rates) {
	color.New(color.Bold).Printf("%s (%s)\n", c.Name, c.Domain)
	if c.Summary != "" {
		fmt.Printf("  %s\n", c.Summary)
	}

	fmt.Println("\nSpecification:")
	if c.Specification.DurationH > 0 {
		fmt.Printf("  %.1f h/session, %.1f sessions/week\n",
			c.Specification.DurationH, c.Specification.WeeklyFreq)
	}
	fmt.Printf("  Annual cost: %.1f h, $%.0f\n",
		c.Specification.AnnualCostH, c.Specification.AnnualCostUSD)
	if c.Specification.Description != "" {
		fmt.Printf("  %s\n", c.Specification.Description)
	}

	fmt.Println("\nEffects:")
	for _, e := range c.Effects {
		fmt.Printf("  %s %s\n", classGlyph(e.Classify()), e.Outcome)
		fmt.Printf("    mean %.3f, std %.3f\n", e.Mean, e.Std)
		fmt.Printf("    95%% CI %.3f to %.3f, P30 %.3f\n", e.CILower(), e.CIUpper(), e.P30())
		if e.Evidence != "" {
			fmt.Printf("    evidence: %s\n", e.Evidence)
		}
	}

	fmt.Printf("\nAnnual ROI at current rates: $%.0f\n", score.ROI(c, rates))
}
