package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitalctl/vital/internal/model"
	"github.com/vitalctl/vital/internal/store"
)

// refsCmd represents the refs command
var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Browse the bibliography",
	Long: `Refs lists and displays the reference records backing the catalog's
effect estimates. Older schema versions are migrated on read; records
using the heuristic uncertainty fallback are flagged on load.`,
	RunE: runRefsList,
}

var refsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all references",
	RunE:  runRefsList,
}

var refsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one reference with its claims",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefsShow,
}

func init() {
	rootCmd.AddCommand(refsCmd)
	refsCmd.AddCommand(refsListCmd)
	refsCmd.AddCommand(refsShowCmd)
}

// refWarn surfaces migration warnings without failing the load
func refWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}

func runRefsList(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	refs, err := store.LoadReferences(cfg.DataDir, refWarn)
	if err != nil {
		return fmt.Errorf("loading references: %w", err)
	}
	if len(refs) == 0 {
		fmt.Println("No references found.")
		return nil
	}

	for _, r := range refs {
		fmt.Printf("%-30s %d  %s\n", r.ID, r.Year, r.Title)
		fmt.Printf("%-30s %s, %d soft / %d hard claims\n",
			"", r.ReferenceType, len(r.SoftClaims), len(r.HardClaims))
	}
	return nil
}

func runRefsShow(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	refs, err := store.LoadReferences(cfg.DataDir, refWarn)
	if err != nil {
		return fmt.Errorf("loading references: %w", err)
	}

	for _, r := range refs {
		if r.ID == args[0] {
			printReference(r)
			return nil
		}
	}
	return fmt.Errorf("no reference with id %q", args[0])
}

func printReference(r model.Reference) {
	color.New(color.Bold).Printf("%s (%d)\n", r.Title, r.Year)
	if len(r.Authors) > 0 {
		fmt.Printf("  %s\n", strings.Join(r.Authors, ", "))
	}
	fmt.Printf("  %s\n", r.ReferenceType)
	if r.Journal != "" {
		fmt.Printf("  %s", r.Journal)
		if r.Volume != "" {
			fmt.Printf(" %s", r.Volume)
		}
		if r.Pages != "" {
			fmt.Printf(":%s", r.Pages)
		}
		fmt.Println()
	}
	fmt.Printf("  %s\n", r.URL)
	if u := r.DOIURL(); u != "" {
		fmt.Printf("  %s\n", u)
	}
	if u := r.PubMedURL(); u != "" {
		fmt.Printf("  %s\n", u)
	}
	if r.Summary != "" {
		fmt.Printf("\n%s\n", r.Summary)
	}

	if len(r.SoftClaims) > 0 {
		fmt.Println("\nSoft claims:")
		for _, c := range r.SoftClaims {
			fmt.Printf("  - %s", c.Summary)
			if c.Choice != "" {
				fmt.Printf(" [%s]", c.Choice)
			}
			fmt.Println()
		}
	}

	if len(r.HardClaims) > 0 {
		fmt.Println("\nHard claims:")
		for _, c := range r.HardClaims {
			fmt.Printf("  - %s", c.Summary)
			if c.Choice != "" {
				fmt.Printf(" [%s]", c.Choice)
			}
			fmt.Println()
			if c.EvidenceType != "" {
				fmt.Printf("    evidence: %s\n", c.EvidenceType)
			}
			for _, e := range c.Effects {
				fmt.Printf("    %s: mean %.3f, std %.3f (%s)\n", e.Outcome, e.Mean, e.Std, e.StdSource)
			}
			if c.SampleSize > 0 {
				fmt.Printf("    n=%d", c.SampleSize)
				if c.FollowupYears > 0 {
					fmt.Printf(", %.1f-year follow-up", c.FollowupYears)
				}
				fmt.Println()
			}
		}
	}
}
