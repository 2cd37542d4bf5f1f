package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vitalctl/vital/internal/score"
	"github.com/vitalctl/vital/internal/store"
)

var (
	roiDollarsPerHour      float64
	roiDollarsPerWellbeing float64
	roiDollarsPerLifeYear  float64
)

// roiCmd represents the roi command
var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Rank choices by annual net dollar value",
	Long: `ROI values every choice in dollars per year: effect means converted
at the configured rates, minus time and money costs. Rates come from
the config file and can be overridden per run with flags.`,
	RunE: runROI,
}

func init() {
	rootCmd.AddCommand(roiCmd)

	// -h is cobra's help shorthand, so hours takes -H.
	roiCmd.Flags().Float64VarP(&roiDollarsPerHour, "dollars-per-hour", "H", 0, "value of one hour of your time")
	roiCmd.Flags().Float64VarP(&roiDollarsPerWellbeing, "dollars-per-wellbeing", "s", 0, "value of one subjective wellbeing unit")
	roiCmd.Flags().Float64VarP(&roiDollarsPerLifeYear, "dollars-per-life-year", "y", 0, "value of one year of delayed aging")
}

func runROI(cmd *cobra.Command, args []string) error {
	cfg := activeConfig()

	rates := score.Rates(cfg.Rates)
	if cmd.Flags().Changed("dollars-per-hour") {
		rates.DollarsPerHour = roiDollarsPerHour
	}
	if cmd.Flags().Changed("dollars-per-wellbeing") {
		rates.DollarsPerWellbeingUnit = roiDollarsPerWellbeing
	}
	if cmd.Flags().Changed("dollars-per-life-year") {
		rates.DollarsPerLifeYear = roiDollarsPerLifeYear
	}

	choices, err := store.LoadChoices(cfg.DataDir, "")
	if err != nil {
		return fmt.Errorf("loading choices: %w", err)
	}
	if len(choices) == 0 {
		fmt.Println("No choices found.")
		return nil
	}

	entries := score.RankByROI(choices, rates)

	fmt.Printf("Rates: $%.0f/h, $%.0f/wellbeing unit, $%.0f/life year\n\n",
		rates.DollarsPerHour, rates.DollarsPerWellbeingUnit, rates.DollarsPerLifeYear)

	printROITable("Best annual value", topEntries(entries, 10))
	if len(entries) > 10 {
		fmt.Println()
		printROITable("Worst annual value", bottomEntries(entries, 10))
	}
	return nil
}

func printROITable(title string, entries []score.ROIEntry) {
	color.New(color.Bold).Printf("%s:\n", title)
	for _, e := range entries {
		fmt.Printf("  %-35s %-12s $%12.0f/year\n", e.Name, e.Domain, e.Value)
	}
}

func topEntries(entries []score.ROIEntry, n int) []score.ROIEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}

func bottomEntries(entries []score.ROIEntry, n int) []score.ROIEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}
