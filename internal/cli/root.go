// Package cli wires the vital command surface: listing, ranking and
// ROI over the choice catalog, profile management, bibliography views,
// and the best-effort literature search.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vitalctl/vital/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vital",
	Short: "Vital - decision support for personal wellness choices",
	Long: `Vital stores a catalog of wellness choices (interventions such as
running, fasting, supplementation) with effect-size estimates, cost
specifications, and supporting literature.

It ranks choices by conservative lifespan impact, computes annual
return on investment under configurable dollar valuations, and manages
user profiles and a bibliography of references with extracted claims.

Records are plain YAML files, hand-curated and version-controlled.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("vital v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vital/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.vital")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VITAL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// activeConfig resolves the effective configuration: defaults overlaid
// with config-file and environment values, plus process state
func activeConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("data_dir"); v != "" {
		cfg.DataDir = v
	}
	if v := viper.GetString("profiles_dir"); v != "" {
		cfg.ProfilesDir = v
	}
	if viper.IsSet("rates.dollars_per_hour") {
		cfg.Rates.DollarsPerHour = viper.GetFloat64("rates.dollars_per_hour")
	}
	if viper.IsSet("rates.dollars_per_wellbeing_unit") {
		cfg.Rates.DollarsPerWellbeingUnit = viper.GetFloat64("rates.dollars_per_wellbeing_unit")
	}
	if viper.IsSet("rates.dollars_per_life_year") {
		cfg.Rates.DollarsPerLifeYear = viper.GetFloat64("rates.dollars_per_life_year")
	}
	if v := viper.GetString("pubmed.email"); v != "" {
		cfg.PubMed.Email = v
	}
	if viper.IsSet("pubmed.max_results") {
		cfg.PubMed.MaxResults = viper.GetInt("pubmed.max_results")
	}
	if viper.IsSet("pubmed.cache_enabled") {
		cfg.PubMed.CacheEnabled = viper.GetBool("pubmed.cache_enabled")
	}
	if v := viper.GetString("pubmed.cache_dir"); v != "" {
		cfg.PubMed.CacheDir = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}

	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Verbose = verbose
	return cfg
}
