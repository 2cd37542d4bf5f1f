package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	DataDir     string       `yaml:"data_dir" mapstructure:"data_dir"`
	ProfilesDir string       `yaml:"profiles_dir" mapstructure:"profiles_dir"`
	Rates       RatesConfig  `yaml:"rates" mapstructure:"rates"`
	PubMed      PubMedConfig `yaml:"pubmed" mapstructure:"pubmed"`
	LLM         LLMConfig    `yaml:"llm" mapstructure:"llm"`
	Verbose     bool         `yaml:"-" mapstructure:"-"`
}

// RatesConfig holds the dollar valuations used by ROI
type RatesConfig struct {
	DollarsPerHour          float64 `yaml:"dollars_per_hour" mapstructure:"dollars_per_hour"`
	DollarsPerWellbeingUnit float64 `yaml:"dollars_per_wellbeing_unit" mapstructure:"dollars_per_wellbeing_unit"`
	DollarsPerLifeYear      float64 `yaml:"dollars_per_life_year" mapstructure:"dollars_per_life_year"`
}

// PubMedConfig configures the literature-search client
type PubMedConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Email             string        `yaml:"email" mapstructure:"email"`
	MaxResults        int           `yaml:"max_results" mapstructure:"max_results"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	CacheEnabled      bool          `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	CacheDir          string        `yaml:"cache_dir" mapstructure:"cache_dir"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// LLMConfig configures the optional literature summarizer. Disabled
// unless a provider is set; summaries never feed back into records or
// rankings.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		DataDir:     "data",
		ProfilesDir: "profiles",
		Rates: RatesConfig{
			DollarsPerHour:          50,
			DollarsPerWellbeingUnit: 1000,
			DollarsPerLifeYear:      100000,
		},
		PubMed: PubMedConfig{
			BaseURL:           "https://eutils.ncbi.nlm.nih.gov/entrez/eutils",
			Email:             "",
			MaxResults:        10,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 3, // NCBI allows 3 req/s without an API key
			CacheEnabled:      true,
			CacheTTL:          24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}
