package model

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vitalctl/vital/internal/stats"
	"gopkg.in/yaml.v3"
)

// Outcome identifies the health outcome an effect estimate measures
type Outcome string

const (
	OutcomeRelativeMortalityRisk Outcome = "relative mortality risk" // risk ratio vs. baseline
	OutcomeDelayedAging          Outcome = "delayed aging years"     // years of aging delayed
	OutcomeSubjectiveWellbeing   Outcome = "subjective wellbeing"    // self-reported wellbeing units
)

// Neutral returns the no-effect reference value for this outcome.
// Every outcome currently in the catalog is ratio-type, where 1.0 means
// no effect; an outcome with a different neutral point declares it here
// rather than at the classification call sites.
func (o Outcome) Neutral() float64 {
	return 1.0
}

// Effect is a Gaussian-modeled estimate of a choice's impact on one
// outcome. Effects are immutable after load.
type Effect struct {
	Outcome  Outcome `yaml:"outcome" json:"outcome"`
	Mean     float64 `yaml:"mean" json:"mean"`
	Std      float64 `yaml:"std" json:"std"`
	Evidence string  `yaml:"evidence,omitempty" json:"evidence,omitempty"`
}

// rawEffect accepts both the current mean/std fields and the legacy
// estimate plus CI-bounds shape still present in older record files.
type rawEffect struct {
	Outcome  Outcome  `yaml:"outcome"`
	Mean     *float64 `yaml:"mean"`
	Std      *float64 `yaml:"std"`
	Evidence string   `yaml:"evidence"`

	// Legacy field names
	Estimate *float64 `yaml:"estimate"`
	CILower  *float64 `yaml:"ci_lower"`
	CIUpper  *float64 `yaml:"ci_upper"`
}

// UnmarshalYAML normalizes legacy effect fields into the current shape
func (e *Effect) UnmarshalYAML(value *yaml.Node) error {
	var raw rawEffect
	if err := value.Decode(&raw); err != nil {
		return err
	}

	e.Outcome = raw.Outcome
	e.Evidence = raw.Evidence

	switch {
	case raw.Mean != nil && raw.Std != nil:
		e.Mean = *raw.Mean
		e.Std = *raw.Std
	case raw.Estimate != nil && raw.CILower != nil && raw.CIUpper != nil:
		e.Mean = *raw.Estimate
		e.Std = stats.StdFromCI(*raw.CILower, *raw.CIUpper)
	default:
		return fmt.Errorf("effect for outcome %q: missing mean/std (or legacy estimate with ci bounds)", raw.Outcome)
	}

	return nil
}

// CILower returns the lower bound of the 95% confidence interval
func (e Effect) CILower() float64 {
	lower, _ := stats.CIBounds(e.Mean, e.Std)
	return lower
}

// CIUpper returns the upper bound of the 95% confidence interval
func (e Effect) CIUpper() float64 {
	_, upper := stats.CIBounds(e.Mean, e.Std)
	return upper
}

// P30 returns the 30th-percentile conservative estimate
func (e Effect) P30() float64 {
	return stats.P30(e.Mean, e.Std)
}

// Classify returns the verdict for this effect against its outcome's
// neutral point
func (e Effect) Classify() stats.Classification {
	lower, upper := stats.CIBounds(e.Mean, e.Std)
	return stats.Classify(lower, upper, e.Outcome.Neutral())
}

// IsBeneficial reports whether the entire interval is below neutral
func (e Effect) IsBeneficial() bool { return e.Classify() == stats.Beneficial }

// IsHarmful reports whether the entire interval is above neutral
func (e Effect) IsHarmful() bool { return e.Classify() == stats.Harmful }

// IsUncertain reports whether the interval touches or crosses neutral
func (e Effect) IsUncertain() bool { return e.Classify() == stats.Uncertain }

// Specification is the cost/time profile of a choice
type Specification struct {
	DurationH     float64 `yaml:"duration_h,omitempty" json:"duration_h,omitempty"`         // hours per session
	WeeklyFreq    float64 `yaml:"weekly_freq,omitempty" json:"weekly_freq,omitempty"`       // sessions per week
	AnnualCostH   float64 `yaml:"annual_cost_h" json:"annual_cost_h"`                       // hours per year
	AnnualCostUSD float64 `yaml:"annual_cost_usd" json:"annual_cost_usd"`                   // dollars per year
	Description   string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// Choice is a wellness intervention record: a domain, a name unique
// within that domain, a non-empty ordered list of effects, and one
// cost specification. Records are hand-edited on disk and never mutated
// in memory.
type Choice struct {
	Domain        string        `yaml:"domain" json:"domain"`
	Name          string        `yaml:"name" json:"name"`
	Summary       string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	Specification Specification `yaml:"specification" json:"specification"`
	Effects       []Effect      `yaml:"effects" json:"effects"`
}

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	nonAlnumRe      = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug derives the file stem for a choice name: lowercase, parenthetical
// asides stripped, runs of non-alphanumerics collapsed to underscores.
func Slug(name string) string {
	s := strings.ToLower(parentheticalRe.ReplaceAllString(name, ""))
	s = nonAlnumRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Path returns the canonical record path for this choice under dataDir
func (c Choice) Path(dataDir string) string {
	return filepath.Join(dataDir, "choices", c.Domain, Slug(c.Name)+".yaml")
}

// EffectFor returns the choice's effect on the given outcome, or nil
// when the choice has no estimate for it
func (c Choice) EffectFor(outcome Outcome) *Effect {
	for i := range c.Effects {
		if c.Effects[i].Outcome == outcome {
			return &c.Effects[i]
		}
	}
	return nil
}
