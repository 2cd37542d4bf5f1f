package model

import (
	"math"
	"testing"

	"github.com/vitalctl/vital/internal/stats"
	"gopkg.in/yaml.v3"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Running", "running"},
		{"Vitamin D (supplementation)", "vitamin_d"},
		{"Time-restricted eating", "time_restricted_eating"},
		{"Omega-3 / fish oil", "omega_3_fish_oil"},
		{"Sauna (4x/week, Finnish)", "sauna"},
	}

	for _, c := range cases {
		if got := Slug(c.name); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestChoicePath(t *testing.T) {
	c := Choice{Domain: "exercise", Name: "Running (outdoor)"}
	if got := c.Path("data"); got != "data/choices/exercise/running.yaml" {
		t.Errorf("Unexpected path: %s", got)
	}
}

func TestEffect_DerivedBounds(t *testing.T) {
	e := Effect{Outcome: OutcomeRelativeMortalityRisk, Mean: 0.85, Std: 0.05}

	if e.CILower() > e.Mean || e.Mean > e.CIUpper() {
		t.Errorf("Expected ci_lower <= mean <= ci_upper, got [%v, %v] around %v",
			e.CILower(), e.CIUpper(), e.Mean)
	}
	if !almostEqual(e.CILower(), 0.752) {
		t.Errorf("Expected ci_lower 0.752, got %v", e.CILower())
	}
	if !almostEqual(e.CIUpper(), 0.948) {
		t.Errorf("Expected ci_upper 0.948, got %v", e.CIUpper())
	}
}

func TestEffect_ExactlyOneClassification(t *testing.T) {
	effects := []Effect{
		{Outcome: OutcomeRelativeMortalityRisk, Mean: 0.8, Std: 0.05},
		{Outcome: OutcomeRelativeMortalityRisk, Mean: 1.3, Std: 0.1},
		{Outcome: OutcomeRelativeMortalityRisk, Mean: 1.0, Std: 0.2},
	}

	for _, e := range effects {
		count := 0
		if e.IsBeneficial() {
			count++
		}
		if e.IsHarmful() {
			count++
		}
		if e.IsUncertain() {
			count++
		}
		if count != 1 {
			t.Errorf("Effect(mean=%v, std=%v): expected exactly one verdict, got %d", e.Mean, e.Std, count)
		}
	}
}

// The running scenario: p30 = 0.5 - 0.524*0.2 and ci_upper below neutral.
func TestEffect_RunningScenario(t *testing.T) {
	running := Choice{
		Domain: "exercise",
		Name:   "Running",
		Effects: []Effect{
			{Outcome: OutcomeDelayedAging, Mean: 0.5, Std: 0.2},
		},
		Specification: Specification{
			DurationH:     0.5,
			WeeklyFreq:    4,
			AnnualCostH:   50,
			AnnualCostUSD: 100,
		},
	}

	e := running.EffectFor(OutcomeDelayedAging)
	if e == nil {
		t.Fatal("Expected a delayed-aging effect")
	}
	if !almostEqual(e.P30(), 0.3952) {
		t.Errorf("Expected p30 0.3952, got %v", e.P30())
	}
	if !e.IsBeneficial() {
		t.Errorf("Expected beneficial (ci_upper %v < 1.0)", e.CIUpper())
	}
}

func TestEffectFor_MissingOutcome(t *testing.T) {
	c := Choice{Effects: []Effect{{Outcome: OutcomeDelayedAging, Mean: 0.2, Std: 0.1}}}
	if got := c.EffectFor(OutcomeSubjectiveWellbeing); got != nil {
		t.Errorf("Expected nil for missing outcome, got %+v", got)
	}
}

func TestEffect_UnmarshalLegacyFields(t *testing.T) {
	doc := `
outcome: relative mortality risk
estimate: 0.8
ci_lower: 0.7
ci_upper: 0.9
evidence: pooled cohort estimate
`
	var e Effect
	if err := yaml.Unmarshal([]byte(doc), &e); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if e.Mean != 0.8 {
		t.Errorf("Expected mean 0.8, got %v", e.Mean)
	}
	want := stats.StdFromCI(0.7, 0.9)
	if !almostEqual(e.Std, want) {
		t.Errorf("Expected std %v from CI bounds, got %v", want, e.Std)
	}
	if e.Evidence != "pooled cohort estimate" {
		t.Errorf("Unexpected evidence text: %q", e.Evidence)
	}
}

func TestEffect_UnmarshalMissingStd(t *testing.T) {
	doc := `
outcome: relative mortality risk
estimate: 0.8
`
	var e Effect
	if err := yaml.Unmarshal([]byte(doc), &e); err == nil {
		t.Error("Expected error for effect without std or CI bounds")
	}
}

func TestOutcome_Neutral(t *testing.T) {
	for _, o := range []Outcome{OutcomeRelativeMortalityRisk, OutcomeDelayedAging, OutcomeSubjectiveWellbeing} {
		if o.Neutral() != 1.0 {
			t.Errorf("Expected neutral 1.0 for %s, got %v", o, o.Neutral())
		}
	}
}
