package pubmed

import (
	"math"
	"testing"
)

func TestExtractEffects_CommonFormats(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		measure string
		est, lo, hi float64
	}{
		{
			"parenthesized HR",
			"Running was associated with lower mortality (HR 0.73; 95% CI 0.65-0.82).",
			"HR", 0.73, 0.65, 0.82,
		},
		{
			"equals and colon",
			"Pooled RR = 0.88, 95% CI: 0.80 to 0.97 for moderate intake.",
			"RR", 0.88, 0.80, 0.97,
		},
		{
			"adjusted odds ratio",
			"aOR 1.42 (95% CI 1.10, 1.83) in the highest tertile",
			"aOR", 1.42, 1.10, 1.83,
		},
		{
			"bracketed interval",
			"hazard of death was lower, HR: 0.9 [95% CI 0.85-0.96]",
			"HR", 0.9, 0.85, 0.96,
		},
	}

	for _, c := range cases {
		effects := ExtractEffects(c.text)
		if len(effects) != 1 {
			t.Errorf("%s: expected 1 effect, got %d", c.name, len(effects))
			continue
		}
		e := effects[0]
		if e.Measure != c.measure || e.Estimate != c.est || e.CILower != c.lo || e.CIUpper != c.hi {
			t.Errorf("%s: got %+v", c.name, e)
		}
	}
}

func TestExtractEffects_MultipleInOneAbstract(t *testing.T) {
	text := "All-cause mortality HR 0.73 (95% CI 0.65-0.82); cardiovascular mortality HR 0.70 (95% CI 0.58-0.85)."
	effects := ExtractEffects(text)
	if len(effects) != 2 {
		t.Fatalf("Expected 2 effects, got %d", len(effects))
	}
	if effects[1].CIUpper != 0.85 {
		t.Errorf("Expected second interval parsed, got %+v", effects[1])
	}
}

func TestExtractEffects_NoneFound(t *testing.T) {
	if effects := ExtractEffects("No quantitative results are reported in this abstract."); effects != nil {
		t.Errorf("Expected no effects, got %+v", effects)
	}
}

func TestExtractedEffect_MeanStd(t *testing.T) {
	e := ExtractedEffect{Measure: "HR", Estimate: 0.73, CILower: 0.65, CIUpper: 0.82}
	mean, std := e.MeanStd()
	if mean != 0.73 {
		t.Errorf("Expected mean 0.73, got %v", mean)
	}
	want := (0.82 - 0.65) / (2 * 1.96)
	if math.Abs(std-want) > 1e-9 {
		t.Errorf("Expected std %v, got %v", want, std)
	}
}
