package score

import (
	"math"
	"testing"

	"github.com/vitalctl/vital/internal/model"
)

var testRates = Rates{
	DollarsPerHour:          50,
	DollarsPerWellbeingUnit: 1000,
	DollarsPerLifeYear:      100000,
}

func choiceWith(name, domain string, p30Mean float64, effects ...model.Effect) model.Choice {
	return model.Choice{
		Name:    name,
		Domain:  domain,
		Effects: effects,
		Specification: model.Specification{
			AnnualCostH:   10,
			AnnualCostUSD: 100,
		},
	}
}

func TestROI_PureCostWithoutValuedOutcomes(t *testing.T) {
	// Only a mortality effect: no delayed-aging or wellbeing benefit,
	// so ROI is pure cost.
	c := model.Choice{
		Name:   "Flossing",
		Domain: "hygiene",
		Effects: []model.Effect{
			{Outcome: model.OutcomeRelativeMortalityRisk, Mean: 0.98, Std: 0.05},
		},
		Specification: model.Specification{
			AnnualCostH:   12,
			AnnualCostUSD: 30,
		},
	}

	want := -(12*testRates.DollarsPerHour + 30)
	if got := ROI(c, testRates); got != want {
		t.Errorf("Expected pure-cost ROI %v, got %v", want, got)
	}
}

func TestROI_BenefitMinusCost(t *testing.T) {
	c := model.Choice{
		Name:   "Running",
		Domain: "exercise",
		Effects: []model.Effect{
			{Outcome: model.OutcomeDelayedAging, Mean: 0.5, Std: 0.2},
			{Outcome: model.OutcomeSubjectiveWellbeing, Mean: 2, Std: 1},
		},
		Specification: model.Specification{
			AnnualCostH:   50,
			AnnualCostUSD: 100,
		},
	}

	want := 0.5*100000 + 2*1000 - (50*50 + 100)
	if got := ROI(c, testRates); math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected ROI %v, got %v", want, got)
	}
}

func TestRankByROI_Descending(t *testing.T) {
	choices := []model.Choice{
		choiceWith("A", "diet", 0, model.Effect{Outcome: model.OutcomeDelayedAging, Mean: 0.1, Std: 0.05}),
		choiceWith("B", "diet", 0, model.Effect{Outcome: model.OutcomeDelayedAging, Mean: 0.9, Std: 0.05}),
		choiceWith("C", "diet", 0),
	}

	entries := RankByROI(choices, testRates)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Value < entries[i].Value {
			t.Errorf("Expected descending ROI, got %v before %v", entries[i-1].Value, entries[i].Value)
		}
	}
	if entries[0].Name != "B" {
		t.Errorf("Expected B ranked first, got %s", entries[0].Name)
	}
}

func TestRankByP30_SortedDescendingAndFiltered(t *testing.T) {
	choices := []model.Choice{
		choiceWith("Low", "diet", 0, model.Effect{Outcome: model.OutcomeDelayedAging, Mean: 0.1, Std: 0.1}),
		choiceWith("High", "exercise", 0, model.Effect{Outcome: model.OutcomeDelayedAging, Mean: 1.0, Std: 0.1}),
		choiceWith("NoAging", "sleep", 0, model.Effect{Outcome: model.OutcomeSubjectiveWellbeing, Mean: 2, Std: 0.5}),
	}

	entries := RankByP30(choices)
	if len(entries) != 2 {
		t.Fatalf("Expected choices without a delayed-aging effect excluded, got %d entries", len(entries))
	}
	if entries[0].Name != "High" || entries[1].Name != "Low" {
		t.Errorf("Expected [High, Low], got [%s, %s]", entries[0].Name, entries[1].Name)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].P30 < entries[i].P30 {
			t.Errorf("Expected descending p30, got %v before %v", entries[i-1].P30, entries[i].P30)
		}
	}
}

func TestCapPerDomain(t *testing.T) {
	entries := []RankEntry{
		{Name: "e1", Domain: "exercise", P30: 5},
		{Name: "d1", Domain: "diet", P30: 4},
		{Name: "e2", Domain: "exercise", P30: 3},
		{Name: "e3", Domain: "exercise", P30: 2},
		{Name: "d2", Domain: "diet", P30: 1},
	}

	capped := CapPerDomain(entries, 2)

	counts := make(map[string]int)
	for _, e := range capped {
		counts[e.Domain]++
	}
	for domain, n := range counts {
		if n > 2 {
			t.Errorf("Expected at most 2 per domain, %s has %d", domain, n)
		}
	}

	// Relative order within a domain and overall rank order preserved.
	wantOrder := []string{"e1", "d1", "e2", "d2"}
	if len(capped) != len(wantOrder) {
		t.Fatalf("Expected %d entries, got %d", len(wantOrder), len(capped))
	}
	for i, name := range wantOrder {
		if capped[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, capped[i].Name)
		}
	}
}

func TestCapPerDomain_NoCap(t *testing.T) {
	entries := []RankEntry{{Name: "a", Domain: "x"}, {Name: "b", Domain: "x"}}
	if got := CapPerDomain(entries, 0); len(got) != 2 {
		t.Errorf("Expected no cap for n <= 0, got %d entries", len(got))
	}
}
