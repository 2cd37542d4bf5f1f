// Package score aggregates choices into ranked, explainable views:
// annual net value (ROI) and conservative 30th-percentile impact.
package score

import (
	"sort"

	"github.com/vitalctl/vital/internal/model"
)

// Rates are the dollar valuations ROI converts effects and costs with
type Rates struct {
	DollarsPerHour          float64
	DollarsPerWellbeingUnit float64
	DollarsPerLifeYear      float64
}

// ROI returns the annual net dollar value of a choice: valued benefits
// minus time and dollar costs. A choice with no estimate for an outcome
// simply earns no benefit for it.
func ROI(c model.Choice, r Rates) float64 {
	cost := c.Specification.AnnualCostH*r.DollarsPerHour + c.Specification.AnnualCostUSD

	benefit := 0.0
	if e := c.EffectFor(model.OutcomeDelayedAging); e != nil {
		benefit += e.Mean * r.DollarsPerLifeYear
	}
	if e := c.EffectFor(model.OutcomeSubjectiveWellbeing); e != nil {
		benefit += e.Mean * r.DollarsPerWellbeingUnit
	}

	return benefit - cost
}

// ROIEntry is one row of the ROI ranking
type ROIEntry struct {
	Name   string
	Domain string
	Value  float64
}

// RankByROI returns every choice ranked by descending annual net value
func RankByROI(choices []model.Choice, r Rates) []ROIEntry {
	entries := make([]ROIEntry, 0, len(choices))
	for _, c := range choices {
		entries = append(entries, ROIEntry{
			Name:   c.Name,
			Domain: c.Domain,
			Value:  ROI(c, r),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}

// RankEntry is one row of the P30 ranking
type RankEntry struct {
	Name          string
	Domain        string
	P30           float64
	AnnualCostUSD float64
	AnnualCostH   float64
}

// RankByP30 ranks choices by the conservative 30th-percentile estimate
// of their delayed-aging effect, descending. Choices without a
// delayed-aging estimate are excluded.
func RankByP30(choices []model.Choice) []RankEntry {
	var entries []RankEntry
	for _, c := range choices {
		e := c.EffectFor(model.OutcomeDelayedAging)
		if e == nil {
			continue
		}
		entries = append(entries, RankEntry{
			Name:          c.Name,
			Domain:        c.Domain,
			P30:           e.P30(),
			AnnualCostUSD: c.Specification.AnnualCostUSD,
			AnnualCostH:   c.Specification.AnnualCostH,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].P30 > entries[j].P30
	})
	return entries
}

// CapPerDomain keeps at most n entries per domain, scanning in rank
// order so overall and within-domain ordering are preserved. n <= 0
// means no cap.
func CapPerDomain(entries []RankEntry, n int) []RankEntry {
	if n <= 0 {
		return entries
	}

	kept := make([]RankEntry, 0, len(entries))
	perDomain := make(map[string]int)
	for _, e := range entries {
		if perDomain[e.Domain] >= n {
			continue
		}
		perDomain[e.Domain]++
		kept = append(kept, e)
	}
	return kept
}
