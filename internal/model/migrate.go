package model

import (
	"fmt"
	"math"

	"github.com/vitalctl/vital/internal/stats"
	"gopkg.in/yaml.v3"
)

// Reference records have gone through three on-disk schema generations:
//
//	v1: a single claims list whose entries carry scalar effect fields
//	    (effect_size, effect_ci_lower, effect_ci_upper)
//	v2: claims split into soft_claims/hard_claims, hard claims still
//	    carrying the scalar effect fields
//	v3: hard claims carry an effects list of structured estimates
//
// Loading detects the generation and migrates to v3; saving always
// writes v3.

// RefSchema tags the detected on-disk schema generation
type RefSchema int

const (
	RefSchemaV1 RefSchema = 1
	RefSchemaV2 RefSchema = 2
	RefSchemaV3 RefSchema = 3
)

// WarnFunc receives human-readable migration warnings
type WarnFunc func(format string, args ...any)

// rawClaim covers every claim shape across schema generations
type rawClaim struct {
	Summary       string        `yaml:"summary"`
	Choice        string        `yaml:"choice"`
	EvidenceType  EvidenceType  `yaml:"evidence_type"`
	SourceType    string        `yaml:"source_type"`
	Effects       []ClaimEffect `yaml:"effects"`
	EffectSize    *float64      `yaml:"effect_size"`
	EffectCILower *float64      `yaml:"effect_ci_lower"`
	EffectCIUpper *float64      `yaml:"effect_ci_upper"`
	Outcome       string        `yaml:"outcome"`
	Population    string        `yaml:"population"`
	SampleSize    int           `yaml:"sample_size"`
	FollowupYears float64       `yaml:"followup_years"`
	Notes         string        `yaml:"notes"`
}

// rawReference is the union of all schema generations
type rawReference struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Authors       []string      `yaml:"authors"`
	Year          int           `yaml:"year"`
	ReferenceType ReferenceType `yaml:"reference_type"`
	URL           string        `yaml:"url"`
	Keywords      []string      `yaml:"keywords"`
	Summary       string        `yaml:"summary"`
	Abstract      string        `yaml:"abstract"` // v1 name for summary
	Journal       string        `yaml:"journal"`
	Volume        string        `yaml:"volume"`
	Issue         string        `yaml:"issue"`
	Pages         string        `yaml:"pages"`
	DOI           string        `yaml:"doi"`
	PMID          string        `yaml:"pmid"`

	Claims     []rawClaim `yaml:"claims"` // v1 only
	SoftClaims []rawClaim `yaml:"soft_claims"`
	HardClaims []rawClaim `yaml:"hard_claims"`
}

// DetectRefSchema reports which schema generation a raw record uses
func (raw *rawReference) detectSchema() RefSchema {
	if len(raw.Claims) > 0 {
		return RefSchemaV1
	}
	for _, hc := range raw.HardClaims {
		if hc.EffectSize != nil {
			return RefSchemaV2
		}
	}
	return RefSchemaV3
}

// DecodeReference parses a reference record of any schema generation
// and returns the migrated, validated v3 form. warn may be nil.
func DecodeReference(data []byte, warn WarnFunc) (*Reference, error) {
	if warn == nil {
		warn = func(string, ...any) {}
	}

	var raw rawReference
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse reference: %w", err)
	}

	var ref Reference
	switch raw.detectSchema() {
	case RefSchemaV1:
		ref = migrateV1(&raw, warn)
	case RefSchemaV2:
		ref = migrateV2(&raw, warn)
	default:
		ref = assembleV3(&raw)
	}

	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &ref, nil
}

// migrateV1 splits the single claims list into soft and hard claims by
// presence of a scalar effect size
func migrateV1(raw *rawReference, warn WarnFunc) Reference {
	ref := assembleV3(raw)
	if ref.Summary == "" {
		ref.Summary = raw.Abstract
	}

	for _, c := range raw.Claims {
		if c.EffectSize == nil {
			ref.SoftClaims = append(ref.SoftClaims, SoftClaim{
				Summary:    c.Summary,
				Choice:     c.Choice,
				SourceType: string(c.EvidenceType),
				Notes:      c.Notes,
			})
			continue
		}
		ref.HardClaims = append(ref.HardClaims, migrateScalarClaim(raw.ID, c, warn))
	}
	return ref
}

// migrateV2 keeps the soft/hard split and converts scalar effect fields
// on hard claims into structured effects
func migrateV2(raw *rawReference, warn WarnFunc) Reference {
	ref := assembleV3(raw)
	for _, c := range raw.SoftClaims {
		ref.SoftClaims = append(ref.SoftClaims, SoftClaim{
			Summary:    c.Summary,
			Choice:     c.Choice,
			SourceType: c.SourceType,
			Notes:      c.Notes,
		})
	}
	for _, c := range raw.HardClaims {
		if c.EffectSize == nil {
			hc := claimHeader(c)
			hc.Effects = c.Effects
			ref.HardClaims = append(ref.HardClaims, hc)
			continue
		}
		ref.HardClaims = append(ref.HardClaims, migrateScalarClaim(raw.ID, c, warn))
	}
	return ref
}

// assembleV3 copies the fields shared by every generation; claim lists
// are filled in by the per-version migrations (or directly for v3)
func assembleV3(raw *rawReference) Reference {
	ref := Reference{
		ID:            raw.ID,
		Title:         raw.Title,
		Authors:       raw.Authors,
		Year:          raw.Year,
		ReferenceType: raw.ReferenceType,
		URL:           raw.URL,
		Keywords:      raw.Keywords,
		Summary:       raw.Summary,
		Journal:       raw.Journal,
		Volume:        raw.Volume,
		Issue:         raw.Issue,
		Pages:         raw.Pages,
		DOI:           raw.DOI,
		PMID:          raw.PMID,
	}
	if raw.detectSchema() != RefSchemaV3 {
		return ref
	}
	for _, c := range raw.SoftClaims {
		ref.SoftClaims = append(ref.SoftClaims, SoftClaim{
			Summary:    c.Summary,
			Choice:     c.Choice,
			SourceType: c.SourceType,
			Notes:      c.Notes,
		})
	}
	for _, c := range raw.HardClaims {
		hc := claimHeader(c)
		hc.Effects = c.Effects
		ref.HardClaims = append(ref.HardClaims, hc)
	}
	return ref
}

func claimHeader(c rawClaim) HardClaim {
	return HardClaim{
		Summary:       c.Summary,
		Choice:        c.Choice,
		EvidenceType:  c.EvidenceType,
		Population:    c.Population,
		SampleSize:    c.SampleSize,
		FollowupYears: c.FollowupYears,
		Notes:         c.Notes,
	}
}

// migrateScalarClaim converts a legacy scalar-effect claim into one
// structured effect. Published CI bounds are back-converted to a std;
// without bounds the conservative 0.25·|effect_size| fallback applies
// and the claim is flagged.
func migrateScalarClaim(refID string, c rawClaim, warn WarnFunc) HardClaim {
	hc := claimHeader(c)

	effect := ClaimEffect{
		Outcome: c.Outcome,
		Mean:    *c.EffectSize,
	}
	if c.EffectCILower != nil && c.EffectCIUpper != nil {
		effect.Std = stats.StdFromCI(*c.EffectCILower, *c.EffectCIUpper)
		effect.StdSource = "reported"
	} else {
		effect.Std = 0.25 * math.Abs(*c.EffectSize)
		effect.StdSource = "heuristic"
		warn("reference %s: claim %q has no CI bounds; using heuristic std %.3g", refID, c.Summary, effect.Std)
	}

	hc.Effects = []ClaimEffect{effect}
	return hc
}
