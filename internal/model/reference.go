package model

import (
	"fmt"
	"regexp"
)

// EvidenceType classifies how a claim's evidence was gathered
type EvidenceType string

const (
	EvidenceRCT                     EvidenceType = "Randomized controlled trial"
	EvidenceMetaAnalysis            EvidenceType = "Meta-analysis"
	EvidenceCohort                  EvidenceType = "Prospective cohort study"
	EvidenceCaseControl             EvidenceType = "Case-control study"
	EvidenceCrossSectional          EvidenceType = "Cross-sectional study"
	EvidenceNaturalExperiment       EvidenceType = "Natural experiment"
	EvidenceMendelianRandomization  EvidenceType = "Mendelian randomization"
	EvidenceMechanistic             EvidenceType = "Mechanistic/first-principles"
	EvidenceExpertOpinion           EvidenceType = "Expert opinion"
)

var evidenceTypes = map[EvidenceType]bool{
	EvidenceRCT:                    true,
	EvidenceMetaAnalysis:           true,
	EvidenceCohort:                 true,
	EvidenceCaseControl:            true,
	EvidenceCrossSectional:         true,
	EvidenceNaturalExperiment:      true,
	EvidenceMendelianRandomization: true,
	EvidenceMechanistic:            true,
	EvidenceExpertOpinion:          true,
}

// Valid reports whether the evidence type is a recognized enum value
func (e EvidenceType) Valid() bool {
	return evidenceTypes[e]
}

// ReferenceType is the publication category of a reference
type ReferenceType string

const (
	RefJournalArticle ReferenceType = "Journal article"
	RefMetaAnalysis   ReferenceType = "Meta-analysis"
	RefReview         ReferenceType = "Review article"
	RefBook           ReferenceType = "Book"
	RefBookChapter    ReferenceType = "Book chapter"
	RefPreprint       ReferenceType = "Preprint"
	RefReport         ReferenceType = "Report"
	RefWebsite        ReferenceType = "Website"
)

var referenceTypes = map[ReferenceType]bool{
	RefJournalArticle: true,
	RefMetaAnalysis:   true,
	RefReview:         true,
	RefBook:           true,
	RefBookChapter:    true,
	RefPreprint:       true,
	RefReport:         true,
	RefWebsite:        true,
}

// Valid reports whether the reference type is a recognized enum value
func (r ReferenceType) Valid() bool {
	return referenceTypes[r]
}

// urlRe accepts http(s) URLs with a dotted host and an optional path
var urlRe = regexp.MustCompile(`^https?://(?:[\w-]+\.)+[\w-]+(?:/\S*)?$`)

// IsValidURL reports whether a URL passes the reference URL validator
func IsValidURL(url string) bool {
	return urlRe.MatchString(url)
}

// SoftClaim is a qualitative claim extracted from a reference
type SoftClaim struct {
	Summary    string `yaml:"summary" json:"summary"`
	Choice     string `yaml:"choice" json:"choice"`
	SourceType string `yaml:"source_type,omitempty" json:"source_type,omitempty"`
	Notes      string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ClaimEffect is a quantitative estimate carried by a hard claim.
// StdSource records how the standard deviation was obtained: "reported"
// when back-converted from published CI bounds, "heuristic" when the
// conservative fallback was applied during migration.
type ClaimEffect struct {
	Outcome   string  `yaml:"outcome" json:"outcome"`
	Mean      float64 `yaml:"mean" json:"mean"`
	Std       float64 `yaml:"std" json:"std"`
	StdSource string  `yaml:"std_source,omitempty" json:"std_source,omitempty"`
}

// HardClaim is a quantitative claim carrying one or more named effect
// estimates
type HardClaim struct {
	Summary       string        `yaml:"summary" json:"summary"`
	Choice        string        `yaml:"choice" json:"choice"`
	EvidenceType  EvidenceType  `yaml:"evidence_type" json:"evidence_type"`
	Effects       []ClaimEffect `yaml:"effects" json:"effects"`
	Population    string        `yaml:"population,omitempty" json:"population,omitempty"`
	SampleSize    int           `yaml:"sample_size,omitempty" json:"sample_size,omitempty"`
	FollowupYears float64       `yaml:"followup_years,omitempty" json:"followup_years,omitempty"`
	Notes         string        `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Reference is a bibliography entry with extracted claims. The id
// matches the filename stem of its record under data/refs.
type Reference struct {
	ID            string        `yaml:"id" json:"id"`
	Title         string        `yaml:"title" json:"title"`
	Authors       []string      `yaml:"authors" json:"authors"`
	Year          int           `yaml:"year" json:"year"`
	ReferenceType ReferenceType `yaml:"reference_type" json:"reference_type"`
	URL           string        `yaml:"url" json:"url"`
	Keywords      []string      `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	Summary       string        `yaml:"summary,omitempty" json:"summary,omitempty"`
	SoftClaims    []SoftClaim   `yaml:"soft_claims,omitempty" json:"soft_claims,omitempty"`
	HardClaims    []HardClaim   `yaml:"hard_claims,omitempty" json:"hard_claims,omitempty"`
	Journal       string        `yaml:"journal,omitempty" json:"journal,omitempty"`
	Volume        string        `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue         string        `yaml:"issue,omitempty" json:"issue,omitempty"`
	Pages         string        `yaml:"pages,omitempty" json:"pages,omitempty"`
	DOI           string        `yaml:"doi,omitempty" json:"doi,omitempty"`
	PMID          string        `yaml:"pmid,omitempty" json:"pmid,omitempty"`
}

// NewReference validates ref and returns it. Validation failures are
// construction errors and surface as command failures.
func NewReference(ref Reference) (*Reference, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	return &ref, nil
}

// Validate checks the invariants enforced at construction time
func (r *Reference) Validate() error {
	if r.URL == "" {
		return fmt.Errorf("reference %q must have a url", r.ID)
	}
	if !IsValidURL(r.URL) {
		return fmt.Errorf("reference %q has invalid url: %s", r.ID, r.URL)
	}
	if !r.ReferenceType.Valid() {
		return fmt.Errorf("reference %q has unknown reference_type: %s", r.ID, r.ReferenceType)
	}
	for _, hc := range r.HardClaims {
		if !hc.EvidenceType.Valid() {
			return fmt.Errorf("reference %q claim %q has unknown evidence_type: %s", r.ID, hc.Summary, hc.EvidenceType)
		}
	}
	return nil
}

// PubMedURL returns the PubMed page for this reference, or "" without a PMID
func (r *Reference) PubMedURL() string {
	if r.PMID == "" {
		return ""
	}
	return fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", r.PMID)
}

// DOIURL returns the DOI resolver URL, or "" without a DOI
func (r *Reference) DOIURL() string {
	if r.DOI == "" {
		return ""
	}
	return "https://doi.org/" + r.DOI
}
