package model

// UserProfile is an optional-everywhere nested structure describing one
// user. Completeness is a fixed enumeration of 12 leaf slots across the
// five sections (2+2+3+3+2).
type UserProfile struct {
	Demographics     *Demographics     `yaml:"demographics,omitempty" json:"demographics,omitempty"`
	Goals            *Goals            `yaml:"goals,omitempty" json:"goals,omitempty"`
	RiskFactors      *RiskFactors      `yaml:"risk_factors,omitempty" json:"risk_factors,omitempty"`
	CurrentBehaviors *CurrentBehaviors `yaml:"current_behaviors,omitempty" json:"current_behaviors,omitempty"`
	Biomarkers       *Biomarkers       `yaml:"biomarkers,omitempty" json:"biomarkers,omitempty"`
}

// Demographics holds basic facts about the user
type Demographics struct {
	Age           *int   `yaml:"age,omitempty" json:"age,omitempty"`
	BiologicalSex string `yaml:"biological_sex,omitempty" json:"biological_sex,omitempty"`
}

// Goals lists primary and secondary wellness goals
type Goals struct {
	Primary   []string `yaml:"primary,omitempty" json:"primary,omitempty"`
	Secondary []string `yaml:"secondary,omitempty" json:"secondary,omitempty"`
}

// RiskLevel wraps a qualitative risk rating ("low", "moderate", "high")
type RiskLevel struct {
	Level string `yaml:"level" json:"level"`
}

// RiskFactors rates the user's major risk categories
type RiskFactors struct {
	Cardiovascular *RiskLevel `yaml:"cardiovascular,omitempty" json:"cardiovascular,omitempty"`
	Metabolic      *RiskLevel `yaml:"metabolic,omitempty" json:"metabolic,omitempty"`
	Cognitive      *RiskLevel `yaml:"cognitive,omitempty" json:"cognitive,omitempty"`
}

// Diet captures current dietary behaviors
type Diet struct {
	FattyFishServingsPerWeek *int `yaml:"fatty_fish_servings_per_week,omitempty" json:"fatty_fish_servings_per_week,omitempty"`
}

// Exercise captures current exercise behaviors
type Exercise struct {
	CardioMinutesPerWeek *int `yaml:"cardio_minutes_per_week,omitempty" json:"cardio_minutes_per_week,omitempty"`
}

// CurrentBehaviors describes what the user is already doing
type CurrentBehaviors struct {
	Diet               *Diet     `yaml:"diet,omitempty" json:"diet,omitempty"`
	Exercise           *Exercise `yaml:"exercise,omitempty" json:"exercise,omitempty"`
	SleepHoursPerNight *float64  `yaml:"sleep_hours_per_night,omitempty" json:"sleep_hours_per_night,omitempty"`
}

// Biomarkers holds recent lab values
type Biomarkers struct {
	VitaminDNgML      *float64 `yaml:"vitamin_d_ng_ml,omitempty" json:"vitamin_d_ng_ml,omitempty"`
	TriglyceridesMgDL *float64 `yaml:"triglycerides_mg_dl,omitempty" json:"triglycerides_mg_dl,omitempty"`
}

// profileLeafSlots is the fixed denominator of the completeness score
const profileLeafSlots = 12

// Completeness returns the populated share of the profile's 12 leaf
// slots as a percentage
func (p *UserProfile) Completeness() float64 {
	populated := 0

	if d := p.Demographics; d != nil {
		if d.Age != nil {
			populated++
		}
		if d.BiologicalSex != "" {
			populated++
		}
	}
	if g := p.Goals; g != nil {
		if len(g.Primary) > 0 {
			populated++
		}
		if len(g.Secondary) > 0 {
			populated++
		}
	}
	if r := p.RiskFactors; r != nil {
		if r.Cardiovascular != nil {
			populated++
		}
		if r.Metabolic != nil {
			populated++
		}
		if r.Cognitive != nil {
			populated++
		}
	}
	if b := p.CurrentBehaviors; b != nil {
		if b.Diet != nil {
			populated++
		}
		if b.Exercise != nil {
			populated++
		}
		if b.SleepHoursPerNight != nil {
			populated++
		}
	}
	if m := p.Biomarkers; m != nil {
		if m.VitaminDNgML != nil {
			populated++
		}
		if m.TriglyceridesMgDL != nil {
			populated++
		}
	}

	return float64(populated) / profileLeafSlots * 100
}
