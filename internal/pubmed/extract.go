package pubmed

import (
	"regexp"
	"strconv"

	"github.com/vitalctl/vital/internal/stats"
)

// effectRe matches ratio-type effect sizes with 95% CI bounds in
// abstract text, e.g. "HR 0.73 (95% CI 0.65-0.82)" or
// "RR = 0.88, 95% CI: 0.80 to 0.97".
var effectRe = regexp.MustCompile(
	`(?i)\b(a?HR|a?RR|a?OR)\s*[=:]?\s*(\d+(?:\.\d+)?)\s*[,;]?\s*[(\[]?\s*95\s*%\s*CI[:,=]?\s*(\d+(?:\.\d+)?)\s*(?:-|–|—|to|,)\s*(\d+(?:\.\d+)?)`)

// ExtractedEffect is one effect size found in free text
type ExtractedEffect struct {
	Measure  string // HR, RR, OR (possibly adjusted: aHR, aOR)
	Estimate float64
	CILower  float64
	CIUpper  float64
}

// MeanStd converts the published interval into the mean/std form used
// by effect records
func (e ExtractedEffect) MeanStd() (mean, std float64) {
	return e.Estimate, stats.StdFromCI(e.CILower, e.CIUpper)
}

// ExtractEffects scans free text (typically an abstract) for ratio
// effect sizes with 95% confidence intervals
func ExtractEffects(text string) []ExtractedEffect {
	var effects []ExtractedEffect
	for _, m := range effectRe.FindAllStringSubmatch(text, -1) {
		estimate, err1 := strconv.ParseFloat(m[2], 64)
		lower, err2 := strconv.ParseFloat(m[3], 64)
		upper, err3 := strconv.ParseFloat(m[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		effects = append(effects, ExtractedEffect{
			Measure:  m[1],
			Estimate: estimate,
			CILower:  lower,
			CIUpper:  upper,
		})
	}
	return effects
}
