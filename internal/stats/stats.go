// Package stats provides the closed-form statistics used for effect
// estimates: Gaussian confidence bounds, conservative percentiles, and
// classification of an interval against a neutral reference value.
package stats

// Z-scores for the standard normal distribution.
const (
	// Z95 is the two-sided 95% critical value.
	Z95 = 1.96
	// Z30 is the 30th percentile z-score.
	Z30 = -0.524
)

// CIBounds returns the 95% Gaussian confidence interval for an estimate
// with the given mean and standard deviation.
func CIBounds(mean, std float64) (lower, upper float64) {
	return mean - Z95*std, mean + Z95*std
}

// P30 returns the 30th-percentile conservative estimate.
func P30(mean, std float64) float64 {
	return mean + Z30*std
}

// StdFromCI back-converts a 95% confidence interval to a standard
// deviation under the Gaussian assumption.
func StdFromCI(lower, upper float64) float64 {
	return (upper - lower) / (2 * Z95)
}

// Classification is the verdict for an effect interval relative to its
// neutral point.
type Classification string

const (
	Beneficial Classification = "beneficial" // entire interval below neutral
	Harmful    Classification = "harmful"    // entire interval above neutral
	Uncertain  Classification = "uncertain"  // interval touches or crosses neutral
)

// Classify compares a confidence interval against a neutral reference
// value. Boundary ties count as uncertain.
func Classify(lower, upper, neutral float64) Classification {
	switch {
	case upper < neutral:
		return Beneficial
	case lower > neutral:
		return Harmful
	default:
		return Uncertain
	}
}
