package observability

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Tier is a coarse band of an overall score used for display
type Tier string

// Score tiers, best first
const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

const notSpecified = "Not specified"

// ScoreTier bands a score: 90 and up is excellent, 80 good, 70 fair, anything lower poor.
func ScoreTier(score int) Tier {
	switch {
	case score >= 90:
		return TierExcellent
	case score >= 80:
		return TierGood
	case score >= 70:
		return TierFair
	default:
		return TierPoor
	}
}

// Color returns the dashboard color family of the tier.
func (t Tier) Color() string {
	switch t {
	case TierExcellent:
		return "green"
	case TierGood:
		return "blue"
	case TierFair:
		return "yellow"
	default:
		return "red"
	}
}

// ScoreClasses returns the text and background classes for a score badge.
func ScoreClasses(score int) string {
	c := ScoreTier(score).Color()
	return fmt.Sprintf("text-%s-600 bg-%s-50", c, c)
}

// ScoreBorderClass returns the border class for a score card.
func ScoreBorderClass(score int) string {
	return fmt.Sprintf("border-%s-200", ScoreTier(score).Color())
}

// FormatSalary renders a range in thousands, e.g. "$120k - $180k USD".
func FormatSalary(s types.SalaryRange) string {
	return fmt.Sprintf("%s - %s %s", thousands(s.Min), thousands(s.Max), strings.ToUpper(s.Currency))
}

// FormatExpectedSalary is FormatSalary for an optional range.
func FormatExpectedSalary(s *types.SalaryRange) string {
	if s == nil {
		return notSpecified
	}
	return FormatSalary(*s)
}

func thousands(amount float64) string {
	k := amount / 1000
	if k == math.Trunc(k) {
		return fmt.Sprintf("$%.0fk", k)
	}
	return fmt.Sprintf("$%gk", math.Round(k*10)/10)
}

// FormatExperienceRange renders a required range, e.g. "5-8 years".
func FormatExperienceRange(r types.ExperienceRange) string {
	switch {
	case r.Min == 0 && r.Max == 0:
		return notSpecified
	case r.Max == 0:
		return fmt.Sprintf("%g+ years", r.Min)
	case r.Min == r.Max:
		return fmt.Sprintf("%g years", r.Min)
	}
	return fmt.Sprintf("%g-%g years", r.Min, r.Max)
}
