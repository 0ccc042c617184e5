package rating

import "github.com/ougirez/agrorating/internal/domain"

type grade struct {
	min         float64
	letter      string
	description string
}

var ladder = []grade{
	{min: 90, letter: "AAA", description: "Exceptional capacity to meet financial commitments"},
	{min: 80, letter: "AA", description: "Very strong capacity to meet financial commitments"},
	{min: 70, letter: "A", description: "Strong capacity, somewhat sensitive to adverse conditions"},
	{min: 60, letter: "BBB", description: "Adequate capacity, adverse conditions may weaken it"},
	{min: 50, letter: "BB", description: "Speculative, faces ongoing uncertainty"},
	{min: 40, letter: "B", description: "Highly speculative, currently able to pay"},
	{min: 30, letter: "CCC", description: "Vulnerable, depends on favorable conditions"},
	{min: 20, letter: "CC", description: "Highly vulnerable"},
	{min: 10, letter: "C", description: "Near default"},
}

var lowest = grade{letter: "D", description: "Default"}

func gradeFor(score float64) grade {
	for _, g := range ladder {
		if score >= g.min {
			return g
		}
	}
	return lowest
}

// Letter maps a composite score to the rating ladder, AAA down to D.
func Letter(score float64) string {
	return gradeFor(score).letter
}

func Description(score float64) string {
	return gradeFor(score).description
}

// Tier buckets a composite score independently of the letter ladder.
func Tier(score float64) domain.RiskTier {
	switch {
	case score >= 80:
		return domain.RiskExcellent
	case score >= 60:
		return domain.RiskGood
	case score >= 40:
		return domain.RiskWarning
	default:
		return domain.RiskDanger
	}
}
