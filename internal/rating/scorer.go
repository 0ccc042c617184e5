package rating

import (
	"fmt"
	"math"
	"strings"

	"github.com/ougirez/agrorating/internal/domain"
	"github.com/ougirez/agrorating/internal/pkg/constants"
)

var (
	bandScores = [5]float64{100, 80, 60, 40, 20}
	bandLevels = [5]string{"EXCELLENT", "GOOD", "FAIR", "WEAK", "POOR"}
)

const levelCritical = "CRITICAL"

type Scorer struct {
	policy     Policy
	indicators []domain.Indicator
}

// NewScorer validates the policy once, so that scoring never fails on
// configuration.
func NewScorer(policy Policy) (*Scorer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	bands := make(map[domain.Indicator]Bands, len(policy.Bands))
	for ind, b := range policy.Bands {
		b.Direction = Direction(strings.ToLower(string(b.Direction)))
		bands[ind] = b
	}
	policy.Bands = bands

	return &Scorer{policy: policy, indicators: policy.indicators()}, nil
}

func (s *Scorer) Policy() Policy {
	return s.policy
}

// Score computes the weighted composite over the indicators present in set.
// Absent indicators are left out of both sides of the average.
func (s *Scorer) Score(set domain.IndicatorSet) (domain.RatingResult, error) {
	var (
		res         domain.RatingResult
		weighted    float64
		totalWeight float64
	)

	for _, ind := range s.indicators {
		weight := s.policy.Weights[ind]
		if weight == 0 {
			continue
		}

		value, ok := set.Lookup(ind)
		if !ok || math.IsNaN(value) {
			res.Skipped = append(res.Skipped, ind)
			continue
		}

		score, level := s.policy.Bands[ind].score(value)
		res.SubScores = append(res.SubScores, domain.SubScore{
			Indicator: ind,
			Value:     value,
			Score:     score,
			Level:     level,
			Weight:    weight,
		})
		weighted += score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return domain.RatingResult{}, fmt.Errorf("rating.Score: no weighted indicator present: %w", constants.ErrInsufficientData)
	}

	res.CompositeScore = weighted / totalWeight
	g := gradeFor(res.CompositeScore)
	res.Letter = g.letter
	res.Description = g.description
	res.RiskTier = Tier(res.CompositeScore)

	return res, nil
}

// score places value in the first band whose threshold it meets. Values past
// the last threshold keep the worst band score but are labelled critical.
func (b Bands) score(value float64) (float64, string) {
	for k, t := range b.Thresholds {
		if b.Direction == HigherIsBetter && value >= t || b.Direction != HigherIsBetter && value <= t {
			return bandScores[k], bandLevels[k]
		}
	}
	return bandScores[len(bandScores)-1], levelCritical
}
