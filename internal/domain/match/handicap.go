package match

import (
	"fmt"
	"math"
)

const (
	// MaxScore bounds a single raw match score.
	MaxScore = 999
	// MaxHandicap bounds the handicap percentage magnitude.
	MaxHandicap = 50

	handicapStep = 5
)

func ValidateScore(score int) error {
	if score < 0 || score > MaxScore {
		return fmt.Errorf("score %d is outside 0..%d", score, MaxScore)
	}
	return nil
}

func ValidateHandicap(handicap int) error {
	if handicap < -MaxHandicap || handicap > MaxHandicap {
		return fmt.Errorf("handicap %d is outside %d..%d", handicap, -MaxHandicap, MaxHandicap)
	}
	return nil
}

// AdjustScores applies the handicap to a raw score pair. A positive
// handicap discounts side A's score by that percentage, a negative one
// discounts side B's. Rounding is half-away-from-zero.
func AdjustScores(scoreA, scoreB, handicap int) (adjustedA, adjustedB int) {
	if handicap == 0 {
		return scoreA, scoreB
	}
	p := float64(handicap)
	if p < 0 {
		p = -p
	}
	factor := 1 - p/100
	if handicap > 0 {
		return int(math.Round(float64(scoreA) * factor)), scoreB
	}
	return scoreA, int(math.Round(float64(scoreB) * factor))
}

// SuggestedHandicap returns half the level advantage between the two
// sides, rounded to the nearest 5-point step and capped at MaxHandicap.
// The result is a non-negative magnitude; the caller knows the stronger
// side from the levels themselves.
func SuggestedHandicap(levelA, levelB int) int {
	diff := levelA - levelB
	if diff < 0 {
		diff = -diff
	}
	steps := math.Round(float64(diff) / 2 / handicapStep)
	suggested := int(steps) * handicapStep
	if suggested > MaxHandicap {
		suggested = MaxHandicap
	}
	return suggested
}
