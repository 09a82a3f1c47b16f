// Package scoring holds the pure scoring functions: section score aggregation
// and seed-to-color mapping. Nothing here keeps state, logs, or fails.
package scoring

import (
	"math"

	"trivia-service/internal/domain"
)

// AggregateScores clamps each section's correctness into [0, 1] and averages
// them without weights. Sections keep their input order. An empty input
// scores 0 with no sections.
func AggregateScores(inputs []domain.SectionScoreInput) domain.AggregatedScore {
	if len(inputs) == 0 {
		return domain.AggregatedScore{Overall: 0, Sections: []domain.SectionScore{}}
	}

	sections := make([]domain.SectionScore, len(inputs))
	var sum float64
	for i, in := range inputs {
		score := Clamp(in.Correctness)
		sections[i] = domain.SectionScore{Code: in.Code, Score: score}
		sum += score
	}

	return domain.AggregatedScore{
		Overall:  sum / float64(len(sections)),
		Sections: sections,
	}
}

// Clamp restricts v to [0, 1]. NaN maps to 0.
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v))
}
