package services

import (
	"fmt"

	"movers/internal/core/domain/model/mover"
	"movers/internal/core/domain/model/rating"
	"movers/internal/pkg/errs"
)

// ScoreAggregate is the (sum, count) of all scores stored for one mover.
type ScoreAggregate struct {
	Sum   int64
	Count int64
}

// RatingAggregator turns a score aggregate into the mover's average.
// It never loads individual ratings; the store supplies the aggregate.
type RatingAggregator struct{}

func NewRatingAggregator() RatingAggregator {
	return RatingAggregator{}
}

// Average returns Sum/Count, or 0 when Count is 0.
func (RatingAggregator) Average(agg ScoreAggregate) (float64, error) {
	if agg.Count < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("count", fmt.Errorf("%d is negative", agg.Count))
	}
	if agg.Count == 0 {
		if agg.Sum != 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("sum", fmt.Errorf("%d without ratings", agg.Sum))
		}
		return 0, nil
	}
	if agg.Sum < agg.Count*rating.MinScore || agg.Sum > agg.Count*rating.MaxScore {
		return 0, errs.NewValueIsOutOfRangeError("sum", agg.Sum, agg.Count*rating.MinScore, agg.Count*rating.MaxScore)
	}

	return float64(agg.Sum) / float64(agg.Count), nil
}

// Apply recomputes the average and stores it on the mover.
func (a RatingAggregator) Apply(m *mover.Mover, agg ScoreAggregate) error {
	if err := m.Validate(); err != nil {
		return err
	}

	average, err := a.Average(agg)
	if err != nil {
		return err
	}

	return m.ApplyRating(average, agg.Count)
}
