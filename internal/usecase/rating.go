package usecase

import (
	"flickcritic/internal/data/entity"
)

// AverageRating computes the mean of the non-nil ratings in the given
// review set. Returns 0.0 when no rating counts, including the empty
// set. Pure: callers persist the result themselves.
func AverageRating(reviews []*entity.Review) float64 {
	sum := 0.0
	count := 0
	for _, review := range reviews {
		if review.Rating != nil {
			sum += float64(*review.Rating)
			count++
		}
	}
	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}
