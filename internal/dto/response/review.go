package response

import (
	"time"

	"flickcritic/internal/data/entity"
)

type ReviewResponse struct {
	ID           string    `json:"id"`
	MovieID      string    `json:"movie_id"`
	UserID       string    `json:"user_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Rating       *int      `json:"rating,omitempty"`
	Body         *string   `json:"body,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID.String(),
		MovieID:      review.MovieID.String(),
		UserID:       review.UserID.String(),
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Body:         review.Body,
		CreatedAt:    review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		out[i] = ReviewToResponse(review)
	}
	return out
}
