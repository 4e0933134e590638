package response

import (
	"time"

	"flickcritic/internal/data/entity"
)

type MovieResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ImageURL      string    `json:"image_url"`
	Description   string    `json:"description"`
	AverageRating float64   `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	Reviews []ReviewResponse `json:"reviews"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:            movie.ID.String(),
		Title:         movie.Title,
		ImageURL:      movie.ImageURL,
		Description:   movie.Description,
		AverageRating: movie.AverageRating,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}

func MovieToDetailResponse(movie *entity.Movie, reviews []ReviewResponse) MovieDetailResponse {
	if reviews == nil {
		reviews = []ReviewResponse{}
	}
	return MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		Reviews:       reviews,
	}
}
