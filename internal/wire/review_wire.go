package wire

import (
	"flickcritic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func ReviewRoutes(r chi.Router, h *adaptor.ReviewHandler) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.GetReviews)
		r.Post("/", h.CreateReview)
		r.Get("/movie/{movieId}", h.GetMovieReviews)
		r.Get("/movie/{movieId}/user/{userId}", h.GetMovieUserReviews)
		r.Get("/user/{userId}", h.GetUserReviews)
		r.Get("/{id}", h.GetReviewByID)
		r.Put("/{id}", h.UpdateReview)
		r.Delete("/{id}", h.DeleteReview)
	})
}
