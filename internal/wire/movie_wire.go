package wire

import (
	"flickcritic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func MovieRoutes(r chi.Router, h *adaptor.MovieHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", h.GetMovies)
		r.Post("/", h.CreateMovie)
		r.Get("/{id}", h.GetMovieByID)
		r.Put("/{id}", h.UpdateMovie)
		r.Delete("/{id}", h.DeleteMovie)
	})
}
