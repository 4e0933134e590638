package wire

import (
	"flickcritic/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(r chi.Router, h *adaptor.UserHandler) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.GetUsers)
		r.Post("/", h.CreateUser)
		r.Post("/login", h.Login)
		r.Get("/{id}", h.GetUserByID)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})
}
