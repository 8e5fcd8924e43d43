package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns booking routes; every endpoint requires authentication
// and confirm additionally requires admin.
func (h *Handler) Routes(authMiddleware, adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Post("/", h.Create)
		r.Get("/", h.ListMy)
		r.Get("/{id}", h.GetByID)
		r.Delete("/{id}", h.Cancel)

		r.Group(func(r chi.Router) {
			r.Use(adminMiddleware)
			r.Patch("/{id}/confirm", h.Confirm)
		})
	})

	return r
}
