package request

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Put("/{id}/validate", h.Validate)
	r.Put("/{id}/correct", h.Correct)
	r.Put("/{id}/revert", h.Revert)
	r.Delete("/{id}", h.Delete)

	return r
}
