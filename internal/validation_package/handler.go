package validationpackage

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/config"
	"github.com/grupoclick/clickcheck/internal/user"
)

type Handler struct {
	service Service
	users   user.UserRepository
}

func NewHandler(service Service, users user.UserRepository) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	activeOnly := r.URL.Query().Has("active")
	packages, err := h.service.List(activeOnly)
	if err != nil {
		log.WithError(err).Error("Failed to list packages")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, packages)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load package")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, ok := requirePrimaryAdmin(w, r)
	if !ok {
		return
	}

	var dto CreatePackageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	creator, err := h.users.FindByID(uuid.MustParse(claims.UserID))
	if err != nil || creator == nil {
		log.WithError(err).Error("Failed to resolve package creator")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	p, err := h.service.Create(creator.Email, dto)
	if err != nil {
		if errors.Is(err, ErrMissingField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to create package")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := requirePrimaryAdmin(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto UpdatePackageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.service.Update(id, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to update package")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := requirePrimaryAdmin(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete package")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func requirePrimaryAdmin(w http.ResponseWriter, r *http.Request) (*auth.UserClaims, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	if !user.AdminLevel(claims.Role).IsPrimary() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return claims, true
}
