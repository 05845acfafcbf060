package invite

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

// requirePrimaryAdmin gates invite management to primary admins.
func (h *Handler) requirePrimaryAdmin(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}

	u, err := h.users.FindByID(userID)
	if err != nil || u == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	if !u.AdminLevel.IsPrimary() {
		http.Error(w, "only admins can manage invites", http.StatusForbidden)
		return nil, false
	}
	return u, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.requirePrimaryAdmin(w, r); !ok {
		return
	}

	invites, err := h.service.List()
	if err != nil {
		log.WithError(err).Error("Failed to list invites")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, invites)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.requirePrimaryAdmin(w, r)
	if !ok {
		return
	}

	var dto CreateInviteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(caller.Email, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailRequired),
			errors.Is(err, ErrActiveInvite),
			errors.Is(err, ErrUserExists):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.WithError(err).Error("Failed to create invite")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusCreated, created)
}

// Verify is public: the invited person has no session yet.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto VerifyInviteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Verify(dto.Token)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			config.JSON(w, http.StatusNotFound, VerifyResponse{Valid: false, Error: "invite not found"})
		default:
			log.WithError(err).Error("Failed to verify invite")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.requirePrimaryAdmin(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete invite")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
