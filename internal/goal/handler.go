package goal

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

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
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
	return u, true
}

// requireAdmin gates goal writes. Setting targets for other users is an
// admin action.
func (h *Handler) requireAdmin(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	caller, ok := h.currentUser(w, r)
	if !ok {
		return nil, false
	}
	if !caller.AdminLevel.IsAdmin() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return nil, false
	}
	return caller, true
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.currentUser(w, r); !ok {
		return
	}

	entries, err := h.service.Progress(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to compute goal progress")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, entries)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.currentUser(w, r); !ok {
		return
	}

	q := r.URL.Query()

	var userID *uuid.UUID
	if raw := q.Get("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid user_id", http.StatusBadRequest)
			return
		}
		userID = &id
	}

	rows, err := h.service.List(q.Get("month"), userID)
	if err != nil {
		log.WithError(err).Error("Failed to list goals")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, rows)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.Create(caller.ID, dto)
	if err != nil {
		if errors.Is(err, ErrMissingField) || errors.Is(err, ErrInvalidMonth) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to create goal")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto UpdateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if dto.TargetCount == nil {
		http.Error(w, "target_count is required", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateTarget(id, *dto.TargetCount); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to update goal")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to delete goal")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Team lists the caller's direct reports, or another manager's when a
// manager_id query parameter names one and the caller is an admin.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	managerID := caller.ID
	if raw := r.URL.Query().Get("manager_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid manager_id", http.StatusBadRequest)
			return
		}
		if id != caller.ID && !caller.AdminLevel.IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		managerID = id
	}

	members, err := h.service.TeamMembers(managerID)
	if err != nil {
		log.WithError(err).Error("Failed to list team members")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	responses := make([]user.UserResponse, 0, len(members))
	for i := range members {
		responses = append(responses, user.ToResponse(&members[i]))
	}
	config.JSON(w, http.StatusOK, responses)
}
