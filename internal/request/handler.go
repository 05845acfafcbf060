package request

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/config"
	"github.com/grupoclick/clickcheck/internal/permission"
	"github.com/grupoclick/clickcheck/internal/user"
)

type Handler struct {
	service Service
	users   user.UserRepository
}

func NewHandler(service Service, users user.UserRepository) *Handler {
	return &Handler{service: service, users: users}
}

// currentUser resolves the full user record for the authenticated
// caller. Row-level visibility depends on profile and permissions, not
// just token claims.
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

func viewAll(u *user.User) bool {
	return u.Profile == permission.ProfileManager ||
		u.EffectivePermissions().ViewAllValidations ||
		u.AdminLevel.IsAdmin()
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if caller.Email == "" {
		http.Error(w, "user has no email configured", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()

	f := ListFilters{
		Tab:         q.Get("tab"),
		Search:      q.Get("search"),
		RequestedBy: q.Get("requested_by"),
		AssignedTo:  q.Get("assigned_to"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		Page:        1,
		Limit:       10,
		CallerEmail: caller.Email,
		ViewAll:     viewAll(caller),
	}

	if raw := q.Get("package_id"); raw != "" {
		pkgID, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid package_id", http.StatusBadRequest)
			return
		}
		f.PackageID = &pkgID
	}
	if raw := q.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			f.Page = page
		}
	}
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			f.Limit = limit
		}
	}

	f.Paginate = q.Has("page") || q.Has("limit") || f.Tab != "" || f.Search != ""

	rows, total, err := h.service.List(f)
	if err != nil {
		log.WithError(err).Error("Failed to list validation requests")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !f.Paginate {
		config.JSON(w, http.StatusOK, rows)
		return
	}

	pages := (total + f.Limit - 1) / f.Limit
	config.JSON(w, http.StatusOK, PagedResponse{
		Items: rows,
		Meta: ListMeta{
			Total: total,
			Page:  f.Page,
			Limit: f.Limit,
			Pages: pages,
		},
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.currentUser(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	row, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to load validation request")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, row)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var dto CreateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.service.Create(r.Context(), caller.Email, dto)
	if err != nil {
		if errors.Is(err, ErrMissingField) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.WithError(err).Error("Failed to create validation request")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusCreated, row)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, ok := h.currentUser(w, r); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto UpdateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, ErrNoFields):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.WithError(err).Error("Failed to update validation request")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	config.JSON(w, http.StatusOK, row)
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto ValidateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.service.Validate(r.Context(), id, caller.Email, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to validate request")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, row)
}

func (h *Handler) Correct(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var dto CorrectRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	row, err := h.service.Correct(r.Context(), id, caller.Email, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to correct request")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, row)
}

func (h *Handler) Revert(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if !caller.AdminLevel.IsPrimary() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	row, err := h.service.Revert(r.Context(), id, caller.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		log.WithError(err).Error("Failed to revert request")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, row)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if !caller.AdminLevel.IsPrimary() {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete request")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	caller, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if caller.Email == "" {
		http.Error(w, "user has no email configured", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	stats, err := h.service.Stats(StatsFilters{
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		CallerEmail: caller.Email,
		// Dashboard stats stay personal for everyone but system admins.
		ViewAll: caller.AdminLevel.IsAdmin(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to compute request stats")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, stats)
}
