package upload

import (
	"net/http"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/config"
)

// maxUploadSize caps attachment images at 5MB.
const maxUploadSize = 5 << 20

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Handler struct {
	storage Storage
}

func NewHandler(storage Storage) *Handler {
	return &Handler{storage: storage}
}

type uploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if _, err := auth.GetUserClaimsFromContext(r.Context()); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if h.storage == nil {
		http.Error(w, "uploads are not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large (5MB max)", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file sent", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		http.Error(w, "file type not allowed", http.StatusBadRequest)
		return
	}
	if header.Size > maxUploadSize {
		http.Error(w, "file too large (5MB max)", http.StatusRequestEntityTooLarge)
		return
	}

	url, err := h.storage.Put(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		log.WithError(err).Error("Failed to store uploaded file")
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, uploadResponse{URL: url, Filename: header.Filename})
}
