package user

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupoclick/clickcheck/internal/auth"
)

// Tokens are signed opaque strings; a subject that is not a UUID must
// come back as 401, never as a panic.
func TestHandlersRejectNonUUIDSubject(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth.Init()

	h := NewHandler(nil)

	t.Run("Me", func(t *testing.T) {
		token, err := auth.GenerateJWT("not-a-uuid", string(AdminLevelUser), time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		auth.AuthMiddleware(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		token, err := auth.GenerateJWT("not-a-uuid", string(AdminLevelPrimary), time.Minute)
		require.NoError(t, err)

		r := chi.NewRouter()
		r.Use(auth.AuthMiddleware)
		r.Delete("/{id}", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/"+testUUID, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

const testUUID = "7f9d6a48-3e41-4af1-9a14-2f5b9a6f0c11"
