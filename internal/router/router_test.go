package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/user"
)

type stubUserService struct {
	me user.UserResponse
}

func (s *stubUserService) AuthCodeURL(state string) string { return "https://accounts.example/" + state }
func (s *stubUserService) LoginWithGoogle(ctx context.Context, code string) (*user.LoginResponse, error) {
	return nil, nil
}
func (s *stubUserService) IssueToken(u *user.User) (string, error) { return "", nil }
func (s *stubUserService) Me(userID uuid.UUID) (*user.UserResponse, error) {
	me := s.me
	me.ID = userID
	return &me, nil
}
func (s *stubUserService) List() ([]user.UserResponse, error) { return nil, nil }
func (s *stubUserService) Create(dto user.CreateUserDTO) (*user.UserResponse, error) {
	return nil, nil
}
func (s *stubUserService) Update(id uuid.UUID, dto user.UpdateUserDTO) error     { return nil }
func (s *stubUserService) Delete(id uuid.UUID, callerID uuid.UUID) error         { return nil }
func (s *stubUserService) Directory() ([]user.DirectoryEntry, error)             { return nil, nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	auth.Init()

	svc := &stubUserService{me: user.UserResponse{AdminLevel: user.AdminLevelUser}}
	return New(RouterConfig{UserHandler: user.NewHandler(svc)})
}

func TestRefreshTokenRoute(t *testing.T) {
	r := testRouter(t)

	t.Run("ValidBearerTokenGetsFreshToken", func(t *testing.T) {
		token, err := auth.GenerateJWT(uuid.NewString(), string(user.AdminLevelUser), time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "token")
	})

	t.Run("MissingTokenIsRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
