package invite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupoclick/clickcheck/internal/user"
)

type stubRepo struct {
	active *Invite
	used   []uuid.UUID
}

func (r *stubRepo) Create(i *Invite) error                  { return nil }
func (r *stubRepo) FindByToken(token string) (*Invite, error) { return nil, nil }
func (r *stubRepo) FindActiveByEmail(email string) (*Invite, error) {
	return r.active, nil
}
func (r *stubRepo) MarkUsed(id uuid.UUID, usedAt time.Time) error {
	r.used = append(r.used, id)
	return nil
}
func (r *stubRepo) Delete(id uuid.UUID) error    { return nil }
func (r *stubRepo) ListAll() ([]Invite, error)   { return nil, nil }

func TestRedeemForEmail(t *testing.T) {
	t.Run("PendingInviteIsConsumed", func(t *testing.T) {
		inv := &Invite{
			ID:         uuid.New(),
			Email:      "new@example.com",
			AdminLevel: user.AdminLevelSecondary,
			ExpiresAt:  time.Now().Add(24 * time.Hour),
		}
		repo := &stubRepo{active: inv}
		s := NewService(repo, nil)

		level, ok, err := s.RedeemForEmail("new@example.com")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, user.AdminLevelSecondary, level)
		assert.Equal(t, []uuid.UUID{inv.ID}, repo.used)
	})

	t.Run("NoInviteIsNotAnError", func(t *testing.T) {
		repo := &stubRepo{}
		s := NewService(repo, nil)

		_, ok, err := s.RedeemForEmail("stranger@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, repo.used)
	})
}
