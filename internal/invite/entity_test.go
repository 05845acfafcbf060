package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInviteStatus(t *testing.T) {
	now := time.Now()

	t.Run("Pending", func(t *testing.T) {
		i := Invite{ExpiresAt: now.Add(24 * time.Hour)}
		assert.Equal(t, "pending", i.Status(now))
	})

	t.Run("Expired", func(t *testing.T) {
		i := Invite{ExpiresAt: now.Add(-time.Minute)}
		assert.Equal(t, "expired", i.Status(now))
	})

	t.Run("UsedBeatsExpired", func(t *testing.T) {
		used := now.Add(-48 * time.Hour)
		i := Invite{ExpiresAt: now.Add(-time.Minute), UsedAt: &used}
		assert.Equal(t, "used", i.Status(now))
	})
}

func TestNewToken(t *testing.T) {
	a, err := newToken()
	assert.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := newToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
