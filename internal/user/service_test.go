package user

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type stubRedeemer struct {
	level AdminLevel
	ok    bool
	err   error
}

func (s *stubRedeemer) RedeemForEmail(email string) (AdminLevel, bool, error) {
	return s.level, s.ok, s.err
}

func TestInvitedAdminLevel(t *testing.T) {
	log := logrus.NewEntry(logrus.New())

	t.Run("PendingInviteGrantsInvitedLevel", func(t *testing.T) {
		s := &service{invites: &stubRedeemer{level: AdminLevelSecondary, ok: true}}
		assert.Equal(t, AdminLevelSecondary, s.invitedAdminLevel(log, "new@example.com"))
	})

	t.Run("NoInviteDefaultsToUser", func(t *testing.T) {
		s := &service{invites: &stubRedeemer{}}
		assert.Equal(t, AdminLevelUser, s.invitedAdminLevel(log, "new@example.com"))
	})

	t.Run("LookupErrorDefaultsToUser", func(t *testing.T) {
		s := &service{invites: &stubRedeemer{err: errors.New("db down")}}
		assert.Equal(t, AdminLevelUser, s.invitedAdminLevel(log, "new@example.com"))
	})

	t.Run("NoRedeemerDefaultsToUser", func(t *testing.T) {
		s := &service{}
		assert.Equal(t, AdminLevelUser, s.invitedAdminLevel(log, "new@example.com"))
	})
}
