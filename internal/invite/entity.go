package invite

import (
	"time"

	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/user"
)

type Invite struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string          `gorm:"not null;index" json:"email"`
	Token      string          `gorm:"not null;uniqueIndex" json:"-"`
	AdminLevel user.AdminLevel `gorm:"default:user" json:"admin_level"`
	InvitedBy  string          `gorm:"not null" json:"invited_by"`
	UsedAt     *time.Time      `json:"used_at,omitempty"`
	ExpiresAt  time.Time       `gorm:"not null" json:"expires_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Invite) TableName() string {
	return "invites"
}

// Status derives the invite's lifecycle state at the given instant.
func (i *Invite) Status(now time.Time) string {
	switch {
	case i.UsedAt != nil:
		return "used"
	case i.ExpiresAt.Before(now):
		return "expired"
	default:
		return "pending"
	}
}
