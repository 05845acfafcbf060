package invite

import (
	"time"

	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/user"
)

type CreateInviteDTO struct {
	Email      string          `json:"email"`
	AdminLevel user.AdminLevel `json:"admin_level"`
	ExpiresIn  *int            `json:"expires_in"` // days
}

type VerifyInviteDTO struct {
	Token string `json:"token"`
}

type InviteResponse struct {
	ID         uuid.UUID       `json:"id"`
	Email      string          `json:"email"`
	AdminLevel user.AdminLevel `json:"admin_level"`
	InvitedBy  string          `json:"invited_by"`
	UsedAt     *time.Time      `json:"used_at,omitempty"`
	ExpiresAt  time.Time       `json:"expires_at"`
	CreatedAt  time.Time       `json:"created_at"`
	Status     string          `json:"status"`
}

type CreatedInviteResponse struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	InviteURL string    `json:"invite_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyResponse struct {
	Valid      bool            `json:"valid"`
	Error      string          `json:"error,omitempty"`
	Email      string          `json:"email,omitempty"`
	AdminLevel user.AdminLevel `json:"admin_level,omitempty"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
}
