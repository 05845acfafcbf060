package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/grupoclick/clickcheck/internal/permission"
)

type User struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email          string             `gorm:"not null;uniqueIndex" json:"email"`
	FullName       string             `json:"full_name"`
	Nickname       string             `json:"nickname"`
	ProfilePicture string             `json:"profile_picture"`
	GoogleID       string             `json:"-"`
	AdminLevel     AdminLevel         `gorm:"default:user" json:"admin_level"`
	Profile        permission.Profile `gorm:"default:validator" json:"profile"`
	Permissions    datatypes.JSON     `json:"permissions,omitempty"`
	ManagerID      *uuid.UUID         `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// DisplayName prefers the nickname, falling back to the full name.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.FullName
}

func (u *User) EffectivePermissions() permission.Set {
	return permission.Resolve(u.AdminLevel.IsAdmin(), u.Permissions, u.Profile)
}
