package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/permission"
)

type UserResponse struct {
	ID             uuid.UUID          `json:"id"`
	Email          string             `json:"email"`
	FullName       string             `json:"full_name"`
	Nickname       string             `json:"nickname"`
	ProfilePicture string             `json:"profile_picture"`
	AdminLevel     AdminLevel         `json:"admin_level"`
	Profile        permission.Profile `json:"profile"`
	ManagerID      *uuid.UUID         `json:"manager_id,omitempty"`
	Permissions    permission.Set     `json:"permissions"`
	CreatedAt      time.Time          `json:"created_at"`
}

type CreateUserDTO struct {
	Email       string             `json:"email"`
	FullName    string             `json:"full_name"`
	Profile     permission.Profile `json:"profile"`
	Permissions *permission.Set    `json:"permissions"`
}

// UpdateUserDTO carries partial updates. ManagerID accepts a user id or
// an empty string to detach the user from their manager.
type UpdateUserDTO struct {
	FullName    *string             `json:"full_name"`
	Nickname    *string             `json:"nickname"`
	ManagerID   *string             `json:"manager_id"`
	Profile     *permission.Profile `json:"profile"`
	Permissions *permission.Set     `json:"permissions"`
}

// DirectoryEntry is the slim user record served to the goal modal and
// team pickers.
type DirectoryEntry struct {
	ID             uuid.UUID          `json:"id"`
	Email          string             `json:"email"`
	FullName       string             `json:"full_name"`
	Nickname       string             `json:"nickname"`
	ProfilePicture string             `json:"profile_picture"`
	Profile        permission.Profile `json:"profile"`
	AdminLevel     AdminLevel         `json:"admin_level"`
	ManagerID      *uuid.UUID         `json:"manager_id,omitempty"`
}

// ToResponse shapes a user for API output, with effective permissions
// resolved.
func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Nickname:       u.Nickname,
		ProfilePicture: u.ProfilePicture,
		AdminLevel:     u.AdminLevel,
		Profile:        u.Profile,
		ManagerID:      u.ManagerID,
		Permissions:    u.EffectivePermissions(),
		CreatedAt:      u.CreatedAt,
	}
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
