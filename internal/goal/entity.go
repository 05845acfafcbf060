package goal

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a monthly target for one user on one validation package.
// Unique per (user_id, package_id, month); creation uses upsert
// semantics so re-submitting the same key updates the target.
type Goal struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_user_goals_user_package_month" json:"user_id"`
	PackageID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_user_goals_user_package_month" json:"package_id"`
	TargetCount int        `gorm:"default:0" json:"target_count"`
	Month       string     `gorm:"not null;uniqueIndex:uq_user_goals_user_package_month" json:"month"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Goal) TableName() string {
	return "user_goals"
}
