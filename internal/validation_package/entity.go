package validationpackage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Package struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description,omitempty"`
	Type           string         `gorm:"not null" json:"type"`
	Criteria       datatypes.JSON `json:"criteria,omitempty"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedByEmail string         `json:"created_by_email"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Package) TableName() string {
	return "validation_packages"
}
