package request

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ValidationRequest is a ledger entry: a batch of content links submitted
// for review. Requester and validator are recorded by email, which is
// also the attribution key the goal engine joins on.
type ValidationRequest struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title              string         `gorm:"not null" json:"title"`
	Description        string         `json:"description,omitempty"`
	DescriptionImages  datatypes.JSON `json:"description_images,omitempty"`
	PackageID          uuid.UUID      `gorm:"type:uuid;not null" json:"package_id"`
	PackageName        string         `json:"package_name"`
	ContentURLs        datatypes.JSON `json:"content_urls"`
	ValidationPerLink  datatypes.JSON `json:"validation_per_link,omitempty"`
	ApprovedLinksCount int            `gorm:"default:0" json:"approved_links_count"`
	FinalObservations  string         `json:"final_observations,omitempty"`
	Priority           Priority       `gorm:"default:normal" json:"priority"`
	Status             Status         `gorm:"default:pending;index" json:"status"`
	AssignedTo         string         `gorm:"not null;index" json:"assigned_to"`
	RequestedBy        string         `gorm:"not null;index" json:"requested_by"`
	ValidatedBy        string         `json:"validated_by,omitempty"`
	ValidatedAt        *time.Time     `json:"validated_at,omitempty"`
	ReturnCount        int            `gorm:"default:0" json:"return_count"`
	History            datatypes.JSON `json:"history,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (ValidationRequest) TableName() string {
	return "validation_requests"
}
