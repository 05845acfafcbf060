package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateRequestDTO struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	DescriptionImages []string  `json:"description_images"`
	PackageID         uuid.UUID `json:"package_id"`
	ContentURLs       []string  `json:"content_urls"`
	Priority          Priority  `json:"priority"`
	AssignedTo        string    `json:"assigned_to"`
}

type UpdateRequestDTO struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *Priority `json:"priority"`
	AssignedTo  *string   `json:"assigned_to"`
	Status      *Status   `json:"status"`
}

// LinkValidation is the per-URL verdict a validator submits. Either the
// status string or the approved flag marks a link as approved.
type LinkValidation struct {
	URL          string `json:"url"`
	Status       string `json:"status,omitempty"`
	Approved     bool   `json:"approved,omitempty"`
	Observations string `json:"observations,omitempty"`
}

type ValidateRequestDTO struct {
	ValidationPerLink []LinkValidation `json:"validation_per_link"`
	FinalObservations string           `json:"final_observations"`
}

type CorrectRequestDTO struct {
	ContentURLs []string `json:"content_urls"`
}

type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	User      string    `json:"user"`
}

type ListFilters struct {
	Tab         string
	Search      string
	RequestedBy string
	AssignedTo  string
	PackageID   *uuid.UUID
	StartDate   string
	EndDate     string
	Page        int
	Limit       int
	Paginate    bool

	// Caller identity, used for row-level visibility.
	CallerEmail string
	ViewAll     bool
}

type RequestResponse struct {
	ValidationRequest `gorm:"embedded"`
	RequesterName     string `json:"requester_name"`
	AssignedName      string `json:"assigned_name"`
}

type ListMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type PagedResponse struct {
	Items []RequestResponse `json:"items"`
	Meta  ListMeta          `json:"meta"`
}

type StatsFilters struct {
	StartDate   string
	EndDate     string
	CallerEmail string
	ViewAll     bool
}

type StatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// AchievedCount is one row of the monthly achievement aggregate the goal
// engine consumes: approved link totals grouped by requester email and
// package.
type AchievedCount struct {
	RequestedBy string    `json:"requested_by"`
	PackageID   uuid.UUID `json:"package_id"`
	Approved    int       `json:"approved"`
	Submitted   int       `json:"submitted"`
}
