package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/grupoclick/clickcheck/internal/config"
	validationpackage "github.com/grupoclick/clickcheck/internal/validation_package"
)

var (
	ErrNotFound     = errors.New("validation request not found")
	ErrMissingField = errors.New("title, package_id and assigned_to are required")
	ErrNoFields     = errors.New("nothing to update")
)

type Service interface {
	Create(ctx context.Context, requesterEmail string, dto CreateRequestDTO) (*RequestResponse, error)
	Get(id uuid.UUID) (*RequestResponse, error)
	List(f ListFilters) ([]RequestResponse, int, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateRequestDTO) (*RequestResponse, error)
	Validate(ctx context.Context, id uuid.UUID, validatorEmail string, dto ValidateRequestDTO) (*RequestResponse, error)
	Correct(ctx context.Context, id uuid.UUID, userEmail string, dto CorrectRequestDTO) (*RequestResponse, error)
	Revert(ctx context.Context, id uuid.UUID, adminEmail string) (*RequestResponse, error)
	Delete(id uuid.UUID) error
	Stats(f StatsFilters) (*StatsResponse, error)
}

type service struct {
	repo     Repository
	packages validationpackage.Repository
}

func NewService(repo Repository, packages validationpackage.Repository) Service {
	return &service{repo: repo, packages: packages}
}

func (s *service) Create(ctx context.Context, requesterEmail string, dto CreateRequestDTO) (*RequestResponse, error) {
	if dto.Title == "" || dto.PackageID == uuid.Nil || dto.AssignedTo == "" {
		return nil, ErrMissingField
	}

	packageName := ""
	if pkg, err := s.packages.FindByID(dto.PackageID); err != nil {
		return nil, err
	} else if pkg != nil {
		packageName = pkg.Name
	}

	priority := dto.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	req := &ValidationRequest{
		Title:             dto.Title,
		Description:       dto.Description,
		DescriptionImages: mustJSON(dto.DescriptionImages),
		PackageID:         dto.PackageID,
		PackageName:       packageName,
		ContentURLs:       mustJSON(dto.ContentURLs),
		Priority:          priority,
		Status:            StatusPending,
		AssignedTo:        dto.AssignedTo,
		RequestedBy:       requesterEmail,
	}
	if err := s.repo.Create(req); err != nil {
		return nil, err
	}

	return s.Get(req.ID)
}

func (s *service) Get(id uuid.UUID) (*RequestResponse, error) {
	row, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

func (s *service) List(f ListFilters) ([]RequestResponse, int, error) {
	return s.repo.List(f)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, dto UpdateRequestDTO) (*RequestResponse, error) {
	req, err := s.repo.FindEntity(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	changed := false
	if dto.Title != nil {
		req.Title = *dto.Title
		changed = true
	}
	if dto.Description != nil {
		req.Description = *dto.Description
		changed = true
	}
	if dto.Priority != nil {
		req.Priority = *dto.Priority
		changed = true
	}
	if dto.AssignedTo != nil {
		req.AssignedTo = *dto.AssignedTo
		changed = true
	}
	if dto.Status != nil {
		req.Status = *dto.Status
		changed = true
	}
	if !changed {
		return nil, ErrNoFields
	}

	if err := s.repo.Update(req); err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Validate records per-link verdicts and derives the request status:
// every link approved means approved, none means rejected, anything in
// between is partially approved.
func (s *service) Validate(ctx context.Context, id uuid.UUID, validatorEmail string, dto ValidateRequestDTO) (*RequestResponse, error) {
	req, err := s.repo.FindEntity(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	status, approved := deriveStatus(dto.ValidationPerLink)

	now := time.Now()
	req.Status = status
	req.ValidationPerLink = mustJSON(dto.ValidationPerLink)
	req.ApprovedLinksCount = approved
	req.FinalObservations = dto.FinalObservations
	req.ValidatedBy = validatorEmail
	req.ValidatedAt = &now

	if err := s.repo.Update(req); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, req, "validation",
		fmt.Sprintf("Status: %s. Links: %d/%d", status, approved, len(dto.ValidationPerLink)), validatorEmail)

	return s.Get(id)
}

// Correct resubmits a rejected or partially approved batch: the request
// goes back to pending with fresh URLs and the previous verdicts wiped.
func (s *service) Correct(ctx context.Context, id uuid.UUID, userEmail string, dto CorrectRequestDTO) (*RequestResponse, error) {
	req, err := s.repo.FindEntity(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	req.Status = StatusPending
	req.ContentURLs = mustJSON(dto.ContentURLs)
	req.ValidationPerLink = nil
	req.ReturnCount++

	if err := s.repo.Update(req); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, req, "correction", "Resubmitted after partial/rejected status", userEmail)

	return s.Get(id)
}

func (s *service) Revert(ctx context.Context, id uuid.UUID, adminEmail string) (*RequestResponse, error) {
	req, err := s.repo.FindEntity(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrNotFound
	}

	req.Status = StatusPending
	req.ValidationPerLink = nil

	if err := s.repo.Update(req); err != nil {
		return nil, err
	}

	s.appendHistory(ctx, req, "revert", "Admin reverted status to pending", adminEmail)

	return s.Get(id)
}

func (s *service) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func (s *service) Stats(f StatsFilters) (*StatsResponse, error) {
	return s.repo.Stats(f)
}

// appendHistory adds an audit entry to the request. Failures are logged
// and swallowed so the main flow never breaks on the audit trail.
func (s *service) appendHistory(ctx context.Context, req *ValidationRequest, action, details, userEmail string) {
	log := config.WithContext(ctx)

	var history []HistoryEntry
	if len(req.History) > 0 {
		if err := json.Unmarshal(req.History, &history); err != nil {
			log.WithError(err).Warn("Discarding unreadable request history")
			history = nil
		}
	}

	history = append(history, HistoryEntry{
		Timestamp: time.Now(),
		Action:    action,
		Details:   details,
		User:      userEmail,
	})

	raw, err := json.Marshal(history)
	if err != nil {
		log.WithError(err).Warn("Failed to encode request history")
		return
	}
	req.History = raw

	if err := s.repo.Update(req); err != nil {
		log.WithError(err).Warn("Failed to persist request history")
	}
}

func deriveStatus(links []LinkValidation) (Status, int) {
	approved := 0
	for _, link := range links {
		if link.Status == "approved" || link.Approved {
			approved++
		}
	}

	total := len(links)
	switch {
	case approved == total:
		return StatusApproved, approved
	case approved == 0:
		return StatusRejected, approved
	default:
		return StatusPartiallyApproved, approved
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("[]")
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
