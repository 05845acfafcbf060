package goal

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/config"
	"github.com/grupoclick/clickcheck/internal/request"
	"github.com/grupoclick/clickcheck/internal/user"
)

// defaultMaxDepth bounds hierarchy walks; override with
// GOAL_HIERARCHY_MAX_DEPTH.
const defaultMaxDepth = 10

var (
	ErrInvalidMonth = errors.New("month must be in YYYY-MM format")
	ErrMissingField = errors.New("user_id and package_id are required")
	ErrNotFound     = errors.New("goal not found")
)

type Service interface {
	Progress(ctx context.Context, month string) ([]*UserProgress, error)
	List(month string, userID *uuid.UUID) ([]GoalRow, error)
	Create(createdBy uuid.UUID, dto CreateGoalDTO) (*Goal, error)
	UpdateTarget(id uuid.UUID, target int) error
	Delete(id uuid.UUID) error
	TeamMembers(managerID uuid.UUID) ([]user.User, error)
}

type service struct {
	repo     Repository
	users    user.UserRepository
	requests request.Repository
	maxDepth int
}

func NewService(repo Repository, users user.UserRepository, requests request.Repository) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		maxDepth: hierarchyMaxDepth(),
	}
}

func hierarchyMaxDepth() int {
	raw := os.Getenv("GOAL_HIERARCHY_MAX_DEPTH")
	if raw == "" {
		return defaultMaxDepth
	}
	depth, err := strconv.Atoi(raw)
	if err != nil || depth < 1 {
		return defaultMaxDepth
	}
	return depth
}

// Progress computes the month's ranked goal progress. The user
// directory is loaded once; a missing manager_id column or a failed
// directory load degrades to a flat ranking instead of failing the
// request.
func (s *service) Progress(ctx context.Context, month string) ([]*UserProgress, error) {
	log := config.WithContext(ctx)

	if month == "" {
		month = time.Now().Format("2006-01")
	}
	start, end, err := monthRange(month)
	if err != nil {
		return nil, ErrInvalidMonth
	}

	hasManager := s.users.HasManagerColumn()

	var directory []user.User
	if hasManager {
		directory, err = s.users.ListDirectory()
		if err != nil {
			log.WithError(err).Warn("failed to load user directory, computing flat progress")
			directory = nil
			hasManager = false
		}
	}
	dir := BuildDirectory(directory)
	res := NewResolver(dir, s.maxDepth, log)

	rows, err := s.repo.ListRows(month, nil, hasManager)
	if err != nil {
		return nil, err
	}

	counts, err := s.requests.AchievedCounts(start, end)
	if err != nil {
		return nil, err
	}

	return BuildProgress(rows, CountsIndex(counts), dir, res), nil
}

func (s *service) List(month string, userID *uuid.UUID) ([]GoalRow, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	return s.repo.ListRows(month, userID, s.users.HasManagerColumn())
}

func (s *service) Create(createdBy uuid.UUID, dto CreateGoalDTO) (*Goal, error) {
	if dto.UserID == uuid.Nil || dto.PackageID == uuid.Nil {
		return nil, ErrMissingField
	}
	month := dto.Month
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, _, err := monthRange(month); err != nil {
		return nil, ErrInvalidMonth
	}

	target := 0
	if dto.TargetCount != nil {
		target = *dto.TargetCount
	}

	g := &Goal{
		UserID:      dto.UserID,
		PackageID:   dto.PackageID,
		TargetCount: target,
		Month:       month,
		CreatedBy:   &createdBy,
	}
	if err := s.repo.Upsert(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) UpdateTarget(id uuid.UUID, target int) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.UpdateTarget(id, target)
}

func (s *service) Delete(id uuid.UUID) error {
	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

func (s *service) TeamMembers(managerID uuid.UUID) ([]user.User, error) {
	return s.users.ListDirectReports(managerID)
}

// monthRange converts a YYYY-MM month into its inclusive timestamp
// window, first second to last second.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end, nil
}
