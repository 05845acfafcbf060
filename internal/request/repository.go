package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(req *ValidationRequest) error
	FindByID(id uuid.UUID) (*RequestResponse, error)
	FindEntity(id uuid.UUID) (*ValidationRequest, error)
	Update(req *ValidationRequest) error
	Delete(id uuid.UUID) error
	List(f ListFilters) ([]RequestResponse, int, error)
	Stats(f StatsFilters) (*StatsResponse, error)
	AchievedCounts(start, end time.Time) ([]AchievedCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const joinedSelect = "r.*, COALESCE(req.full_name, '') AS requester_name, COALESCE(ass.full_name, '') AS assigned_name"

func (r *repository) joined() *gorm.DB {
	return r.db.Table("validation_requests r").
		Joins("LEFT JOIN users req ON LOWER(r.requested_by) = LOWER(req.email)").
		Joins("LEFT JOIN users ass ON LOWER(r.assigned_to) = LOWER(ass.email)")
}

func (r *repository) Create(req *ValidationRequest) error {
	return r.db.Create(req).Error
}

func (r *repository) FindByID(id uuid.UUID) (*RequestResponse, error) {
	var row RequestResponse
	err := r.joined().
		Select(joinedSelect).
		Where("r.id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindEntity(id uuid.UUID) (*ValidationRequest, error) {
	var req ValidationRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *repository) Update(req *ValidationRequest) error {
	return r.db.Save(req).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&ValidationRequest{}, "id = ?", id).Error
}

func (r *repository) applyFilters(q *gorm.DB, f ListFilters) *gorm.DB {
	switch f.Tab {
	case "received":
		q = q.Where("LOWER(r.assigned_to) = LOWER(?) AND r.status IN ?", f.CallerEmail, OpenStatuses)
	case "mine":
		q = q.Where("LOWER(r.requested_by) = LOWER(?)", f.CallerEmail)
	case "partial":
		q = q.Where("LOWER(r.requested_by) = LOWER(?) AND r.status = ?", f.CallerEmail, StatusPartiallyApproved)
	case "finished":
		if f.ViewAll {
			q = q.Where("r.status IN ?", []Status{StatusApproved, StatusRejected, StatusPartiallyApproved})
		} else {
			q = q.Where("(LOWER(r.requested_by) = LOWER(?) OR LOWER(r.assigned_to) = LOWER(?)) AND r.status IN ?",
				f.CallerEmail, f.CallerEmail, []Status{StatusApproved, StatusRejected, StatusPartiallyApproved})
		}
	default:
		if !f.ViewAll {
			q = q.Where("LOWER(r.requested_by) = LOWER(?) OR LOWER(r.assigned_to) = LOWER(?)", f.CallerEmail, f.CallerEmail)
		}
	}

	if f.Search != "" {
		q = q.Where("r.title ILIKE ?", "%"+f.Search+"%")
	}
	if f.RequestedBy != "" {
		q = q.Where("LOWER(r.requested_by) = LOWER(?)", f.RequestedBy)
	}
	if f.AssignedTo != "" {
		q = q.Where("LOWER(r.assigned_to) = LOWER(?)", f.AssignedTo)
	}
	if f.PackageID != nil {
		q = q.Where("r.package_id = ?", *f.PackageID)
	}
	if f.StartDate != "" {
		q = q.Where("r.created_at >= ?", f.StartDate+" 00:00:00")
	}
	if f.EndDate != "" {
		q = q.Where("r.created_at <= ?", f.EndDate+" 23:59:59")
	}

	return q
}

func (r *repository) List(f ListFilters) ([]RequestResponse, int, error) {
	var total int64
	countQ := r.applyFilters(r.joined(), f)
	if err := countQ.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.applyFilters(r.joined(), f).
		Select(joinedSelect).
		Order("r.created_at DESC")

	if f.Paginate {
		offset := (f.Page - 1) * f.Limit
		q = q.Limit(f.Limit).Offset(offset)
	}

	var rows []RequestResponse
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, int(total), nil
}

func (r *repository) Stats(f StatsFilters) (*StatsResponse, error) {
	q := r.db.Table("validation_requests r")

	if f.StartDate != "" {
		q = q.Where("r.created_at >= ?", f.StartDate+" 00:00:00")
	}
	if f.EndDate != "" {
		q = q.Where("r.created_at <= ?", f.EndDate+" 23:59:59")
	}
	if !f.ViewAll {
		q = q.Where("LOWER(r.requested_by) = LOWER(?) OR LOWER(r.assigned_to) = LOWER(?)", f.CallerEmail, f.CallerEmail)
	}

	var stats StatsResponse
	err := q.Select(`
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN r.status IN ('pending', 'in_review') THEN 1 ELSE 0 END), 0) AS pending,
		COALESCE(SUM(CASE WHEN r.status IN ('approved', 'partially_approved') THEN 1 ELSE 0 END), 0) AS approved,
		COALESCE(SUM(CASE WHEN r.status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// AchievedCounts sums approved link counts per (requester email, package)
// over the window. Submitted totals ride along for display purposes.
func (r *repository) AchievedCounts(start, end time.Time) ([]AchievedCount, error) {
	var counts []AchievedCount
	err := r.db.Raw(`
		SELECT r.requested_by,
		       r.package_id,
		       COALESCE(SUM(COALESCE(r.approved_links_count, 0)), 0) AS approved,
		       COALESCE(SUM(COALESCE(jsonb_array_length(r.content_urls), 0)), 0) AS submitted
		FROM validation_requests r
		WHERE r.created_at BETWEEN ? AND ?
		  AND r.status IN ('approved', 'partially_approved')
		GROUP BY r.requested_by, r.package_id`,
		start, end).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
