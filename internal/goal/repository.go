package goal

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(g *Goal) error
	FindByID(id uuid.UUID) (*Goal, error)
	UpdateTarget(id uuid.UUID, target int) error
	Delete(id uuid.UUID) error
	ListRows(month string, userID *uuid.UUID, includeManager bool) ([]GoalRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts the goal or, when one already exists for the same
// (user, package, month), overwrites its target.
func (r *repository) Upsert(g *Goal) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "package_id"},
			{Name: "month"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"target_count", "created_by", "updated_at"}),
	}).Create(g).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Goal, error) {
	var g Goal
	if err := r.db.First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *repository) UpdateTarget(id uuid.UUID, target int) error {
	return r.db.Model(&Goal{}).
		Where("id = ?", id).
		Update("target_count", target).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Goal{}, "id = ?", id).Error
}

// ListRows returns the month's goals joined with user and package
// display fields. manager_id is only selected when the column exists,
// so older schemas still serve a flat directory.
func (r *repository) ListRows(month string, userID *uuid.UUID, includeManager bool) ([]GoalRow, error) {
	selectCols := `g.id AS goal_id, g.month, g.target_count, g.created_by,
		u.id AS user_id, u.email AS user_email, u.full_name AS user_name,
		u.nickname, u.profile_picture, u.admin_level, u.profile,
		p.id AS package_id, p.name AS package_name, p.type AS package_type`
	if includeManager {
		selectCols += ", u.manager_id"
	}

	q := r.db.Table("user_goals g").
		Joins("JOIN users u ON g.user_id = u.id").
		Joins("JOIN validation_packages p ON g.package_id = p.id").
		Where("g.month = ?", month).
		Select(selectCols).
		Order("u.full_name, p.name")

	if userID != nil {
		q = q.Where("g.user_id = ?", *userID)
	}

	var rows []GoalRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
