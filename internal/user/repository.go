package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *User) error
	FindByID(id uuid.UUID) (*User, error)
	FindByEmail(email string) (*User, error)
	Update(u *User) error
	Delete(id uuid.UUID) error
	ListAll() ([]User, error)
	ListDirectory() ([]User, error)
	ListDirectReports(managerID uuid.UUID) ([]User, error)
	HasManagerColumn() bool
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &repository{db: db}
}

func (r *repository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *repository) FindByID(id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) Update(u *User) error {
	return r.db.Save(u).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&User{}, "id = ?", id).Error
}

func (r *repository) ListAll() ([]User, error) {
	var users []User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListDirectory returns every user ordered by name, the snapshot the
// goal progress engine walks.
func (r *repository) ListDirectory() ([]User, error) {
	var users []User
	if err := r.db.Order("full_name, email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) ListDirectReports(managerID uuid.UUID) ([]User, error) {
	var users []User
	if err := r.db.
		Where("manager_id = ?", managerID).
		Order("full_name").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// HasManagerColumn probes for the manager_id column so the progress
// engine can degrade to a flat directory on older schemas.
func (r *repository) HasManagerColumn() bool {
	return r.db.Migrator().HasColumn(&User{}, "manager_id")
}
