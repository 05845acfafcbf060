package invite

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(i *Invite) error
	FindByToken(token string) (*Invite, error)
	FindActiveByEmail(email string) (*Invite, error)
	MarkUsed(id uuid.UUID, usedAt time.Time) error
	Delete(id uuid.UUID) error
	ListAll() ([]Invite, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(i *Invite) error {
	return r.db.Create(i).Error
}

func (r *repository) FindByToken(token string) (*Invite, error) {
	var i Invite
	if err := r.db.First(&i, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *repository) FindActiveByEmail(email string) (*Invite, error) {
	var i Invite
	err := r.db.
		Where("LOWER(email) = LOWER(?) AND used_at IS NULL AND expires_at > NOW()", email).
		First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &i, nil
}

func (r *repository) MarkUsed(id uuid.UUID, usedAt time.Time) error {
	return r.db.Model(&Invite{}).
		Where("id = ?", id).
		Update("used_at", usedAt).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Invite{}, "id = ?", id).Error
}

func (r *repository) ListAll() ([]Invite, error) {
	var invites []Invite
	if err := r.db.Order("created_at DESC").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}
