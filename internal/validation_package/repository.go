package validationpackage

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(p *Package) error
	FindByID(id uuid.UUID) (*Package, error)
	List(activeOnly bool) ([]Package, error)
	Update(p *Package) error
	Delete(id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(p *Package) error {
	return r.db.Create(p).Error
}

func (r *repository) FindByID(id uuid.UUID) (*Package, error) {
	var p Package
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(activeOnly bool) ([]Package, error) {
	q := r.db.Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var packages []Package
	if err := q.Find(&packages).Error; err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *repository) Update(p *Package) error {
	return r.db.Save(p).Error
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Package{}, "id = ?", id).Error
}
