package validationpackage

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var (
	ErrNotFound     = errors.New("package not found")
	ErrMissingField = errors.New("name and type are required")
)

type Service interface {
	Create(createdByEmail string, dto CreatePackageDTO) (*Package, error)
	Get(id uuid.UUID) (*Package, error)
	List(activeOnly bool) ([]Package, error)
	Update(id uuid.UUID, dto UpdatePackageDTO) (*Package, error)
	Delete(id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(createdByEmail string, dto CreatePackageDTO) (*Package, error) {
	if dto.Name == "" || dto.Type == "" {
		return nil, ErrMissingField
	}

	active := true
	if dto.Active != nil {
		active = *dto.Active
	}

	criteria := datatypes.JSON("[]")
	if len(dto.Criteria) > 0 {
		criteria = datatypes.JSON(dto.Criteria)
	}

	p := &Package{
		Name:           dto.Name,
		Description:    dto.Description,
		Type:           dto.Type,
		Criteria:       criteria,
		Active:         active,
		CreatedByEmail: createdByEmail,
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(id uuid.UUID) (*Package, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) List(activeOnly bool) ([]Package, error) {
	return s.repo.List(activeOnly)
}

func (s *service) Update(id uuid.UUID, dto UpdatePackageDTO) (*Package, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.Type != nil {
		p.Type = *dto.Type
	}
	if len(dto.Criteria) > 0 {
		p.Criteria = datatypes.JSON(dto.Criteria)
	}
	if dto.Active != nil {
		p.Active = *dto.Active
	}

	if err := s.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}
