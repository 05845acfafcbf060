package request

import (
	"gorm.io/gorm"

	"github.com/grupoclick/clickcheck/internal/user"
	validationpackage "github.com/grupoclick/clickcheck/internal/validation_package"
)

type Container struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewContainer(db *gorm.DB, users user.UserRepository, packages validationpackage.Repository) *Container {
	repo := NewRepository(db)
	service := NewService(repo, packages)
	handler := NewHandler(service, users)

	return &Container{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
