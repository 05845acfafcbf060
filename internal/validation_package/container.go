package validationpackage

import (
	"gorm.io/gorm"

	"github.com/grupoclick/clickcheck/internal/user"
)

type Container struct {
	Repo    Repository
	Service Service
	Handler *Handler
}

func NewContainer(db *gorm.DB, users user.UserRepository) *Container {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service, users)

	return &Container{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
