package user

import "gorm.io/gorm"

type UserContainer struct {
	Repo    UserRepository
	Service Service
	Handler *Handler
}

func NewUserContainer(db *gorm.DB, invites InviteRedeemer) *UserContainer {
	repo := NewRepository(db)
	service := NewService(repo, invites)
	handler := NewHandler(service)

	return &UserContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
