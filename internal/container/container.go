package container

import (
	"context"
	"log"
	"os"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/config"
	"github.com/grupoclick/clickcheck/internal/goal"
	"github.com/grupoclick/clickcheck/internal/invite"
	"github.com/grupoclick/clickcheck/internal/request"
	"github.com/grupoclick/clickcheck/internal/upload"
	"github.com/grupoclick/clickcheck/internal/user"
	validationpackage "github.com/grupoclick/clickcheck/internal/validation_package"
)

type Container struct {
	UserContainer    *user.UserContainer
	PackageContainer *validationpackage.Container
	RequestContainer *request.Container
	GoalContainer    *goal.Container
	InviteContainer  *invite.Container
	UploadContainer  *upload.Container
}

func New() *Container {
	config.Init()
	auth.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.Migrate(context.Background()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// The invite container is built on a bare user repository so its
	// service can feed invited admin levels back into the login flow.
	inviteContainer := invite.NewContainer(config.DB, user.NewRepository(config.DB))
	userContainer := user.NewUserContainer(config.DB, inviteContainer.Service)
	packageContainer := validationpackage.NewContainer(config.DB, userContainer.Repo)
	requestContainer := request.NewContainer(config.DB, userContainer.Repo, packageContainer.Repo)
	goalContainer := goal.NewContainer(config.DB, userContainer.Repo, requestContainer.Repo)
	uploadContainer := upload.NewContainer()

	return &Container{
		UserContainer:    userContainer,
		PackageContainer: packageContainer,
		RequestContainer: requestContainer,
		GoalContainer:    goalContainer,
		InviteContainer:  inviteContainer,
		UploadContainer:  uploadContainer,
	}
}
