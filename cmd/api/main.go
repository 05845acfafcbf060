package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/grupoclick/clickcheck/internal/config"
	"github.com/grupoclick/clickcheck/internal/container"
	"github.com/grupoclick/clickcheck/internal/router"
)

func main() {
	_ = godotenv.Load()

	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:    c.UserContainer.Handler,
		PackageHandler: c.PackageContainer.Handler,
		RequestHandler: c.RequestContainer.Handler,
		GoalHandler:    c.GoalContainer.Handler,
		InviteHandler:  c.InviteContainer.Handler,
		UploadHandler:  c.UploadContainer.Handler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log := config.Logger()
	log.WithField("port", port).Info("starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
