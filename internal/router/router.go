package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/goal"
	"github.com/grupoclick/clickcheck/internal/invite"
	"github.com/grupoclick/clickcheck/internal/middlewares"
	"github.com/grupoclick/clickcheck/internal/request"
	"github.com/grupoclick/clickcheck/internal/upload"
	"github.com/grupoclick/clickcheck/internal/user"
	validationpackage "github.com/grupoclick/clickcheck/internal/validation_package"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	PackageHandler *validationpackage.Handler
	RequestHandler *request.Handler
	GoalHandler    *goal.Handler
	InviteHandler  *invite.Handler
	UploadHandler  *upload.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", cfg.UserHandler.GoogleLogin)
		r.Get("/callback", cfg.UserHandler.GoogleCallback)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	// Invite verification happens before the invitee has a session.
	r.Post("/invites/verify", cfg.InviteHandler.Verify)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Get("/auth/me", cfg.UserHandler.Me)
		r.Post("/auth/refresh", cfg.UserHandler.RefreshToken)
		r.Get("/validators", cfg.UserHandler.Directory)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/packages", validationpackage.Routes(cfg.PackageHandler))
		r.Mount("/requests", request.Routes(cfg.RequestHandler))
		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/invites", invite.Routes(cfg.InviteHandler))
		r.Mount("/uploads", upload.Routes(cfg.UploadHandler))
	})

	return r
}
