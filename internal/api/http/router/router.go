package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dkarpov/account-service/internal/api/http/handler"
	"github.com/dkarpov/account-service/internal/api/http/middleware"
	"github.com/dkarpov/account-service/internal/logger"
	"github.com/dkarpov/account-service/internal/model"
)

// Router assembles HTTP handlers, middleware and the route table.
type Router struct {
	authHandler  *handler.Auth
	userHandler  *handler.User
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	userService handler.UserService,
	tokens middleware.TokenVerifier,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authHandler:  handler.NewAuth(authService, logger),
		userHandler:  handler.NewUser(userService, contextManager, logger),
		authenticate: middleware.NewAuthenticate(tokens, contextManager, logger),
		logging:      middleware.NewLogging(logger),
	}
}

// Register builds the route table. The /users/{id} variants are served
// without authentication, matching the public API contract.
func (r *Router) Register() http.Handler {
	mux := chi.NewRouter()

	mux.Use(r.logging.Handle)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	mux.Get("/", handler.Root)
	mux.Post("/users", r.authHandler.Register)
	mux.Post("/users/login", r.authHandler.Login)

	mux.Get("/users/{id}", r.userHandler.GetByID)
	mux.Put("/users/{id}", r.userHandler.UpdateByID)
	mux.Delete("/users/{id}", r.userHandler.DeleteByID)

	mux.Group(func(g chi.Router) {
		g.Use(r.authenticate.Handle)
		g.Get("/profile", r.userHandler.GetProfile)
		g.Put("/profile", r.userHandler.UpdateProfile)
		g.Delete("/profile", r.userHandler.DeleteProfile)
		g.Get("/users", r.userHandler.List)
	})

	return mux
}
