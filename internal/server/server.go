// Package server assembles the HTTP handler: route table, middleware, health and metrics.
package server

import (
	"net/http"

	"github.com/diewo77/recipe-api/internal/handlers"
	"github.com/diewo77/recipe-api/internal/httpx"
	"github.com/diewo77/recipe-api/internal/ratelimit"
	"github.com/diewo77/recipe-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options configures New. Zero values are valid.
type Options struct {
	Logger *zap.Logger
	// Limiter throttles the account endpoints per client IP. Nil disables throttling.
	Limiter     *ratelimit.Limiter
	RepoOptions []repository.Option
}

// Server is the application http.Handler.
type Server struct {
	mux     *http.ServeMux
	db      *gorm.DB
	repo    *repository.Repository
	log     *zap.Logger
	limiter *ratelimit.Limiter

	users       *handlers.UserHandler
	recipes     *handlers.RecipeHandler
	tags        *handlers.TagHandler
	ingredients *handlers.IngredientHandler
}

func New(db *gorm.DB, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	repo := repository.New(db, append([]repository.Option{repository.WithLogger(log)}, opts.RepoOptions...)...)
	s := &Server{
		mux:         http.NewServeMux(),
		db:          db,
		repo:        repo,
		log:         log,
		limiter:     opts.Limiter,
		users:       handlers.NewUserHandler(repo, log),
		recipes:     handlers.NewRecipeHandler(repo, log),
		tags:        handlers.NewTagHandler(repo, log),
		ingredients: handlers.NewIngredientHandler(repo, log),
	}
	s.setupRoutes()
	return s
}

// Repository exposes the stores built for this server.
func (s *Server) Repository() *repository.Repository { return s.repo }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.requestID(s.logging(s.recoverPanics(s.mux))).ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// healthz also checks the database.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "ok"})
}
