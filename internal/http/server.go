package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moviegrid/moviegrid/internal/config"
	"github.com/moviegrid/moviegrid/internal/metrics"
	"github.com/moviegrid/moviegrid/internal/persist"
	"github.com/moviegrid/moviegrid/internal/repository"
	"github.com/moviegrid/moviegrid/internal/store"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg       config.Config
	store     *store.Store
	repo      *repository.Repository
	committer persist.Committer
	metrics   *metrics.Metrics
	logger    *log.Logger
	router    chi.Router
	httpSrv   *http.Server
}

// New constructs the HTTP server with base middleware and routes. A nil
// committer falls back to writing placements through the repository.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, committer persist.Committer, m *metrics.Metrics, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = log.Default()
	}
	if committer == nil {
		committer = &persist.RepoCommitter{Repo: repo}
	}

	s := &Server{
		cfg:       cfg,
		store:     st,
		repo:      repo,
		committer: committer,
		metrics:   m,
		logger:    logger,
		router:    r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	s.router.Route("/decks", func(r chi.Router) {
		r.Get("/", s.handleListDecks)
		r.Post("/", s.handleCreateDeck)
		r.Route("/{deckID}", func(r chi.Router) {
			r.Get("/", s.handleGetDeck)
			r.Patch("/", s.handleRenameDeck)
			r.Delete("/", s.handleDeleteDeck)
			r.Get("/groups", s.handleGetGroups)
			r.Route("/movies", func(r chi.Router) {
				r.Get("/", s.handleListMovies)
				r.Post("/", s.handleAddMovie)
				r.Patch("/{movieID}", s.handleUpdateMovie)
				r.Delete("/{movieID}", s.handleRemoveMovie)
			})
		})
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
