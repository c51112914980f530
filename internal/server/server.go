package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/claude/musclemap/internal/models"
	"github.com/claude/musclemap/internal/planner"
	"github.com/claude/musclemap/internal/store"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store   store.Store
	engine  *planner.Engine
	log     *slog.Logger
	apiKey  string
	backend string
	router  chi.Router

	// mu serializes load-transform-save cycles so two in-flight mutations
	// cannot overwrite each other's writes within this process.
	mu sync.Mutex
}

// New creates a new Server with all routes configured. backend names the
// active storage backend for the environment endpoint. apiKey may be empty,
// in which case mutating endpoints are open.
func New(st store.Store, engine *planner.Engine, backend, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:   st,
		engine:  engine,
		log:     log,
		apiKey:  apiKey,
		backend: backend,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/environment", s.handleEnvironment)
		r.Get("/days", s.handleListDays)
		r.Get("/days/{date}", s.handleGetDay)

		// Mutations (API key required when configured)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))

			r.Post("/days", s.handleCreateDay)
			r.Put("/days/{date}", s.handleUpdateDay)
			r.Delete("/days/{date}", s.handleDeleteDay)

			r.Post("/workouts", s.handleCreateWorkout)
			r.Put("/workouts/{id}", s.handleUpdateWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)
			r.Post("/workouts/move", s.handleMoveWorkout)
			r.Post("/workouts/reorder", s.handleReorderWorkout)

			r.Post("/workouts/{id}/exercises", s.handleCreateExercise)
			r.Put("/workouts/{workoutID}/exercises/{id}", s.handleUpdateExercise)
			r.Delete("/workouts/{workoutID}/exercises/{id}", s.handleDeleteExercise)
			r.Post("/exercises/move", s.handleMoveExercise)
		})
	})
}

// mutate runs a load-transform-save cycle under the server mutex. Engine
// failures abort the cycle before anything is written.
func (s *Server) mutate(ctx context.Context, fn func(models.Dataset) (models.Dataset, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, err := s.store.Load(ctx)
	if err != nil {
		return &persistenceError{err}
	}
	out, err := fn(ds)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, out); err != nil {
		return &persistenceError{err}
	}
	return nil
}

// persistenceError marks storage failures so the error mapper can separate
// them from business-rule violations.
type persistenceError struct {
	err error
}

func (e *persistenceError) Error() string { return e.err.Error() }
func (e *persistenceError) Unwrap() error { return e.err }
