package stubserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/smazurs/peerpoint/internal/logging"
)

// Options configures the stub server.
type Options struct {
	Addr      string
	JWTSecret []byte
	TokenTTL  time.Duration
}

func (o *Options) defaults() {
	if o.Addr == "" {
		o.Addr = ":8080"
	}
	if len(o.JWTSecret) == 0 {
		// dev-only secret; the stub never faces the internet
		o.JWTSecret = []byte("peerpoint-dev-secret")
	}
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
}

type Server struct {
	opts  Options
	store *Store
	log   logging.Logger
	now   func() time.Time
}

// New builds a stub server with the sample dataset loaded.
func New(opts Options, log logging.Logger) (*Server, error) {
	opts.defaults()

	store := NewStore()
	if err := store.Seed(); err != nil {
		return nil, err
	}

	return &Server{opts: opts, store: store, log: log, now: time.Now}, nil
}

// Router assembles the HTTP API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.handlePing)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/register", s.handleRegister)
			r.Post("/forgot", s.handleForgot)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authRequired)

			r.Put("/profile", s.handleUpdateProfile)

			r.Route("/doubts", func(r chi.Router) {
				r.Get("/", s.handleListDoubts)
				r.Post("/", s.handleCreateDoubt)
				r.Get("/{id}", s.handleGetDoubt)
				r.Post("/{id}/answers", s.handlePostAnswer)
				r.Post("/{id}/answers/{answerID}/accept", s.handleAcceptAnswer)
				r.Post("/{id}/answers/{answerID}/upvote", s.handleUpvoteAnswer)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", s.handleListTeams)
				r.Post("/", s.handleCreateTeam)
				r.Get("/suggestions", s.handleSuggestTeammates)
			})

			r.Get("/suggestions", s.handleStudySuggestions)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.opts.Addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "stub server listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
