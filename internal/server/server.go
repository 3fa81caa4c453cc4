// Package server serves the scene page over HTTP.
//
// A single loop goroutine owns the navigation controller and the page.
// Handlers never touch either directly: they submit closures to the loop
// and wait for the reply.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/config"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/dataset"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/navigation"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/page"
)

const shutdownTimeout = 10 * time.Second

var errStopped = errors.New("scene loop stopped")

// Config holds the settings the server needs
type Config struct {
	Port int
	Year string
	TopN int
	Web  config.WebConfig
}

// command runs on the loop goroutine
type command struct {
	fn   func(c *navigation.Controller, p *page.Page) error
	done chan error
}

// Server is the HTTP front of one scene session
type Server struct {
	httpServer *http.Server
	cfg        Config
	loader     *dataset.Loader
	page       *page.Page
	ctrl       *navigation.Controller
	cmds       chan command
	stopped    chan struct{}
	log        *pterm.Logger
}

// New creates a server that renders the records delivered by loader
func New(cfg Config, loader *dataset.Loader, logger *pterm.Logger) (*Server, error) {
	p, err := page.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build page: %w", err)
	}

	s := &Server{
		cfg:     cfg,
		loader:  loader,
		page:    p,
		ctrl:    navigation.New(p, cfg.Year, cfg.TopN),
		cmds:    make(chan command),
		stopped: make(chan struct{}),
		log:     logger,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Public endpoints
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /next", s.handleNext)
	mux.HandleFunc("POST /prev", s.handlePrev)
	mux.HandleFunc("POST /job", s.handleSelectJob)

	// Protected when WEB_USERNAME/WEB_PASSWORD are set
	mux.HandleFunc("GET /api/state", s.basicAuth(s.handleAPIState))

	return s.withLogging(mux)
}

// Run starts the dataset load, the scene loop and the listener, and blocks
// until ctx is cancelled or one of them fails.
func (s *Server) Run(ctx context.Context) error {
	s.loader.Start(ctx)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.loop(ctx)
	})

	g.Go(func() error {
		if s.cfg.Web.AuthEnabled() {
			s.log.Info("server listening", s.log.Args("addr", s.httpServer.Addr, "api_auth", "enabled"))
		} else {
			s.log.Warn("server listening, API is public", s.log.Args("addr", s.httpServer.Addr, "hint", "set WEB_USERNAME/WEB_PASSWORD to protect /api"))
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// loop owns the controller and the page until ctx is done
func (s *Server) loop(ctx context.Context) error {
	defer close(s.stopped)

	ready := s.loader.Ready()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ready:
			// nil channel: the load outcome is delivered once
			ready = nil
			s.deliver()
		case cmd := <-s.cmds:
			cmd.done <- cmd.fn(s.ctrl, s.page)
		}
	}
}

func (s *Server) deliver() {
	records, err := s.loader.Result()
	if err != nil {
		s.log.Error("dataset load failed", s.log.Args("error", err))
		s.ctrl.Fail(err)
		return
	}
	if err := s.ctrl.Start(records); err != nil {
		s.log.Error("first scene failed to render", s.log.Args("error", err))
		s.ctrl.Fail(err)
		return
	}
	s.log.Info("dataset ready", s.log.Args("records", len(records), "scene", s.ctrl.Current().String()))
}

// do runs fn on the loop goroutine and waits for its result
func (s *Server) do(ctx context.Context, fn func(c *navigation.Controller, p *page.Page) error) error {
	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case s.cmds <- cmd:
	case <-s.stopped:
		return errStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
