package server

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/models"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/navigation"
	"github.com/fr4nk3nst1ner/salaryscenes/internal/page"
)

// StateResponse is the body of GET /api/state
type StateResponse struct {
	Ready       bool            `json:"ready"`
	Scene       int             `json:"scene"`
	SceneName   string          `json:"scene_name"`
	SelectedJob string          `json:"selected_job,omitempty"`
	Error       string          `json:"error,omitempty"`
	Buckets     []models.Bucket `json:"buckets"`
}

// basicAuth wraps a handler with HTTP Basic Authentication.
// Without configured credentials the handler is returned unchanged.
func (s *Server) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	username := s.cfg.Web.Username
	password := s.cfg.Web.Password
	if !s.cfg.Web.AuthEnabled() {
		return next
	}

	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(password)) == 1

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="salaryscenes"`)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}

		next(w, r)
	}
}

// statusRecorder captures the status code for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		args := s.log.Args("method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start).String())
		if rec.status >= http.StatusBadRequest {
			s.log.Warn("request failed", args)
			return
		}
		s.log.Debug("request", args)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var html string
	err := s.do(r.Context(), func(_ *navigation.Controller, p *page.Page) error {
		var err error
		html, err = p.HTML()
		return err
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, "next", func(c *navigation.Controller) (bool, error) {
		return c.Next()
	})
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, "prev", func(c *navigation.Controller) (bool, error) {
		return c.Previous()
	})
}

// navigate applies a scene step and redirects back to the page
func (s *Server) navigate(w http.ResponseWriter, r *http.Request, direction string, step func(*navigation.Controller) (bool, error)) {
	var (
		moved bool
		scene navigation.Scene
	)
	err := s.do(r.Context(), func(c *navigation.Controller, _ *page.Page) error {
		var err error
		moved, err = step(c)
		scene = c.Current()
		return err
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if moved {
		s.log.Info("scene changed", s.log.Args("direction", direction, "scene", scene.String()))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelectJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	job := strings.TrimSpace(r.PostFormValue("job"))
	if job == "" {
		http.Error(w, "missing job", http.StatusBadRequest)
		return
	}

	err := s.do(r.Context(), func(c *navigation.Controller, _ *page.Page) error {
		return c.SelectJob(job)
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.log.Info("job selected", s.log.Args("job", job))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAPIState(w http.ResponseWriter, r *http.Request) {
	var resp StateResponse
	err := s.do(r.Context(), func(c *navigation.Controller, _ *page.Page) error {
		resp = StateResponse{
			Ready:       c.Ready(),
			Scene:       int(c.Current()),
			SceneName:   c.Current().String(),
			SelectedJob: c.SelectedJob(),
			Buckets:     c.Buckets(),
		}
		if err := c.Err(); err != nil {
			resp.Error = err.Error()
		}
		if resp.Buckets == nil {
			resp.Buckets = []models.Bucket{}
		}
		return nil
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", s.log.Args("error", err))
	}
}

// errorResponse writes err as plain text with its mapped status
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), HTTPStatus(err))
}
