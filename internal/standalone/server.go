// Package standalone is the minimal HTTP front end: the same three routes
// as the gin server on a plain chi router, for running the generator
// without the full API server.
package standalone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/balzmuri/cvgen/internal/config"
	apierrors "github.com/balzmuri/cvgen/internal/errors"
	"github.com/balzmuri/cvgen/internal/generator"
	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"
)

// Server serves the CV generation endpoints over net/http.
type Server struct {
	cfg     *config.Config
	service *generator.Service
	logger  *logger.Logger
}

// New creates a standalone Server around the given service.
func New(cfg *config.Config, service *generator.Service, log *logger.Logger) *Server {
	return &Server{
		cfg:     cfg,
		service: service,
		logger:  log.WithComponent("standalone"),
	}
}

// Router assembles the route table with permissive CORS, mirroring the gin
// front end's surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	r.Post("/generate-cv", s.handleGenerateCV)
	r.Get("/health", s.handleHealth)
	r.Get("/available-templates", s.handleAvailableTemplates)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "Endpoint not found")
	})

	return r
}

func (s *Server) handleGenerateCV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req generator.Request
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, "Invalid JSON in request body")
			return
		}
	}

	if req.Title == "" {
		req.Title = "CV"
	}
	if req.Template == "" {
		req.Template = s.cfg.DefaultTemplate
	}
	if req.Style == "" {
		req.Style = generator.DefaultStyle
	}

	ctx := logger.ContextWithRequestID(r.Context(), uuid.NewString())
	ctx = logger.ContextWithTemplate(ctx, req.Template)

	artifact, err := s.service.Generate(ctx, req)
	if err != nil {
		if generator.IsDomainError(err) {
			s.logger.WithContext(ctx).Error("CV generation failed", "error", err)
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.logger.WithContext(ctx).Error("unexpected generation error", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		s.logger.WithContext(ctx).Warn("failed to write PDF response", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "CV Generation Service (Standalone)",
	})
}

func (s *Server) handleAvailableTemplates(w http.ResponseWriter, _ *http.Request) {
	templates, err := s.service.ListTemplates()
	if err != nil {
		s.logger.Error("failed to list templates", "error", err)
		s.writeError(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string][]string{"templates": templates})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, apierrors.NewAPIError(message, nil))
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts it down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.ServerShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
