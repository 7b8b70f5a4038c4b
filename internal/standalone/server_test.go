package standalone

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/balzmuri/cvgen/internal/config"
	"github.com/balzmuri/cvgen/internal/generator"
	"github.com/balzmuri/cvgen/internal/logger"
)

const testTemplate = `\documentclass{article}
\newcommand{\cvstyle}{modern}
\newcommand{\company}{}
\begin{document}
{\Large\color{text} Python Developer}
\end{document}
`

const fakeCompiler = `#!/bin/sh
dir=""; job=""
for arg in "$@"; do
  case "$arg" in
    -output-directory=*) dir="${arg#-output-directory=}" ;;
    -jobname=*) job="${arg#-jobname=}" ;;
  esac
done
printf '%%PDF-1.4 fake' > "$dir/$job.pdf"
exit 0
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	templatesDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(templatesDir, "resume_balz.tex"), []byte(testTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	compilerBin := filepath.Join(t.TempDir(), "fakelatex")
	if err := os.WriteFile(compilerBin, []byte(fakeCompiler), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		TemplatesDir:          templatesDir,
		DefaultTemplate:       "resume_balz",
		ArtifactPrefix:        "cv_balz",
		CompilerBin:           compilerBin,
		CompileTimeoutSeconds: 10,
		MaxArtifactSizeMB:     50,
	}
	log := logger.New(logger.Config{Level: slog.LevelError, Format: "text"})
	return New(cfg, generator.NewService(cfg, log), log)
}

func TestHandleGenerateCV(t *testing.T) {
	srv := newTestServer(t)
	router := srv.Router()

	body := `{"title": "Senior Developer", "style": "elegant", "company": "ACME"}`
	req := httptest.NewRequest(http.MethodPost, "/generate-cv", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "cv_balz_Senior_Developer_") {
		t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if w.Body.Len() == 0 {
		t.Error("response body is empty")
	}
}

func TestHandleGenerateCVEmptyBodyUsesDefaults(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-cv", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "cv_balz_CV_") {
		t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
	}
}

func TestHandleGenerateCVInvalidJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-cv", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON in request body") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleGenerateCVValidationError(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/generate-cv", strings.NewReader(`{"title": "bad;title"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Title contains invalid characters") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status = %q", resp["status"])
	}
	if resp["service"] != "CV Generation Service (Standalone)" {
		t.Errorf("service = %q", resp["service"])
	}
}

func TestHandleAvailableTemplates(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/available-templates", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Templates []string `json:"templates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Templates) != 1 || resp.Templates[0] != "resume_balz" {
		t.Errorf("templates = %v", resp.Templates)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{"/nope", "/generate-cv/extra"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", target, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Endpoint not found") {
			t.Errorf("GET %s body = %s", target, w.Body.String())
		}
	}
}

func TestWrongMethodReturns404(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/generate-cv", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/generate-cv", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", origin)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, http.MethodPost) {
		t.Errorf("Access-Control-Allow-Methods = %q", methods)
	}
}
