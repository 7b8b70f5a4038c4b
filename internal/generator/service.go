package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/balzmuri/cvgen/internal/config"
	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/balzmuri/cvgen/internal/metrics"
	"golang.org/x/sync/semaphore"
)

// Service is the generation orchestrator. One call walks validate → locate
// template → prepare working directory → render → stage assets → compile →
// deliver, and removes the working directory on every exit path. Requests
// never share state: each gets its own directory, so concurrent calls are
// safe by construction. The semaphore only bounds how many pdflatex
// processes run at once.
type Service struct {
	cfg      *config.Config
	logger   *logger.Logger
	compiler *Compiler
	sem      *semaphore.Weighted
	now      func() time.Time
}

// NewService wires an orchestrator from the given configuration.
func NewService(cfg *config.Config, log *logger.Logger) *Service {
	var sem *semaphore.Weighted
	if cfg.MaxConcurrentCompiles > 0 {
		sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentCompiles))
	}

	return &Service{
		cfg:      cfg,
		logger:   log.WithComponent("generator"),
		compiler: NewCompiler(cfg.CompilerBin, time.Duration(cfg.CompileTimeoutSeconds)*time.Second, log),
		sem:      sem,
		now:      time.Now,
	}
}

// Generate produces a CV and returns it in memory. This is the web delivery
// path: the artifact is size-checked against the configured ceiling before
// it is handed back.
func (s *Service) Generate(ctx context.Context, req Request) (*Artifact, error) {
	var artifact *Artifact

	err := s.run(ctx, req, func(pdfPath, filename string) error {
		data, err := os.ReadFile(pdfPath)
		if err != nil {
			return fmt.Errorf("read artifact: %w", err)
		}

		limit := int64(s.cfg.MaxArtifactSizeMB) * 1024 * 1024
		if int64(len(data)) > limit {
			return &ArtifactTooLargeError{Size: int64(len(data)), Limit: limit}
		}

		metrics.ArtifactSizeBytes.Observe(float64(len(data)))
		artifact = &Artifact{Filename: filename, Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return artifact, nil
}

// GenerateToFile produces a CV and copies it into outputDir (the configured
// output directory when empty), creating the directory if absent. This is
// the CLI delivery path; it intentionally does not apply the size ceiling.
func (s *Service) GenerateToFile(ctx context.Context, req Request, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}

	var finalPath string
	err := s.run(ctx, req, func(pdfPath, filename string) error {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}

		finalPath = filepath.Join(outputDir, filename)
		if err := copyFile(pdfPath, finalPath); err != nil {
			return fmt.Errorf("copy artifact: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return finalPath, nil
}

// ListTemplates returns the base names of all .tex files in the templates
// root. A missing root yields an empty list, not an error.
func (s *Service) ListTemplates() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.TemplatesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tex") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".tex"))
	}
	sort.Strings(names)

	return names, nil
}

// run executes the generation state machine and hands the compiled artifact
// to deliver. Validation happens before any filesystem or subprocess work;
// the working directory is removed on every path out, including panics in
// later stages, and a cleanup failure only logs a warning.
func (s *Service) run(ctx context.Context, req Request, deliver func(pdfPath, filename string) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.GenerateDuration.Observe(time.Since(start).Seconds())
		metrics.GenerateRequestsTotal.WithLabelValues(statusLabel(err)).Inc()
	}()

	log := s.logger.WithContext(ctx)

	title, err := ValidateTitle(req.Title)
	if err != nil {
		return err
	}
	style, err := ValidateStyle(req.Style)
	if err != nil {
		return err
	}
	company, err := ValidateCompany(req.Company)
	if err != nil {
		return err
	}
	if err = ValidateTemplateName(req.Template); err != nil {
		return err
	}

	templatePath := filepath.Join(s.cfg.TemplatesDir, req.Template+".tex")
	if _, statErr := os.Stat(templatePath); statErr != nil {
		err = &TemplateNotFoundError{Name: req.Template}
		return err
	}

	workDir, mkErr := os.MkdirTemp("", "cv_gen_")
	if mkErr != nil {
		err = fmt.Errorf("create working directory: %w", mkErr)
		return err
	}
	log.Debug("created working directory", "path", workDir)

	defer func() {
		if rmErr := os.RemoveAll(workDir); rmErr != nil {
			log.Warn("failed to clean up working directory",
				"path", workDir,
				"error", rmErr)
		}
	}()

	content, renderErr := RenderTemplate(templatePath, title, style, company)
	if renderErr != nil {
		err = renderErr
		return err
	}

	texPath := filepath.Join(workDir, req.Template+".tex")
	if writeErr := os.WriteFile(texPath, []byte(content), 0o644); writeErr != nil {
		err = fmt.Errorf("write rendered template: %w", writeErr)
		return err
	}

	if err = s.stageAssets(workDir); err != nil {
		return err
	}

	filename := s.artifactName(title)

	// Bound concurrent pdflatex runs. The working directory setup above is
	// cheap; the compiler is what exhausts memory under load.
	if s.sem != nil {
		if acquireErr := s.sem.Acquire(ctx, 1); acquireErr != nil {
			err = acquireErr
			return err
		}
		defer s.sem.Release(1)
	}

	pdfPath, compileErr := s.compiler.Compile(ctx, texPath, filename, workDir)
	if compileErr != nil {
		err = compileErr
		return err
	}

	if err = deliver(pdfPath, filename); err != nil {
		return err
	}

	log.Info("generated CV",
		"filename", filename,
		"style", style,
		"duration", time.Since(start))

	return nil
}

// artifactName derives the deterministic output filename: a fixed prefix,
// the title with spaces as underscores, and today's date. Two requests with
// the same title on the same day produce the same name; directory isolation
// keeps them from corrupting each other, but clients may receive identical
// filenames.
func (s *Service) artifactName(title string) string {
	titleSlug := strings.ReplaceAll(title, " ", "_")
	date := s.now().Format("02.01.2006")
	return fmt.Sprintf("%s_%s_%s.pdf", s.cfg.ArtifactPrefix, titleSlug, date)
}

// stageAssets copies the optional profile picture and the optional assets
// tree from the templates root into the working directory. pdflatex
// resolves relative asset paths against its working directory, so the
// inputs have to sit next to the rendered .tex file.
func (s *Service) stageAssets(workDir string) error {
	profilePic := filepath.Join(s.cfg.TemplatesDir, "profile_pic.jpg")
	if _, err := os.Stat(profilePic); err == nil {
		if err := copyFile(profilePic, filepath.Join(workDir, "profile_pic.jpg")); err != nil {
			return fmt.Errorf("stage profile picture: %w", err)
		}
	}

	assetsDir := filepath.Join(s.cfg.TemplatesDir, "assets")
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read assets directory: %w", err)
	}

	for _, entry := range entries {
		src := filepath.Join(assetsDir, entry.Name())
		dst := filepath.Join(workDir, entry.Name())

		if entry.IsDir() {
			if err := copyTree(src, dst); err != nil {
				return fmt.Errorf("stage assets directory %s: %w", entry.Name(), err)
			}
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("stage asset %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// statusLabel maps a generation outcome to its metrics label.
func statusLabel(err error) string {
	if err == nil {
		return "success"
	}

	var (
		validationErr *ValidationError
		notFoundErr   *TemplateNotFoundError
		loadErr       *TemplateLoadError
		compileErr    *CompilationError
		tooLargeErr   *ArtifactTooLargeError
	)

	switch {
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &notFoundErr):
		return "template_not_found"
	case errors.As(err, &loadErr):
		return "template_load_error"
	case errors.Is(err, ErrCompilationTimeout):
		return "compile_timeout"
	case errors.As(err, &compileErr):
		return "compile_failed"
	case errors.As(err, &tooLargeErr):
		return "artifact_too_large"
	}
	return "internal"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyTree copies a directory recursively, overwriting files that already
// exist at the destination.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}
