package generator

import (
	"errors"
	"fmt"
)

// ErrCompilationTimeout is returned when pdflatex exceeds the configured
// compile timeout. The subprocess is killed before this is returned.
var ErrCompilationTimeout = errors.New("LaTeX compilation timed out")

// ValidationError reports bad or missing user input. Always maps to a 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// TemplateNotFoundError reports a template name with no matching .tex file
// in the templates root.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("Template '%s' not found", e.Name)
}

// TemplateLoadError wraps an I/O failure while reading a template file.
type TemplateLoadError struct {
	Path string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("Failed to read template: %v", e.Err)
}

func (e *TemplateLoadError) Unwrap() error {
	return e.Err
}

// CompilationError reports a pdflatex run that finished without producing
// the expected PDF. The exit code alone is not the signal: pdflatex exits
// non-zero on warnings while still writing output, so absence of the
// artifact is what fails the run. Captured output is kept for diagnostics.
type CompilationError struct {
	Stdout string
	Stderr string
	Err    error
}

func (e *CompilationError) Error() string {
	return "PDF file was not generated"
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// ArtifactTooLargeError reports a generated PDF above the size ceiling.
type ArtifactTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *ArtifactTooLargeError) Error() string {
	return "Generated PDF exceeds size limit"
}

// IsDomainError reports whether err is one of the expected generation
// failures. Domain errors surface to the caller with their message and a
// client-error status; anything else is an internal fault and gets a
// generic message.
func IsDomainError(err error) bool {
	var (
		validationErr *ValidationError
		notFoundErr   *TemplateNotFoundError
		loadErr       *TemplateLoadError
		compileErr    *CompilationError
		tooLargeErr   *ArtifactTooLargeError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &notFoundErr),
		errors.As(err, &loadErr),
		errors.As(err, &compileErr),
		errors.As(err, &tooLargeErr),
		errors.Is(err, ErrCompilationTimeout):
		return true
	}
	return false
}
