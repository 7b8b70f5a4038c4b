package generator

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/balzmuri/cvgen/internal/metrics"
)

// Compiler runs pdflatex against a staged working directory.
type Compiler struct {
	bin     string
	timeout time.Duration
	logger  *logger.Logger
}

// NewCompiler creates a Compiler for the given pdflatex binary and per-run
// timeout.
func NewCompiler(bin string, timeout time.Duration, log *logger.Logger) *Compiler {
	return &Compiler{
		bin:     bin,
		timeout: timeout,
		logger:  log.WithComponent("compiler"),
	}
}

// Compile invokes pdflatex on texPath with the working directory pinned as
// the output directory and the jobname derived from outputFilename. It
// returns the path of the produced PDF inside workDir.
//
// pdflatex exits non-zero on recoverable warnings, so success is judged by
// the presence of the expected artifact, not the exit code. The run is
// bounded by the compiler timeout; on expiry the subprocess is killed and
// ErrCompilationTimeout is returned.
func (c *Compiler) Compile(ctx context.Context, texPath, outputFilename, workDir string) (string, error) {
	jobname := strings.TrimSuffix(outputFilename, filepath.Ext(outputFilename))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.bin,
		"-interaction=nonstopmode",
		"-output-directory="+workDir,
		"-jobname="+jobname,
		texPath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.WithContext(ctx).Info("running pdflatex",
		"jobname", jobname,
		"work_dir", workDir)

	start := time.Now()
	runErr := cmd.Run()
	metrics.CompileDuration.Observe(time.Since(start).Seconds())

	if ctx.Err() == context.DeadlineExceeded {
		return "", ErrCompilationTimeout
	}

	pdfPath := filepath.Join(workDir, jobname+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		c.logger.WithContext(ctx).Error("pdflatex produced no artifact",
			"error", runErr,
			"stdout", tail(stdout.String(), 2048),
			"stderr", tail(stderr.String(), 2048))
		return "", &CompilationError{
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    runErr,
		}
	}

	return pdfPath, nil
}

// tail returns at most the last n bytes of s. pdflatex logs are verbose
// and only the end carries the failing context.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
