// Package janitor prunes old PDFs from the output directory on a cron
// schedule. The CLI delivery path accumulates artifacts forever otherwise.
package janitor

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/robfig/cron/v3"
)

// Janitor removes generated PDFs older than the retention window.
type Janitor struct {
	outputDir string
	retention time.Duration
	logger    *logger.Logger
	cron      *cron.Cron
	now       func() time.Time
}

// New creates a Janitor for outputDir keeping files for retentionDays.
func New(outputDir string, retentionDays int, log *logger.Logger) *Janitor {
	return &Janitor{
		outputDir: outputDir,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		logger:    log.WithComponent("janitor"),
		now:       time.Now,
	}
}

// Start schedules the sweep with the given cron expression and runs it in
// the background until Stop is called.
func (j *Janitor) Start(schedule string) error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(schedule, j.sweep); err != nil {
		return err
	}
	j.cron.Start()

	j.logger.Info("output cleanup scheduled",
		"schedule", schedule,
		"output_dir", j.outputDir,
		"retention", j.retention)
	return nil
}

// Stop halts the schedule. A sweep already in flight finishes.
func (j *Janitor) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// sweep deletes expired PDFs. Failures are logged and skipped; the next
// run picks them up again.
func (j *Janitor) sweep() {
	cutoff := j.now().Add(-j.retention)

	entries, err := os.ReadDir(j.outputDir)
	if err != nil {
		if !os.IsNotExist(err) {
			j.logger.Warn("failed to read output directory", "error", err)
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			j.logger.Warn("failed to stat output file", "file", entry.Name(), "error", err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(j.outputDir, entry.Name())
		if err := os.Remove(path); err != nil {
			j.logger.Warn("failed to remove expired PDF", "file", entry.Name(), "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		j.logger.Info("removed expired PDFs", "count", removed)
	}
}
