package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Janitor removes uploaded files once they are older than the retention window.
type Janitor struct {
	dir       string
	retention time.Duration
	logger    logrus.FieldLogger
	now       func() time.Time

	cron *cron.Cron
}

func NewJanitor(baseDir string, retention time.Duration, logger logrus.FieldLogger) *Janitor {
	return &Janitor{
		dir:       filepath.Join(baseDir, uploadsDir),
		retention: retention,
		logger:    logger,
		now:       time.Now,
		cron:      cron.New(),
	}
}

func (j *Janitor) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, func() {
		removed, err := j.Sweep()
		if err != nil {
			j.logger.WithError(err).Warn("upload janitor sweep failed")
			return
		}
		if removed > 0 {
			j.logger.WithField("removed", removed).Info("upload janitor removed expired files")
		}
	}); err != nil {
		return fmt.Errorf("schedule upload janitor: %w", err)
	}
	j.cron.Start()
	return nil
}

func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) Sweep() (int, error) {
	if j.retention <= 0 {
		return 0, nil
	}
	cutoff := j.now().Add(-j.retention)

	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return removed, err
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(j.dir, entry.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
