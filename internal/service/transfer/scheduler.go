package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/heartmarshall/salita/internal/domain"
)

const backupTimeout = time.Minute

type exporter interface {
	Export(ctx context.Context, path string, format domain.ExportFormat) error
}

// BackupOptions configures a Scheduler.
type BackupOptions struct {
	Interval time.Duration
	Dir      string
	Format   domain.ExportFormat
}

// Scheduler exports the vocabulary to Dir every Interval, starting
// immediately. Each backup gets its own timestamped file.
type Scheduler struct {
	log       *slog.Logger
	scheduler *gocron.Scheduler
	exporter  exporter
	locker    sync.Locker
	opts      BackupOptions
	now       func() time.Time
}

// NewScheduler creates a backup Scheduler. Every backup holds locker, which
// may be nil, while it reads the vocabulary.
func NewScheduler(log *slog.Logger, exp exporter, locker sync.Locker, opts BackupOptions) (*Scheduler, error) {
	if opts.Interval <= 0 {
		return nil, domain.NewValidationError("interval", "must be positive")
	}
	if !opts.Format.IsValid() {
		return nil, domain.NewValidationError("format", fmt.Sprintf("unsupported export format %q", opts.Format))
	}

	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		log:       log.With("service", "backup"),
		scheduler: s,
		exporter:  exp,
		locker:    locker,
		opts:      opts,
		now:       time.Now,
	}, nil
}

// Start registers the backup job and runs the scheduler in the background.
// Backups stop when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.scheduler.Every(s.opts.Interval).Do(s.backup, ctx); err != nil {
		return fmt.Errorf("schedule backup: %w", err)
	}
	s.scheduler.StartAsync()

	s.log.InfoContext(ctx, "backup scheduler started",
		slog.String("dir", s.opts.Dir),
		slog.String("interval", s.opts.Interval.String()),
		slog.String("format", s.opts.Format.String()),
	)
	return nil
}

// Stop halts the scheduler. A backup already running completes.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Path returns the file a backup taken at t is written to.
func (s *Scheduler) Path(t time.Time) string {
	name := fmt.Sprintf("salita-%s.%s", t.UTC().Format("20060102-150405"), s.opts.Format)
	return filepath.Join(s.opts.Dir, name)
}

func (s *Scheduler) backup(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, backupTimeout)
	defer cancel()

	if s.locker != nil {
		s.locker.Lock()
		defer s.locker.Unlock()
	}

	path := s.Path(s.now())
	if err := s.exporter.Export(ctx, path, s.opts.Format); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log.ErrorContext(ctx, "backup failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	s.log.InfoContext(ctx, "backup written", slog.String("path", path))
}
