// Package scheduler runs the panel's periodic jobs on cron schedules:
// database backups and the status refresh / notification scan.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/webghor/hostpanel/internal/database"
)

// BackupRunner is the slice of the database manager the backup job needs.
type BackupRunner interface {
	Backup(ctx context.Context, backupType string) database.Result[string]
}

// BackupScheduler triggers scheduled database backups.
type BackupScheduler struct {
	runner   BackupRunner
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewBackupScheduler(runner BackupRunner, schedule string) *BackupScheduler {
	return &BackupScheduler{
		runner:   runner,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. An empty schedule disables it.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("Backup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runBackup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Backup scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler and waits for a running job.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Backup scheduler: stopped")
}

// RunNow triggers an immediate backup.
func (s *BackupScheduler) RunNow() {
	go s.runBackup()
}

func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next backup will occur.
func (s *BackupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *BackupScheduler) runBackup() {
	log.Printf("Backup scheduler: starting backup")
	start := time.Now()

	res := s.runner.Backup(context.Background(), "scheduled")
	if !res.Success {
		log.Printf("Backup scheduler: backup failed: %s", res.Error)
		return
	}
	log.Printf("Backup scheduler: backup completed in %v (%d bytes)",
		time.Since(start).Round(time.Millisecond), len(res.Data))
}
