package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/webghor/hostpanel/internal/database"
)

// BackupRunner produces a database dump and records the run.
type BackupRunner interface {
	Backup(ctx context.Context, backupType string) database.Result[string]
}

// BackupTask produces one database backup through the manager. Queueing it
// instead of dumping inline keeps HTTP handlers fast and serializes
// concurrent backup requests.
type BackupTask struct {
	BackupType string `json:"backup_type"`
}

// Config returns the queue configuration for backup tasks.
func (t BackupTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "database_backup",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackupProcessor creates a processor function for BackupTask.
func BackupProcessor(runner BackupRunner) backlite.QueueProcessor[BackupTask] {
	return func(ctx context.Context, task BackupTask) error {
		if runner == nil {
			return fmt.Errorf("backup runner not configured")
		}

		backupType := task.BackupType
		if backupType == "" {
			backupType = "manual"
		}

		res := runner.Backup(ctx, backupType)
		if !res.Success {
			return fmt.Errorf("backup: %s", res.Error)
		}

		log.Printf("[TASK] Backup (%s) completed, %d bytes", backupType, len(res.Data))
		return nil
	}
}

// NewBackupQueue creates a backlite queue for backup tasks.
func NewBackupQueue(runner BackupRunner) backlite.Queue {
	return backlite.NewQueue(BackupProcessor(runner))
}
