package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/services"
)

// ExpiryScanner runs the expiry/overdue notification scan.
type ExpiryScanner interface {
	Scan(ctx context.Context) database.Result[*services.ScanReport]
}

// NotificationScanTask runs one expiry/overdue scan pass. Dedupe keys in
// the notification store make re-runs harmless, so at-least-once delivery
// is fine here.
type NotificationScanTask struct{}

// Config returns the queue configuration for scan tasks.
func (t NotificationScanTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "notification_scan",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// NotificationScanProcessor creates a processor function for NotificationScanTask.
func NotificationScanProcessor(scanner ExpiryScanner) backlite.QueueProcessor[NotificationScanTask] {
	return func(ctx context.Context, task NotificationScanTask) error {
		if scanner == nil {
			return fmt.Errorf("scanner not configured")
		}

		res := scanner.Scan(ctx)
		if !res.Success {
			return fmt.Errorf("notification scan: %s", res.Error)
		}

		log.Printf("[TASK] Notification scan created %d alerts (%d suppressed)",
			res.Data.Created, res.Data.Suppressed)
		return nil
	}
}

// NewNotificationScanQueue creates a backlite queue for scan tasks.
func NewNotificationScanQueue(scanner ExpiryScanner) backlite.Queue {
	return backlite.NewQueue(NotificationScanProcessor(scanner))
}
