package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/services"
)

// StatusRefresher re-derives stored snapshots for one entity kind.
type StatusRefresher interface {
	RefreshDerived(ctx context.Context) database.Result[int]
}

// Scanner runs the expiry/overdue notification scan.
type Scanner interface {
	Scan(ctx context.Context) database.Result[*services.ScanReport]
}

// StatusRefreshScheduler periodically rewrites drifted status snapshots and
// runs the notification scan so the stored rows and the alert list track
// the calendar even when nobody reads the entities.
type StatusRefreshScheduler struct {
	refreshers []StatusRefresher
	scanner    Scanner
	schedule   string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewStatusRefreshScheduler(schedule string, scanner Scanner, refreshers ...StatusRefresher) *StatusRefreshScheduler {
	return &StatusRefreshScheduler{
		refreshers: refreshers,
		scanner:    scanner,
		schedule:   schedule,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. An empty schedule disables it.
func (s *StatusRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("Status refresh scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runRefresh()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule status refresh job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Status refresh scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler and waits for a running job.
func (s *StatusRefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Status refresh scheduler: stopped")
}

// RunNow triggers an immediate refresh pass.
func (s *StatusRefreshScheduler) RunNow() {
	go s.runRefresh()
}

func (s *StatusRefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *StatusRefreshScheduler) runRefresh() {
	ctx := context.Background()
	start := time.Now()
	total := 0

	for _, r := range s.refreshers {
		res := r.RefreshDerived(ctx)
		if !res.Success {
			log.Printf("Status refresh: %s", res.Error)
			continue
		}
		total += res.Data
	}

	if s.scanner != nil {
		if res := s.scanner.Scan(ctx); !res.Success {
			log.Printf("Status refresh: notification scan failed: %s", res.Error)
		} else {
			log.Printf("Status refresh: scan created %d notifications (%d suppressed)",
				res.Data.Created, res.Data.Suppressed)
		}
	}

	log.Printf("Status refresh: %d rows updated in %v", total, time.Since(start).Round(time.Millisecond))
}
