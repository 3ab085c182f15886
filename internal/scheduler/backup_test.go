package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webghor/hostpanel/internal/database"
)

type fakeRunner struct {
	calls atomic.Int32
}

func (f *fakeRunner) Backup(ctx context.Context, backupType string) database.Result[string] {
	f.calls.Add(1)
	return database.Ok("-- dump")
}

func TestBackupSchedulerStartStop(t *testing.T) {
	s := NewBackupScheduler(&fakeRunner{}, "0 3 * * *")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))

	// Idempotent start.
	require.NoError(t, s.Start(ctx))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestBackupSchedulerDisabledWithoutSchedule(t *testing.T) {
	s := NewBackupScheduler(&fakeRunner{}, "")

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestBackupSchedulerRejectsBadSchedule(t *testing.T) {
	s := NewBackupScheduler(&fakeRunner{}, "not a schedule")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestBackupSchedulerRunNow(t *testing.T) {
	runner := &fakeRunner{}
	s := NewBackupScheduler(runner, "0 3 * * *")

	s.RunNow()

	require.Eventually(t, func() bool {
		return runner.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBackupSchedulerStopsOnContextCancel(t *testing.T) {
	s := NewBackupScheduler(&fakeRunner{}, "0 3 * * *")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, s.Start(ctx))
	require.True(t, s.IsRunning())

	cancel()
	require.Eventually(t, func() bool {
		return !s.IsRunning()
	}, time.Second, 10*time.Millisecond)
}
