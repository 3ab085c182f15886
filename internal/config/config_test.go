package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.Global.ShutdownTimeoutInSeconds)

	assert.Equal(t, "", cfg.Database.Type)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "hostpanel", cfg.Database.Name)
	assert.Equal(t, "require", cfg.Database.SSLMode)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.FilePath)
	assert.True(t, cfg.Database.Seed)

	assert.Equal(t, "0 3 * * *", cfg.Backup.Schedule)
	assert.Equal(t, "0 * * * *", cfg.Refresh.Schedule)

	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, DefaultTasksDatabasePath, cfg.Tasks.DBPath)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, time.Minute, cfg.Tasks.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.Tasks.TaskTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Tasks.RetentionDuration)
}

func TestNewConfigReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_FILE_PATH", "/tmp/panel.db")
	t.Setenv("BACKUP_SCHEDULE", "30 2 * * *")
	t.Setenv("TASKS_ENABLED", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/panel.db", cfg.Database.FilePath)
	assert.Equal(t, "30 2 * * *", cfg.Backup.Schedule)
	assert.False(t, cfg.Tasks.Enabled)
}
