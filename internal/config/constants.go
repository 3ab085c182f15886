package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the sqlite application database
	DefaultDatabasePath = "./hostpanel.db"

	// DefaultTasksDatabasePath is the default path for the task queue database
	DefaultTasksDatabasePath = "./hostpanel-tasks.db"
)
