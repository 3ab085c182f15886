package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/webghor/hostpanel/internal/entities"
	"github.com/webghor/hostpanel/internal/exporters"
)

// Options carries everything backend selection needs. Supabase credentials
// win; the generic DB_* settings cover a direct Postgres or sqlite file
// configuration; with neither present the in-memory mock backend is used.
type Options struct {
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string

	Type     string // "postgres" or "sqlite"
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSL      bool
	FilePath string

	Seed bool // insert fixture data when the clients table is empty
}

// Backends are the constructors the Manager selects between. They are
// injected so the selection logic stays testable and this package does not
// depend on the backend implementations.
type Backends struct {
	Memory   func() Connection
	SQLite   func(path string) (Connection, error)
	Postgres func(dsn string) (Connection, error)
}

// Manager owns the connection lifecycle: lazy backend selection, schema
// bootstrap, conditional seeding and backup orchestration. It is created in
// the entrypoint and handed to repositories explicitly; there is no
// package-level singleton.
type Manager struct {
	opts     Options
	backends Backends

	mu          sync.Mutex
	conn        Connection
	backend     string
	initialized bool
}

func NewManager(opts Options, backends Backends) *Manager {
	return &Manager{opts: opts, backends: backends}
}

// Initialize selects a backend, bootstraps the schema and seeds fixture
// data when the clients table is empty. It is idempotent: a second call is
// a no-op returning success. The envelope's data is the backend name.
func (m *Manager) Initialize(ctx context.Context) Result[string] {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return OkMsg(m.backend, "already initialized")
	}

	conn, backend, err := m.selectBackend()
	if err != nil {
		// Unusable configuration degrades to the mock backend instead of
		// failing the caller.
		log.Printf("WARNING: %v; falling back to in-memory mock backend", err)
		conn = m.backends.Memory()
		backend = "memory"
	}

	if err := conn.Migrate(ctx); err != nil {
		conn.Close()
		return Fail[string](backendErr("schema bootstrap", err))
	}

	if m.opts.Seed {
		if err := m.seed(ctx, conn); err != nil {
			conn.Close()
			return Fail[string](backendErr("seed", err))
		}
	}

	m.conn = conn
	m.backend = backend
	m.initialized = true
	log.Printf("Database initialized (backend: %s)", backend)
	return OkMsg(backend, "database initialized")
}

// Connection returns the active connection. Callers must Initialize first.
func (m *Manager) Connection() Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

// Backend reports which backend Initialize selected.
func (m *Manager) Backend() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backend
}

// Ping verifies the active backend answers queries.
func (m *Manager) Ping(ctx context.Context) error {
	conn := m.Connection()
	if conn == nil {
		return &ConfigurationError{Message: "database not initialized"}
	}
	_, err := conn.Count(ctx, "clients", nil)
	return err
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	m.initialized = false
	return err
}

// Backup serializes every known table into an SQL INSERT dump and records
// the run in backup_logs. The dump is returned as the envelope data; this
// is a content generator, not a file writer. backupType is "manual" or
// "scheduled".
func (m *Manager) Backup(ctx context.Context, backupType string) Result[string] {
	conn := m.Connection()
	if conn == nil {
		return Fail[string](&ConfigurationError{Message: "database not initialized"})
	}

	now := time.Now()
	logRow := &entities.BackupLog{
		ID:         NewID("BK"),
		BackupType: backupType,
		Status:     entities.BackupRunRunning,
		StartedAt:  now,
	}
	if err := conn.Insert(ctx, "backup_logs", BackupLogRow(logRow)); err != nil {
		return Fail[string](backendErr("backup log", err))
	}

	dump, err := m.dump(ctx, conn, now)
	completed := time.Now()
	if err != nil {
		if _, logErr := conn.Update(ctx, "backup_logs", logRow.ID, Row{
			"status":       string(entities.BackupRunFailed),
			"error":        err.Error(),
			"completed_at": completed,
		}); logErr != nil {
			log.Printf("Backup %s: failed to record failure: %v", logRow.ID, logErr)
		}
		log.Printf("Backup %s failed: %v", logRow.ID, err)
		return Fail[string](err)
	}

	if _, err := conn.Update(ctx, "backup_logs", logRow.ID, Row{
		"status":       string(entities.BackupRunCompleted),
		"file_size":    int64(len(dump)),
		"completed_at": completed,
	}); err != nil {
		log.Printf("Backup %s: failed to record completion: %v", logRow.ID, err)
	}
	log.Printf("Backup %s completed (%d bytes)", logRow.ID, len(dump))
	return OkMsg(dump, fmt.Sprintf("backup completed (%d bytes)", len(dump)))
}

// GetBackupHistory returns the most recent 50 backup log rows, newest first.
func (m *Manager) GetBackupHistory(ctx context.Context) Result[[]entities.BackupLog] {
	conn := m.Connection()
	if conn == nil {
		return Fail[[]entities.BackupLog](&ConfigurationError{Message: "database not initialized"})
	}

	rows, err := conn.Select(ctx, Query{
		Table:      "backup_logs",
		OrderBy:    "started_at",
		Descending: true,
		Limit:      50,
	})
	if err != nil {
		return Fail[[]entities.BackupLog](err)
	}
	logs := make([]entities.BackupLog, len(rows))
	for i, r := range rows {
		logs[i] = *ScanBackupLog(r)
	}
	return Ok(logs)
}

func (m *Manager) dump(ctx context.Context, conn Connection, now time.Time) (string, error) {
	names, err := conn.Tables(ctx)
	if err != nil {
		return "", err
	}
	tables := make([]exporters.Table, 0, len(names))
	for _, name := range names {
		rows, err := conn.Select(ctx, Query{Table: name})
		if err != nil {
			return "", err
		}
		raw := make([]map[string]any, len(rows))
		for i, r := range rows {
			raw[i] = map[string]any(r)
		}
		tables = append(tables, exporters.Table{Name: name, Rows: raw})
	}
	return exporters.SQLDump(tables, now), nil
}

func (m *Manager) selectBackend() (Connection, string, error) {
	if m.opts.SupabaseURL != "" && m.opts.SupabaseAnonKey != "" {
		dsn, err := supabaseDSN(m.opts)
		if err != nil {
			return nil, "", err
		}
		conn, err := m.backends.Postgres(dsn)
		if err != nil {
			return nil, "", err
		}
		return conn, "supabase", nil
	}

	switch m.opts.Type {
	case "sqlite":
		if m.opts.FilePath == "" {
			return nil, "", &ConfigurationError{Message: "DB_TYPE is sqlite but DB_FILE_PATH is not set"}
		}
		conn, err := m.backends.SQLite(m.opts.FilePath)
		if err != nil {
			return nil, "", err
		}
		return conn, "sqlite", nil
	case "postgres":
		if m.opts.Host == "" {
			return nil, "", &ConfigurationError{Message: "DB_TYPE is postgres but DB_HOST is not set"}
		}
		conn, err := m.backends.Postgres(postgresDSN(m.opts))
		if err != nil {
			return nil, "", err
		}
		return conn, "postgres", nil
	}

	log.Printf("WARNING: no database credentials configured, using in-memory mock backend")
	return m.backends.Memory(), "memory", nil
}

func (m *Manager) seed(ctx context.Context, conn Connection) error {
	n, err := conn.Count(ctx, "clients", nil)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	set := SeedData(time.Now())
	for i := range set.Clients {
		if err := conn.Insert(ctx, "clients", ClientRow(&set.Clients[i])); err != nil {
			return err
		}
	}
	for i := range set.Domains {
		if err := conn.Insert(ctx, "domains", DomainRow(&set.Domains[i])); err != nil {
			return err
		}
	}
	for i := range set.Hostings {
		if err := conn.Insert(ctx, "hosting", HostingRow(&set.Hostings[i])); err != nil {
			return err
		}
	}
	for i := range set.Payments {
		if err := conn.Insert(ctx, "payments", PaymentRow(&set.Payments[i])); err != nil {
			return err
		}
	}
	log.Printf("Seeded fixture data: %d clients, %d domains, %d hosting, %d payments",
		len(set.Clients), len(set.Domains), len(set.Hostings), len(set.Payments))
	return nil
}

// supabaseDSN derives the direct Postgres connection string from a Supabase
// project URL. The service-role key is preferred as the password; the anon
// key only grants whatever row-level policies allow.
func supabaseDSN(opts Options) (string, error) {
	u, err := url.Parse(opts.SupabaseURL)
	if err != nil || u.Host == "" {
		return "", &ConfigurationError{Message: fmt.Sprintf("invalid SUPABASE_URL %q", opts.SupabaseURL)}
	}
	ref, _, found := strings.Cut(u.Host, ".")
	if !found || ref == "" {
		return "", &ConfigurationError{Message: fmt.Sprintf("cannot extract project ref from %q", u.Host)}
	}
	password := opts.SupabaseServiceKey
	if password == "" {
		password = opts.SupabaseAnonKey
	}
	return fmt.Sprintf("host=db.%s user=postgres password=%s dbname=postgres port=5432 sslmode=require",
		u.Host, password), nil
}

func postgresDSN(opts Options) string {
	sslmode := "disable"
	if opts.SSL {
		sslmode = "require"
	}
	port := opts.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		opts.Host, opts.User, opts.Password, opts.Name, port, sslmode)
}
