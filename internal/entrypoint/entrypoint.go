package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webghor/hostpanel/internal/config"
	"github.com/webghor/hostpanel/internal/database"
	"github.com/webghor/hostpanel/internal/database/clients"
	"github.com/webghor/hostpanel/internal/database/domains"
	"github.com/webghor/hostpanel/internal/database/gormdb"
	"github.com/webghor/hostpanel/internal/database/hostings"
	"github.com/webghor/hostpanel/internal/database/memory"
	"github.com/webghor/hostpanel/internal/database/notifications"
	"github.com/webghor/hostpanel/internal/database/payments"
	http_controllers "github.com/webghor/hostpanel/internal/http"
	"github.com/webghor/hostpanel/internal/scheduler"
	"github.com/webghor/hostpanel/internal/services"
	"github.com/webghor/hostpanel/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// NewManager builds the database manager wired to all three backends.
func NewManager(cfg *config.Config) *database.Manager {
	return database.NewManager(database.Options{
		SupabaseURL:        cfg.Supabase.URL,
		SupabaseAnonKey:    cfg.Supabase.AnonKey,
		SupabaseServiceKey: cfg.Supabase.ServiceRoleKey,
		Type:               cfg.Database.Type,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Name:               cfg.Database.Name,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		SSL:                cfg.Database.SSLMode != "disable",
		FilePath:           cfg.Database.FilePath,
		Seed:               cfg.Database.Seed,
	}, database.Backends{
		Memory: func() database.Connection { return memory.New() },
		SQLite: func(path string) (database.Connection, error) {
			return gormdb.OpenSQLite(path)
		},
		Postgres: func(dsn string) (database.Connection, error) {
			return gormdb.OpenPostgres(dsn)
		},
	})
}

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop schedulers and task workers before the listener so in-flight
	// jobs finish against a live database.
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting HostPanel v%s", version)

	manager := NewManager(cfg)
	init := manager.Initialize(context.Background())
	if !init.Success {
		log.Fatalf("Failed to initialize database: %s", init.Error)
	}
	log.Printf("Database initialized (backend: %s)", manager.Backend())
	defer func() {
		if err := manager.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	conn := manager.Connection()
	clientRepo := clients.NewRepository(conn)
	domainRepo := domains.NewRepository(conn)
	hostingRepo := hostings.NewRepository(conn)
	paymentRepo := payments.NewRepository(conn)
	notificationRepo := notifications.NewRepository(conn)

	dashboard := services.NewDashboardService(clientRepo, domainRepo, hostingRepo, paymentRepo)
	notifier := services.NewNotifyService(domainRepo, hostingRepo, paymentRepo, notificationRepo)

	// Task queue
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}

		var err error
		taskClient, err = tasks.NewClient(cfg.Tasks.DBPath, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewBackupQueue(manager),
			tasks.NewNotificationScanQueue(notifier),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Schedulers
	backupScheduler := scheduler.NewBackupScheduler(manager, cfg.Backup.Schedule)
	if err := backupScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start backup scheduler: %v", err)
	}

	refreshScheduler := scheduler.NewStatusRefreshScheduler(
		cfg.Refresh.Schedule, notifier, domainRepo, hostingRepo, paymentRepo)
	if err := refreshScheduler.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start status refresh scheduler: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Version:       version,
		Health:        manager,
		Clients:       clientRepo,
		Domains:       domainRepo,
		Hosting:       hostingRepo,
		Payments:      paymentRepo,
		Notifications: notificationRepo,
		Dashboard:     dashboard,
		Scanner:       notifier,
		Backups:       manager,
		Connection:    conn,
	}
	if taskClient != nil {
		routerCfg.Enqueuer = taskClient
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		backupScheduler.Stop()
		refreshScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
