package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aurora-share/server/internal/cron"
	"github.com/aurora-share/server/internal/repository"
	"github.com/aurora-share/server/internal/service"
	"github.com/aurora-share/server/migrations"
	"github.com/aurora-share/server/pkg/config"
	"github.com/aurora-share/server/pkg/db"
	"github.com/aurora-share/server/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		logger.Default().Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	log := newLogger(&cfg.Logging)
	log.Info("starting maintenance daemon")

	ctx := context.Background()

	if err := runMigrations(ctx, cfg, log); err != nil {
		log.Error("migrations failed", logger.Error(err))
		os.Exit(1)
	}
	if *migrateOnly {
		log.Info("migrations applied, exiting")
		return
	}

	pool, err := repository.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Error("failed to create connection pool", logger.Error(err))
		os.Exit(1)
	}
	defer repository.ClosePool(pool)

	listenerRepo := repository.NewListenerRepository(pool)
	cleanupService := service.NewCleanupService(listenerRepo, log)

	cronManager := cron.NewCronManager(cleanupService, cfg.Cleanup.Schedule, log)
	if err := cronManager.Start(); err != nil {
		log.Error("failed to start cron manager", logger.Error(err))
		os.Exit(1)
	}
	defer cronManager.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down maintenance daemon")
}

func newLogger(cfg *config.LoggingConfig) logger.Logger {
	level := logger.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = logger.DebugLevel
	case "warn":
		level = logger.WarnLevel
	case "error":
		level = logger.ErrorLevel
	}
	return logger.New(&logger.Config{
		Level:  level,
		Output: os.Stdout,
		Caller: cfg.Caller,
	})
}

// runMigrations 用 database/sql 连接先做健康检查再跑迁移，
// 与运行期的 pgx 池分开
func runMigrations(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	conn, err := db.Open(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	health := db.NewHealthChecker(conn).Check(ctx)
	if !health.Healthy {
		return fmt.Errorf("database unhealthy: %s", health.Error)
	}
	log.Info("database healthy",
		logger.Duration("response_time", health.ResponseTime),
		logger.Int("open_connections", health.Stats.OpenConnections))

	migrator, err := db.NewMigrator(conn, migrations.FS, ".")
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	log.Info("migrations applied",
		logger.Any("version", version),
		logger.Any("dirty", dirty))
	return nil
}
