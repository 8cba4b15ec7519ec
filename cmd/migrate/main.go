package main

import (
	"context"
	"flag"
	"os"

	"bookconnect/internal/config"
	"bookconnect/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()

	log, err := logger.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("APP_ENV", "development"))
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	dsn := databaseDSN()
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.String("dsn", config.RedactDSN(dsn)), zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("failed to set dialect", zap.Error(err))
	}

	dir := migrationsDir()

	switch *command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
		log.Info("migrations applied", zap.String("dir", dir))
	case "down":
		if err := goose.Down(db, dir); err != nil {
			log.Fatal("failed to roll back migration", zap.Error(err))
		}
		log.Info("migration rolled back", zap.String("dir", dir))
	case "status":
		if err := goose.Status(db, dir); err != nil {
			log.Fatal("failed to check migration status", zap.Error(err))
		}
	case "create":
		if *name == "" {
			log.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatal("failed to create migration", zap.Error(err))
		}
		log.Info("migration created", zap.String("name", *name))
	default:
		log.Fatal("unknown command, use: up, down, status, create", zap.String("command", *command))
	}
}
