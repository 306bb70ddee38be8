package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/djordjeivanovic11/ladimood-back/internal/config"
	"github.com/djordjeivanovic11/ladimood-back/internal/infra/db"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|validate")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.Parse()

	log := logger.New(logger.Options{ServiceName: "ladimood-migrate"})
	ctx := log.WithField(context.Background(), "cmd", *cmd)

	// DB不要
	if *cmd == "validate" {
		if err := migrate.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	requireResource(ctx, log, "config", err)

	gdb, err := db.Connect(cfg.DB)
	requireResource(ctx, log, "database", err)
	sqlDB, err := gdb.DB()
	requireResource(ctx, log, "sql database", err)
	defer sqlDB.Close()

	switch *cmd {
	case "up", "down", "status":
		err = migrate.Run(ctx, sqlDB, *cmd)
	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		err = migrate.ToVersion(ctx, sqlDB, *version)
	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Error(ctx, "migration failed", err)
		os.Exit(1)
	}
	log.Info(ctx, "migration finished")
}

func requireResource(ctx context.Context, log *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	log.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
