package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/njb1/what2do/internal/config"
	"github.com/njb1/what2do/internal/db"
	"github.com/njb1/what2do/internal/logger"
	"github.com/njb1/what2do/internal/repository/sqlite"
)

// Prints the tasks table DDL, or applies it with -apply.
func main() {
	apply := flag.Bool("apply", false, "apply the schema instead of printing it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		if !*apply {
			fmt.Println("sqlite: the tasks table is created when the store is opened")
			return
		}
		repo, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open sqlite", "path", cfg.SQLitePath, "error", err)
		}
		repo.Close()
		fmt.Printf("applied schema to %s\n", cfg.SQLitePath)
		return
	}

	if !*apply {
		fmt.Println(db.Schema)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.PostgresDSN(), 1)
	if err != nil {
		logger.Fatal("failed to connect", "error", err)
	}
	defer pool.Close()

	if err := db.ApplySchema(ctx, pool); err != nil {
		logger.Fatal("failed to apply schema", "error", err)
	}
	fmt.Println("applied schema")
}
