package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/njb1/what2do/internal/config"
	"github.com/njb1/what2do/internal/db"
	"github.com/njb1/what2do/internal/repository"
	"github.com/njb1/what2do/internal/repository/sqlite"
	"github.com/njb1/what2do/internal/service"
)

var samples = []string{
	"Buy milk",
	"Book dentist appointment",
	"Renew passport",
	"Water the plants",
	"Reply to Sam's email",
}

func main() {
	markFirst := flag.Bool("complete-first", true, "mark the first seeded task as completed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store service.TaskStore
	if cfg.DBDriver == config.DriverSQLite {
		repo, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		defer repo.Close()
		store = repo
	} else {
		pool, err := db.Connect(ctx, cfg.PostgresDSN(), 2)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		store = repository.NewTaskRepository(pool)
	}

	svc := service.NewTaskService(store)
	for i, content := range samples {
		task, err := svc.Create(ctx, &content)
		if err != nil {
			log.Fatalf("create %q: %v", content, err)
		}
		log.Printf("task created id=%d content=%q\n", task.ID, task.Content)

		if i == 0 && *markFirst {
			done := true
			if err := svc.SetCompleted(ctx, task.ID, &done); err != nil {
				log.Fatalf("complete task %d: %v", task.ID, err)
			}
		}
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	log.Printf("store now holds %d tasks\n", len(tasks))
}
