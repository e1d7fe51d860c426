// Command seed inserts the static rows every deployment needs.
package main

import (
	"context"
	"log"
	"time"

	"todolist/internal/config"
	"todolist/internal/models"
	"todolist/internal/repositories"
)

func main() {
	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := repositories.Open(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	defer store.Close()

	inserted, err := repositories.NewAppRepository(store.DB).Upsert(ctx, models.App{
		Type:   models.AppTypeTodoList,
		Status: models.AppStatusActive,
	})
	if err != nil {
		log.Fatalf("seed apps: %v", err)
	}
	if inserted {
		log.Printf("seed: app %s created", models.AppTypeTodoList)
	} else {
		log.Printf("seed: app %s already present", models.AppTypeTodoList)
	}
}
