package main

import (
	"context"
	"log"

	"submission-portal/pkg/config"
	"submission-portal/pkg/database/postgresql"
	"submission-portal/seeders"
)

func main() {
	cfg := config.New()

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	log.Println("Запуск сидеров...")
	if err := seeders.SeedReviewer(context.Background(), db); err != nil {
		log.Fatalf("сидер проверяющего завершился с ошибкой: %v", err)
	}
	log.Println("Сидеры выполнены.")
}
