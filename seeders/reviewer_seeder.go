package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"submission-portal/pkg/utils"
)

// SeedReviewer создаёт учётную запись проверяющего по умолчанию,
// если её ещё нет.
func SeedReviewer(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Создание проверяющего 'coordinator'...")

	login := "coordinator"
	var reviewerID uint64
	err := db.QueryRow(ctx, "SELECT id FROM reviewers WHERE login = $1", login).Scan(&reviewerID)
	if err == nil {
		log.Println("    - Проверяющий уже существует. Пропускаем.")
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ошибка при проверке существования проверяющего: %w", err)
	}

	hash, err := utils.HashPassword("coordinator123")
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		"INSERT INTO reviewers (login, fio, password_hash) VALUES ($1, $2, $3)",
		login, "Координатор портала", hash,
	)
	if err != nil {
		return fmt.Errorf("не удалось вставить проверяющего: %w", err)
	}

	log.Println("    - Проверяющий создан.")
	return nil
}
