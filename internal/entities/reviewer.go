package entities

import "time"

// Reviewer — учётная запись проверяющего (координатор, одобряющий заявки).
type Reviewer struct {
	ID           uint64    `db:"id"`
	Login        string    `db:"login"`
	Fio          string    `db:"fio"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
