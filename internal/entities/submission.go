package entities

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission — сырая запись заявки одного из вариантов формы.
// Скалярные поля и ссылки на файлы (id блобов, одиночные или списками)
// лежат в Data; бинарные данные в запись никогда не попадают.
type Submission struct {
	ID        string                 `db:"id"`
	Status    string                 `db:"status"`
	CreatedAt time.Time              `db:"created_at"`
	Data      map[string]interface{} `db:"data"`
}
