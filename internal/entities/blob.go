package entities

import "time"

// Blob — запись в реестре файлов. Тело файла лежит на диске по Path,
// метаданные нужны для отдачи (Content-Type, исходное имя) и нормализации.
type Blob struct {
	ID          string    `db:"id"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	Size        int64     `db:"size"`
	Path        string    `db:"path"`
	CreatedAt   time.Time `db:"created_at"`
}
