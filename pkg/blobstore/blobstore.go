package blobstore

import (
	"context"
	"io"

	"submission-portal/internal/entities"
)

// BlobInfo — метаданные файла, достаточные для отдачи и нормализации.
type BlobInfo struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// BlobStorageInterface определяет контракт хранилища файлов.
// Save атомарен с точки зрения вызывающего: либо после возврата файл
// целиком доступен по id, либо следов загрузки не остаётся.
// Delete идемпотентен: удаление несуществующего id не является ошибкой,
// это упрощает компенсирующий откат.
type BlobStorageInterface interface {
	Save(ctx context.Context, file io.Reader, originalName string, contentType string) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, *BlobInfo, error)
	Stat(ctx context.Context, id string) (*BlobInfo, error)
	Delete(ctx context.Context, id string) error
}

// MetadataRegistryInterface — реестр метаданных блобов (таблица blobs).
// Реализация живёт в internal/repositories.
type MetadataRegistryInterface interface {
	Insert(ctx context.Context, blob *entities.Blob) error
	Find(ctx context.Context, id string) (*entities.Blob, error)
	Delete(ctx context.Context, id string) (bool, error)
}
