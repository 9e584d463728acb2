package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"submission-portal/internal/entities"
	apperrors "submission-portal/pkg/errors"
)

const tmpDir = ".tmp"

type LocalBlobStorage struct {
	basePath string
	registry MetadataRegistryInterface
	logger   *zap.Logger
}

// NewLocalBlobStorage создаёт хранилище: тела файлов на диске под basePath,
// метаданные в реестре. Конструируется только после того, как соединение
// с БД подтверждено, поэтому ненулевой экземпляр всегда готов к работе.
func NewLocalBlobStorage(basePath string, registry MetadataRegistryInterface, logger *zap.Logger) (BlobStorageInterface, error) {
	if err := os.MkdirAll(filepath.Join(basePath, tmpDir), 0o755); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию хранилища: %w", err)
	}
	return &LocalBlobStorage{basePath: basePath, registry: registry, logger: logger}, nil
}

// Save пишет файл во временный каталог, регистрирует метаданные и только
// потом переносит тело на постоянное место. Любой сбой по пути откатывает
// уже сделанные шаги, частично записанный блоб снаружи не виден.
func (s *LocalBlobStorage) Save(ctx context.Context, file io.Reader, originalName string, contentType string) (string, error) {
	id := uuid.New().String()
	ext := filepath.Ext(originalName)

	datePath := time.Now().Format("2006/01/02")
	relPath := filepath.ToSlash(filepath.Join(datePath, id+ext))

	tmpPath := filepath.Join(s.basePath, tmpDir, id+ext)
	size, err := s.writeTemp(tmpPath, file)
	if err != nil {
		return "", err
	}

	blob := &entities.Blob{
		ID:          id,
		FileName:    originalName,
		ContentType: contentType,
		Size:        size,
		Path:        relPath,
	}
	if err := s.registry.Insert(ctx, blob); err != nil {
		s.removeQuiet(tmpPath)
		return "", fmt.Errorf("не удалось зарегистрировать файл: %w", err)
	}

	fullDirPath := filepath.Join(s.basePath, datePath)
	if err := os.MkdirAll(fullDirPath, 0o755); err == nil {
		err = os.Rename(tmpPath, filepath.Join(s.basePath, filepath.FromSlash(relPath)))
	}
	if err != nil {
		if _, delErr := s.registry.Delete(ctx, id); delErr != nil {
			s.logger.Error("не удалось снять регистрацию после сбоя переноса",
				zap.String("blobID", id), zap.Error(delErr))
		}
		s.removeQuiet(tmpPath)
		return "", fmt.Errorf("не удалось разместить файл в хранилище: %w", err)
	}

	return id, nil
}

func (s *LocalBlobStorage) Open(ctx context.Context, id string) (io.ReadCloser, *BlobInfo, error) {
	blob, err := s.registry.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(s.basePath, filepath.FromSlash(blob.Path)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Запись есть, тела нет: для вызывающего это то же отсутствие файла.
			s.logger.Warn("метаданные без тела файла", zap.String("blobID", id), zap.String("path", blob.Path))
			return nil, nil, apperrors.ErrBlobNotFound
		}
		return nil, nil, err
	}

	return f, infoOf(blob), nil
}

func (s *LocalBlobStorage) Stat(ctx context.Context, id string) (*BlobInfo, error) {
	blob, err := s.registry.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return infoOf(blob), nil
}

func (s *LocalBlobStorage) Delete(ctx context.Context, id string) error {
	blob, err := s.registry.Find(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrBlobNotFound) {
			return nil
		}
		return err
	}

	if _, err := s.registry.Delete(ctx, id); err != nil {
		return err
	}

	// Реестр — источник истины; сбой удаления тела только логируем.
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(blob.Path))
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error("не удалось удалить тело файла", zap.String("blobID", id), zap.Error(err))
	}
	return nil
}

func (s *LocalBlobStorage) writeTemp(tmpPath string, file io.Reader) (int64, error) {
	dst, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("не удалось создать временный файл: %w", err)
	}

	size, err := io.Copy(dst, file)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.removeQuiet(tmpPath)
		return 0, fmt.Errorf("не удалось записать файл: %w", err)
	}
	return size, nil
}

func (s *LocalBlobStorage) removeQuiet(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("не удалось удалить временный файл", zap.String("path", path), zap.Error(err))
	}
}

func infoOf(blob *entities.Blob) *BlobInfo {
	return &BlobInfo{
		ID:          blob.ID,
		FileName:    blob.FileName,
		ContentType: blob.ContentType,
		Size:        blob.Size,
	}
}
