package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/internal/repositories"
	"submission-portal/pkg/blobstore"
	apperrors "submission-portal/pkg/errors"
)

// SubmissionWriterInterface сохраняет провалидированную заявку:
// файлы в хранилище, запись в таблицу варианта. Всё или ничего.
type SubmissionWriterInterface interface {
	Create(ctx context.Context, variant *forms.Variant, fields map[string]string, files map[string][]forms.ValidatedFile) (string, error)
}

type SubmissionWriter struct {
	store  blobstore.BlobStorageInterface
	repos  map[forms.FormType]repositories.SubmissionRepositoryInterface
	logger *zap.Logger
}

func NewSubmissionWriter(
	store blobstore.BlobStorageInterface,
	repos map[forms.FormType]repositories.SubmissionRepositoryInterface,
	logger *zap.Logger,
) SubmissionWriterInterface {
	return &SubmissionWriter{store: store, repos: repos, logger: logger}
}

// Create загружает вложения (параллельно, они независимы), затем пишет
// запись формы. Любой сбой после первой успешной загрузки приводит к
// компенсирующему удалению уже выданных id. Список выданных id — локальный
// для вызова, между запросами ничего не разделяется.
func (w *SubmissionWriter) Create(
	ctx context.Context,
	variant *forms.Variant,
	fields map[string]string,
	files map[string][]forms.ValidatedFile,
) (string, error) {
	var mu sync.Mutex
	uploadedIDs := make([]string, 0)
	blobIDs := make(map[string][]string, len(files))
	for role, group := range files {
		blobIDs[role] = make([]string, len(group))
	}

	g, gctx := errgroup.WithContext(ctx)
	for role, group := range files {
		for i, vf := range group {
			role, i, vf := role, i, vf
			g.Go(func() error {
				src, err := vf.Header.Open()
				if err != nil {
					return err
				}
				defer src.Close()

				id, err := w.store.Save(gctx, src, vf.Header.Filename, vf.ContentType)
				if err != nil {
					return err
				}

				mu.Lock()
				uploadedIDs = append(uploadedIDs, id)
				blobIDs[role][i] = id
				mu.Unlock()
				return nil
			})
		}
	}

	// Откат решается только после того, как все загрузки завершились:
	// иначе можно пропустить id, выданный уже после начала отката.
	if err := g.Wait(); err != nil {
		w.rollback(ctx, uploadedIDs)
		return "", apperrors.NewUploadError(err)
	}

	record := &entities.Submission{
		ID:        uuid.New().String(),
		Status:    entities.StatusPending,
		CreatedAt: time.Now(),
		Data:      buildData(variant, fields, blobIDs),
	}

	repo, ok := w.repos[variant.Type]
	if !ok {
		w.rollback(ctx, uploadedIDs)
		return "", apperrors.NewPersistError(apperrors.ErrNotFound)
	}

	if err := repo.Insert(ctx, record); err != nil {
		w.rollback(ctx, uploadedIDs)
		return "", apperrors.NewPersistError(err)
	}

	return record.ID, nil
}

// rollback — компенсирующее удаление, best-effort: сбой удаления логируется
// и не подменяет исходную ошибку. Выполняется и при отмене внешнего вызова,
// чтобы не оставлять осиротевшие блобы.
func (w *SubmissionWriter) rollback(ctx context.Context, ids []string) {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, id := range ids {
		if err := w.store.Delete(cleanupCtx, id); err != nil {
			w.logger.Error("компенсирующее удаление не удалось",
				zap.String("blobID", id), zap.Error(err))
		}
	}
}

// buildData собирает запись: скалярные поля плюс ссылки на блобы по ролям
// (одиночная роль — строка, множественная — список в порядке загрузки).
func buildData(variant *forms.Variant, fields map[string]string, blobIDs map[string][]string) map[string]interface{} {
	data := make(map[string]interface{}, len(fields)+len(blobIDs))
	for name, value := range fields {
		data[name] = value
	}

	for _, role := range variant.Roles {
		ids, ok := blobIDs[role.Name]
		if !ok || len(ids) == 0 {
			continue
		}
		if role.Multi {
			data[role.Name] = ids
		} else {
			data[role.Name] = ids[0]
		}
	}
	return data
}
