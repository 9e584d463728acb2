package services

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"submission-portal/internal/dto"
	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/internal/repositories"
	apperrors "submission-portal/pkg/errors"
)

const (
	pendingCacheKey = "submissions:pending"
	pendingCacheTTL = time.Minute
)

// SubmissionServiceInterface — публичный фасад конвейера заявок.
type SubmissionServiceInterface interface {
	Submit(ctx context.Context, formType string, fields map[string]string, files map[string][]*multipart.FileHeader) (string, error)
	GetOne(ctx context.Context, id string) (*dto.NormalizedSubmissionDTO, error)
	ListPending(ctx context.Context) ([]dto.NormalizedSubmissionDTO, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

type SubmissionService struct {
	writer     SubmissionWriterInterface
	repos      map[forms.FormType]repositories.SubmissionRepositoryInterface
	normalizer NormalizerInterface
	cache      repositories.CacheRepositoryInterface
	logger     *zap.Logger
}

func NewSubmissionService(
	writer SubmissionWriterInterface,
	repos map[forms.FormType]repositories.SubmissionRepositoryInterface,
	normalizer NormalizerInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) SubmissionServiceInterface {
	return &SubmissionService{
		writer:     writer,
		repos:      repos,
		normalizer: normalizer,
		cache:      cache,
		logger:     logger,
	}
}

// Submit: валидация полей и файлов, затем запись. До успешной валидации
// никаких побочных эффектов не происходит.
func (s *SubmissionService) Submit(ctx context.Context, formType string, fields map[string]string, files map[string][]*multipart.FileHeader) (string, error) {
	variant, ok := forms.Lookup(formType)
	if !ok {
		return "", apperrors.NewHttpError(http.StatusBadRequest,
			"Неизвестный тип формы", apperrors.ErrBadRequest,
			map[string]interface{}{"formType": formType})
	}

	if err := forms.ValidateFields(fields, variant); err != nil {
		return "", err
	}

	validated, err := forms.ValidateFiles(files, variant)
	if err != nil {
		return "", err
	}

	id, err := s.writer.Create(ctx, variant, fields, validated)
	if err != nil {
		return "", err
	}

	s.invalidatePending(ctx)
	return id, nil
}

// GetOne ищет запись, перебирая хранилища вариантов в порядке реестра:
// сам id о типе формы ничего не говорит.
func (s *SubmissionService) GetOne(ctx context.Context, id string) (*dto.NormalizedSubmissionDTO, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrMalformedID
	}

	for _, variant := range forms.Variants() {
		repo, ok := s.repos[variant.Type]
		if !ok {
			continue
		}
		sub, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		return s.normalizer.Normalize(ctx, variant, sub), nil
	}

	return nil, apperrors.ErrNotFound
}

// ListPending собирает ожидающие заявки всех вариантов. Чтения независимы
// и выполняются параллельно; порядок между вариантами не гарантируется,
// внутри варианта — новые первыми.
func (s *SubmissionService) ListPending(ctx context.Context) ([]dto.NormalizedSubmissionDTO, error) {
	if cached, err := s.cache.Get(ctx, pendingCacheKey); err == nil && cached != "" {
		var views []dto.NormalizedSubmissionDTO
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
	}

	var mu sync.Mutex
	views := make([]dto.NormalizedSubmissionDTO, 0)

	g, gctx := errgroup.WithContext(ctx)
	for _, variant := range forms.Variants() {
		variant := variant
		repo, ok := s.repos[variant.Type]
		if !ok {
			continue
		}
		g.Go(func() error {
			subs, err := repo.FindByStatus(gctx, entities.StatusPending)
			if err != nil {
				return err
			}
			batch := make([]dto.NormalizedSubmissionDTO, 0, len(subs))
			for i := range subs {
				batch = append(batch, *s.normalizer.Normalize(gctx, variant, &subs[i]))
			}
			mu.Lock()
			views = append(views, batch...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(views); err == nil {
		if err := s.cache.Set(ctx, pendingCacheKey, string(payload), pendingCacheTTL); err != nil {
			s.logger.Warn("не удалось записать кеш ожидающих заявок", zap.Error(err))
		}
	}

	return views, nil
}

func (s *SubmissionService) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, entities.StatusApproved)
}

func (s *SubmissionService) Reject(ctx context.Context, id string) error {
	return s.decide(ctx, id, entities.StatusRejected)
}

func (s *SubmissionService) decide(ctx context.Context, id string, to string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrMalformedID
	}

	for _, variant := range forms.Variants() {
		repo, ok := s.repos[variant.Type]
		if !ok {
			continue
		}
		sub, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return err
		}

		if sub.Status != entities.StatusPending {
			return alreadyDecided(sub.Status)
		}

		if err := repo.UpdateStatus(ctx, id, entities.StatusPending, to); err != nil {
			// Запись найдена выше, но условное обновление её не застало:
			// статус сменили между чтением и обновлением.
			if errors.Is(err, apperrors.ErrNotFound) {
				return alreadyDecided("")
			}
			return err
		}
		s.invalidatePending(ctx)
		return nil
	}

	return apperrors.ErrNotFound
}

func alreadyDecided(status string) error {
	var errCtx map[string]interface{}
	if status != "" {
		errCtx = map[string]interface{}{"status": status}
	}
	return apperrors.NewHttpError(http.StatusBadRequest,
		"Заявка уже обработана", apperrors.ErrBadRequest, errCtx)
}

func (s *SubmissionService) invalidatePending(ctx context.Context) {
	if err := s.cache.Del(ctx, pendingCacheKey); err != nil {
		s.logger.Warn("не удалось сбросить кеш ожидающих заявок", zap.Error(err))
	}
}
