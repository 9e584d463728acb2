package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/internal/repositories"
	apperrors "submission-portal/pkg/errors"
)

type serviceFixture struct {
	service SubmissionServiceInterface
	store   *fakeBlobStore
	repos   map[forms.FormType]*fakeSubmissionRepo
	cache   *fakeCache
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	store := newFakeBlobStore()
	fakes := make(map[forms.FormType]*fakeSubmissionRepo)
	repos := make(map[forms.FormType]repositories.SubmissionRepositoryInterface)
	for _, v := range forms.Variants() {
		repo := newFakeSubmissionRepo()
		fakes[v.Type] = repo
		repos[v.Type] = repo
	}

	logger := zap.NewNop()
	cache := newFakeCache()
	writer := NewSubmissionWriter(store, repos, logger)
	normalizer := NewNormalizer(store, logger)
	service := NewSubmissionService(writer, repos, normalizer, cache, logger)

	return &serviceFixture{service: service, store: store, repos: fakes, cache: cache}
}

func (f *serviceFixture) seedPending(t *testing.T, formType forms.FormType, topic string) string {
	t.Helper()
	id := uuid.New().String()
	err := f.repos[formType].Insert(context.Background(), &entities.Submission{
		ID:        id,
		Status:    entities.StatusPending,
		CreatedAt: time.Now(),
		Data:      map[string]interface{}{"projectTitle": topic},
	})
	require.NoError(t, err)
	return id
}

func TestSubmissionService_SubmitUnknownFormType(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Submit(context.Background(), "UG9", map[string]string{}, nil)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestSubmissionService_SubmitMissingFieldHasNoSideEffects(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Submit(context.Background(), "UG1", map[string]string{
		"applicantName": "Иванов И.И.",
	}, nil)

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, f.store.count())
	assert.Empty(t, f.repos[forms.UG1].subs)
}

func TestSubmissionService_GetOneProbesVariants(t *testing.T) {
	f := newServiceFixture(t)
	id := f.seedPending(t, forms.PG2B, "Обучение с подкреплением")

	view, err := f.service.GetOne(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "PG2B", view.FormType)
	assert.Equal(t, "Обучение с подкреплением", view.Topic)
}

func TestSubmissionService_GetOneMalformedID(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GetOne(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrMalformedID)
}

func TestSubmissionService_GetOneUnknownID(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.GetOne(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSubmissionService_ListPendingMergesVariants(t *testing.T) {
	f := newServiceFixture(t)
	f.seedPending(t, forms.UG1, "Теплица")
	f.seedPending(t, forms.R1, "Исследование")

	approvedID := f.seedPending(t, forms.UG2, "Уже одобрена")
	require.NoError(t, f.repos[forms.UG2].UpdateStatus(
		context.Background(), approvedID, entities.StatusPending, entities.StatusApproved))

	views, err := f.service.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	topics := []string{views[0].Topic, views[1].Topic}
	assert.ElementsMatch(t, []string{"Теплица", "Исследование"}, topics)
}

func TestSubmissionService_ListPendingUsesCache(t *testing.T) {
	f := newServiceFixture(t)
	f.seedPending(t, forms.UG1, "Теплица")

	views, err := f.service.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	// второе чтение идёт из кеша и не видит свежую запись
	f.seedPending(t, forms.UG1, "Новая заявка")
	views, err = f.service.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestSubmissionService_ApproveTransition(t *testing.T) {
	f := newServiceFixture(t)
	id := f.seedPending(t, forms.UG3A, "Доклад")

	require.NoError(t, f.service.Approve(context.Background(), id))

	sub, err := f.repos[forms.UG3A].FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusApproved, sub.Status)
}

func TestSubmissionService_RejectAlreadyDecided(t *testing.T) {
	f := newServiceFixture(t)
	id := f.seedPending(t, forms.UG3A, "Доклад")
	require.NoError(t, f.service.Approve(context.Background(), id))

	err := f.service.Reject(context.Background(), id)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)

	sub, err := f.repos[forms.UG3A].FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusApproved, sub.Status, "решение не должно перезаписываться")
}

// staleStatusRepo отдаёт при чтении устаревший статус pending:
// так выглядит гонка, когда решение приняли между чтением и обновлением.
type staleStatusRepo struct {
	*fakeSubmissionRepo
}

func (r *staleStatusRepo) FindByID(ctx context.Context, id string) (*entities.Submission, error) {
	sub, err := r.fakeSubmissionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sub.Status = entities.StatusPending
	return sub, nil
}

func TestSubmissionService_ConcurrentDecisionIsBadRequest(t *testing.T) {
	inner := newFakeSubmissionRepo()
	id := uuid.New().String()
	require.NoError(t, inner.Insert(context.Background(), &entities.Submission{
		ID:        id,
		Status:    entities.StatusApproved,
		CreatedAt: time.Now(),
		Data:      map[string]interface{}{},
	}))

	logger := zap.NewNop()
	store := newFakeBlobStore()
	repos := map[forms.FormType]repositories.SubmissionRepositoryInterface{
		forms.UG1: &staleStatusRepo{fakeSubmissionRepo: inner},
	}
	service := NewSubmissionService(
		NewSubmissionWriter(store, repos, logger),
		repos, NewNormalizer(store, logger), newFakeCache(), logger)

	err := service.Reject(context.Background(), id)
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code, "проигранная гонка — это не 404, запись существует")

	sub, err := inner.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusApproved, sub.Status)
}

func TestSubmissionService_DecisionInvalidatesCache(t *testing.T) {
	f := newServiceFixture(t)
	id := f.seedPending(t, forms.PG1, "Проект")

	views, err := f.service.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NoError(t, f.service.Approve(context.Background(), id))

	views, err = f.service.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}
