package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/internal/repositories"
	apperrors "submission-portal/pkg/errors"
)

func pg2bUploads() []testUpload {
	return []testUpload{
		{role: "guideSignature", name: "guide.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")},
		{role: "groupLeaderSignature", name: "leader.jpg", contentType: "image/jpeg", content: []byte("jpeg-bytes")},
		{role: "paperCopy", name: "paper.pdf", contentType: "application/pdf", content: []byte("pdf-bytes")},
		{role: "additionalDocuments", name: "annex1.pdf", contentType: "application/pdf", content: []byte("annex-one")},
		{role: "additionalDocuments", name: "annex2.pdf", contentType: "application/pdf", content: []byte("annex-two")},
	}
}

func pg2bFields() map[string]string {
	return map[string]string{
		"applicantName":     "Иванов И.И.",
		"branch":            "CSE",
		"guideName":         "Проф. Петров",
		"paperTitle":        "Обучение с подкреплением",
		"conferenceName":    "ICML",
		"bankAccountName":   "Иванов Иван",
		"bankAccountNumber": "40817810000000000001",
		"ifscCode":          "SBIN0000001",
	}
}

func TestSubmissionWriter_Create(t *testing.T) {
	store := newFakeBlobStore()
	repo := newFakeSubmissionRepo()
	writer := NewSubmissionWriter(store,
		map[forms.FormType]repositories.SubmissionRepositoryInterface{forms.PG2B: repo},
		zap.NewNop())

	variant := lookupVariant(t, "PG2B")
	files := validatedFiles(t, pg2bUploads())

	id, err := writer.Create(context.Background(), variant, pg2bFields(), files)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	sub, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPending, sub.Status)
	assert.Equal(t, "Иванов И.И.", sub.Data["applicantName"])

	// одиночная роль — строка-id, множественная — список в порядке загрузки
	sigID, ok := sub.Data["guideSignature"].(string)
	require.True(t, ok)
	info, err := store.Stat(context.Background(), sigID)
	require.NoError(t, err)
	assert.Equal(t, "guide.jpg", info.FileName)

	docIDs, ok := sub.Data["additionalDocuments"].([]string)
	require.True(t, ok)
	require.Len(t, docIDs, 2)
	first, err := store.Stat(context.Background(), docIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "annex1.pdf", first.FileName)

	assert.Equal(t, 5, store.count())
}

func TestSubmissionWriter_UploadFailureRollsBack(t *testing.T) {
	store := newFakeBlobStore()
	store.failAfter = 2 // два файла успевают записаться, дальше отказ
	repo := newFakeSubmissionRepo()
	writer := NewSubmissionWriter(store,
		map[forms.FormType]repositories.SubmissionRepositoryInterface{forms.PG2B: repo},
		zap.NewNop())

	variant := lookupVariant(t, "PG2B")
	files := validatedFiles(t, pg2bUploads())

	_, err := writer.Create(context.Background(), variant, pg2bFields(), files)
	require.Error(t, err)

	var uploadErr *apperrors.UploadError
	assert.ErrorAs(t, err, &uploadErr)

	// после компенсирующего отката ни один блоб не должен остаться доступным
	assert.Equal(t, 0, store.count())
	assert.Empty(t, repo.subs)
}

func TestSubmissionWriter_PersistFailureRollsBack(t *testing.T) {
	store := newFakeBlobStore()
	repo := newFakeSubmissionRepo()
	repo.insertErr = errors.New("соединение с базой потеряно")
	writer := NewSubmissionWriter(store,
		map[forms.FormType]repositories.SubmissionRepositoryInterface{forms.PG2B: repo},
		zap.NewNop())

	variant := lookupVariant(t, "PG2B")
	files := validatedFiles(t, pg2bUploads())

	_, err := writer.Create(context.Background(), variant, pg2bFields(), files)
	require.Error(t, err)

	var persistErr *apperrors.PersistError
	assert.ErrorAs(t, err, &persistErr)
	assert.Equal(t, 0, store.count())
}

// cancelingBlobStore отменяет внешний контекст после первой успешной записи
// и отказывается выполнять Delete под отменённым контекстом.
type cancelingBlobStore struct {
	*fakeBlobStore
	cancel context.CancelFunc
	mu     sync.Mutex
	fired  bool
}

func (s *cancelingBlobStore) Save(ctx context.Context, file io.Reader, originalName string, contentType string) (string, error) {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return "", context.Canceled
	}
	s.fired = true
	s.cancel()
	s.mu.Unlock()
	return s.fakeBlobStore.Save(ctx, file, originalName, contentType)
}

func (s *cancelingBlobStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeBlobStore.Delete(ctx, id)
}

func TestSubmissionWriter_CallerCancellationStillRollsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &cancelingBlobStore{fakeBlobStore: newFakeBlobStore(), cancel: cancel}
	repo := newFakeSubmissionRepo()
	writer := NewSubmissionWriter(store,
		map[forms.FormType]repositories.SubmissionRepositoryInterface{forms.PG2B: repo},
		zap.NewNop())

	variant := lookupVariant(t, "PG2B")
	files := validatedFiles(t, pg2bUploads())

	_, err := writer.Create(ctx, variant, pg2bFields(), files)
	require.Error(t, err)

	var uploadErr *apperrors.UploadError
	assert.ErrorAs(t, err, &uploadErr)

	// откат обязан доехать и после отмены вызова:
	// успевший записаться блоб не должен остаться доступным
	require.True(t, store.fired)
	assert.Equal(t, 0, store.count())
	assert.Empty(t, repo.subs)
}

func TestSubmissionWriter_NoFilesStillPersists(t *testing.T) {
	store := newFakeBlobStore()
	repo := newFakeSubmissionRepo()
	writer := NewSubmissionWriter(store,
		map[forms.FormType]repositories.SubmissionRepositoryInterface{forms.UG1: repo},
		zap.NewNop())

	variant := lookupVariant(t, "UG1")
	fields := map[string]string{
		"applicantName": "Иванов И.И.",
		"branch":        "CSE",
		"guideName":     "Проф. Петров",
		"projectTitle":  "Умная теплица",
		"academicYear":  "2025-2026",
	}

	id, err := writer.Create(context.Background(), variant, fields, map[string][]forms.ValidatedFile{})
	require.NoError(t, err)

	sub, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	_, present := sub.Data["additionalDocuments"]
	assert.False(t, present, "пустая роль не должна попадать в запись")
}
