package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/pkg/blobstore"
	apperrors "submission-portal/pkg/errors"
)

// fakeBlobStore — потокобезопасное хранилище в памяти. failAfter позволяет
// симулировать отказ диска посреди пакета загрузок.
type fakeBlobStore struct {
	mu        sync.Mutex
	blobs     map[string]blobstore.BlobInfo
	bodies    map[string][]byte
	failAfter int // после скольких успешных Save начинать отказывать; -1 — никогда
	saves     int
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		blobs:     make(map[string]blobstore.BlobInfo),
		bodies:    make(map[string][]byte),
		failAfter: -1,
	}
}

func (s *fakeBlobStore) Save(_ context.Context, file io.Reader, originalName string, contentType string) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAfter >= 0 && s.saves >= s.failAfter {
		return "", errors.New("хранилище недоступно")
	}
	s.saves++

	id := uuid.New().String()
	s.blobs[id] = blobstore.BlobInfo{
		ID:          id,
		FileName:    originalName,
		ContentType: contentType,
		Size:        int64(len(content)),
	}
	s.bodies[id] = content
	return id, nil
}

func (s *fakeBlobStore) Open(_ context.Context, id string) (io.ReadCloser, *blobstore.BlobInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.blobs[id]
	if !ok {
		return nil, nil, apperrors.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(s.bodies[id])), &info, nil
}

func (s *fakeBlobStore) Stat(_ context.Context, id string) (*blobstore.BlobInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, ok := s.blobs[id]
	if !ok {
		return nil, apperrors.ErrBlobNotFound
	}
	return &info, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	delete(s.bodies, id)
	return nil
}

func (s *fakeBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// fakeSubmissionRepo повторяет контракт табличного хранилища одного варианта,
// включая условный переход статуса в UpdateStatus.
type fakeSubmissionRepo struct {
	mu        sync.Mutex
	subs      map[string]*entities.Submission
	insertErr error
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{subs: make(map[string]*entities.Submission)}
}

func (r *fakeSubmissionRepo) Insert(_ context.Context, sub *entities.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *sub
	r.subs[sub.ID] = &clone
	return nil
}

func (r *fakeSubmissionRepo) FindByID(_ context.Context, id string) (*entities.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	clone := *sub
	return &clone, nil
}

func (r *fakeSubmissionRepo) FindByStatus(_ context.Context, status string) ([]entities.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Submission, 0)
	for _, sub := range r.subs {
		if sub.Status == status {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) FindAll(_ context.Context) ([]entities.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Submission, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, *sub)
	}
	return out, nil
}

func (r *fakeSubmissionRepo) UpdateStatus(_ context.Context, id string, from string, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[id]
	if !ok || sub.Status != from {
		return apperrors.ErrNotFound
	}
	sub.Status = to
	return nil
}

// fakeCache — кеш в памяти без TTL, достаточно для проверки попаданий и сброса.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = fmt.Sprintf("%v", value)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return "", errors.New("ключ не найден")
	}
	return value, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}

// testUpload — описание вложения для сборки провалидированного набора.
type testUpload struct {
	role        string
	name        string
	contentType string
	content     []byte
}

// validatedFiles собирает настоящую multipart-форму и возвращает набор в том
// виде, в каком его отдаёт валидация: заголовок плюс определённый тип.
func validatedFiles(t *testing.T, uploads []testUpload) map[string][]forms.ValidatedFile {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, u := range uploads {
		part, err := w.CreateFormFile(u.role, u.name)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := make(map[string][]forms.ValidatedFile)
	byRole := make(map[string]int)
	for _, u := range uploads {
		headers := form.File[u.role]
		idx := byRole[u.role]
		byRole[u.role]++
		require.Less(t, idx, len(headers))
		files[u.role] = append(files[u.role], forms.ValidatedFile{
			Header:      headers[idx],
			ContentType: u.contentType,
		})
	}
	return files
}

func lookupVariant(t *testing.T, formType string) *forms.Variant {
	t.Helper()
	v, ok := forms.Lookup(formType)
	require.True(t, ok)
	return v
}
