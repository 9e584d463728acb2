package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"submission-portal/internal/entities"
	apperrors "submission-portal/pkg/errors"
)

const (
	blobTable  = "blobs"
	blobFields = "id, file_name, content_type, size, path, created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// BlobRepository — реестр метаданных файлов (реализация
// blobstore.MetadataRegistryInterface поверх PostgreSQL).
type BlobRepository struct {
	storage *pgxpool.Pool
}

func NewBlobRepository(storage *pgxpool.Pool) *BlobRepository {
	return &BlobRepository{storage: storage}
}

func (r *BlobRepository) Insert(ctx context.Context, blob *entities.Blob) error {
	query, args, err := psql.Insert(blobTable).
		Columns("id", "file_name", "content_type", "size", "path").
		Values(blob.ID, blob.FileName, blob.ContentType, blob.Size, blob.Path).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.storage.Exec(ctx, query, args...)
	return err
}

func (r *BlobRepository) Find(ctx context.Context, id string) (*entities.Blob, error) {
	query, args, err := psql.Select(blobFields).
		From(blobTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var blob entities.Blob
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&blob.ID,
		&blob.FileName,
		&blob.ContentType,
		&blob.Size,
		&blob.Path,
		&blob.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBlobNotFound
		}
		return nil, err
	}
	return &blob, nil
}

func (r *BlobRepository) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := psql.Delete(blobTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
