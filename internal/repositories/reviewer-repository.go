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
	reviewerTable  = "reviewers"
	reviewerFields = "id, login, fio, password_hash, created_at"
)

type ReviewerRepositoryInterface interface {
	FindByLogin(ctx context.Context, login string) (*entities.Reviewer, error)
}

type ReviewerRepository struct {
	storage *pgxpool.Pool
}

func NewReviewerRepository(storage *pgxpool.Pool) ReviewerRepositoryInterface {
	return &ReviewerRepository{storage: storage}
}

func (r *ReviewerRepository) FindByLogin(ctx context.Context, login string) (*entities.Reviewer, error) {
	query, args, err := psql.Select(reviewerFields).
		From(reviewerTable).
		Where(sq.Eq{"login": login}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var reviewer entities.Reviewer
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&reviewer.ID,
		&reviewer.Login,
		&reviewer.Fio,
		&reviewer.PasswordHash,
		&reviewer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &reviewer, nil
}
