package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"submission-portal/internal/entities"
	apperrors "submission-portal/pkg/errors"
)

const submissionFields = "id, status, created_at, data"

// SubmissionRepositoryInterface — доступ к записям одного варианта формы.
// Репозиторий знает только свою таблицу, о других вариантах ему не известно.
type SubmissionRepositoryInterface interface {
	Insert(ctx context.Context, sub *entities.Submission) error
	FindByID(ctx context.Context, id string) (*entities.Submission, error)
	FindByStatus(ctx context.Context, status string) ([]entities.Submission, error)
	FindAll(ctx context.Context) ([]entities.Submission, error)
	UpdateStatus(ctx context.Context, id string, from string, to string) error
}

type SubmissionRepository struct {
	storage *pgxpool.Pool
	table   string
	logger  *zap.Logger
}

// NewSubmissionRepository создаётся по одному экземпляру на вариант формы,
// table — его таблица (form_ug1 … form_r1).
func NewSubmissionRepository(storage *pgxpool.Pool, table string, logger *zap.Logger) SubmissionRepositoryInterface {
	return &SubmissionRepository{storage: storage, table: table, logger: logger}
}

func (r *SubmissionRepository) Insert(ctx context.Context, sub *entities.Submission) error {
	dataJSON, err := json.Marshal(sub.Data)
	if err != nil {
		return err
	}

	query, args, err := psql.Insert(r.table).
		Columns("id", "status", "created_at", "data").
		Values(sub.ID, sub.Status, sub.CreatedAt, dataJSON).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.storage.Exec(ctx, query, args...)
	return err
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*entities.Submission, error) {
	query, args, err := psql.Select(submissionFields).
		From(r.table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	sub, err := scanSubmission(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (r *SubmissionRepository) FindByStatus(ctx context.Context, status string) ([]entities.Submission, error) {
	return r.findMany(ctx, psql.Select(submissionFields).
		From(r.table).
		Where(sq.Eq{"status": status}).
		OrderBy("created_at DESC"))
}

func (r *SubmissionRepository) FindAll(ctx context.Context) ([]entities.Submission, error) {
	return r.findMany(ctx, psql.Select(submissionFields).
		From(r.table).
		OrderBy("created_at DESC"))
}

func (r *SubmissionRepository) findMany(ctx context.Context, builder sq.SelectBuilder) ([]entities.Submission, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]entities.Submission, 0)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateStatus переводит запись из статуса from в to.
// Если запись не найдена или уже не в статусе from — ErrNotFound.
func (r *SubmissionRepository) UpdateStatus(ctx context.Context, id string, from string, to string) error {
	query, args, err := psql.Update(r.table).
		Set("status", to).
		Where(sq.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanSubmission(row pgx.Row) (*entities.Submission, error) {
	var sub entities.Submission
	var createdAt time.Time
	var dataJSON []byte

	if err := row.Scan(&sub.ID, &sub.Status, &createdAt, &dataJSON); err != nil {
		return nil, err
	}

	sub.CreatedAt = createdAt.Local()
	if err := json.Unmarshal(dataJSON, &sub.Data); err != nil {
		return nil, err
	}
	return &sub, nil
}
