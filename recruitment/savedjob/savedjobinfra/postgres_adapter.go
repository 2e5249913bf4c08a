package savedjobinfra

import (
	"context"

	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/savedjob"
	"github.com/jmoiron/sqlx"
)

type PostgresSavedJobRepository struct {
	db *sqlx.DB
}

func NewPostgresSavedJobRepository(db *sqlx.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Save(ctx context.Context, s *savedjob.SavedJob) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO saved_jobs (user_id, job_id, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`, s.UserID, s.JobID, s.SavedAt)
	if dbx.IsForeignKeyViolation(err) {
		return job.ErrJobNotFound().WithDetail("job_id", s.JobID.String())
	}
	return dbx.Wrap(err)
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return false, dbx.Wrap(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, dbx.Wrap(err)
	}
	return rows > 0, nil
}

func (r *PostgresSavedJobRepository) Exists(ctx context.Context, userID kernel.UserID, jobID kernel.JobID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`, userID, jobID)
	if err != nil {
		return false, dbx.Wrap(err)
	}
	return exists, nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*kernel.Paginated[savedjob.SavedJob], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID); err != nil {
		return nil, dbx.Wrap(err)
	}

	var items []savedjob.SavedJob
	err := r.db.SelectContext(ctx, &items, `
		SELECT user_id, job_id, saved_at
		FROM saved_jobs
		WHERE user_id = $1
		ORDER BY saved_at DESC, job_id ASC
		LIMIT $2 OFFSET $3
	`, userID, opts.Limit(), opts.Offset())
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return kernel.NewPaginated(items, opts, total), nil
}
