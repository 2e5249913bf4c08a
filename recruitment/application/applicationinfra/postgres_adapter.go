package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/application"
	"github.com/jmoiron/sqlx"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID              string     `db:"id"`
	UserID          string     `db:"user_id"`
	JobID           string     `db:"job_id"`
	Status          string     `db:"status"`
	ClickedAt       time.Time  `db:"clicked_at"`
	StatusChangedAt *time.Time `db:"status_changed_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

const applicationColumns = `id, user_id, job_id, status, clicked_at, status_changed_at, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:              kernel.ApplicationID(m.ID),
		UserID:          kernel.UserID(m.UserID),
		JobID:           kernel.JobID(m.JobID),
		Status:          application.ApplicationStatus(m.Status),
		ClickedAt:       m.ClickedAt,
		StatusChangedAt: m.StatusChangedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// RecordClick upserts on (user_id, job_id); a repeated click only moves
// clicked_at and keeps the status the user reached
func (r *PostgresApplicationRepository) RecordClick(ctx context.Context, app *application.Application) (*application.Application, error) {
	query := `
		INSERT INTO applications (
			id, user_id, job_id, status, clicked_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		ON CONFLICT (user_id, job_id) DO UPDATE SET
			clicked_at = EXCLUDED.clicked_at,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + applicationColumns

	var m applicationModel
	err := r.db.GetContext(ctx, &m, query,
		app.ID,
		app.UserID,
		app.JobID,
		app.Status,
		app.ClickedAt,
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return m.toEntity(), nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	var m applicationModel
	err := r.db.GetContext(ctx, &m, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return m.toEntity(), nil
}

// UpdateStatus compares and sets the status in one statement
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, from, to application.ApplicationStatus, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET status = $3, status_changed_at = $4, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, from, to, at)
	if err != nil {
		return dbx.Wrap(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id); err != nil {
		return dbx.Wrap(err)
	}
	if !exists {
		return application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}
	return application.ErrStatusChanged().
		WithDetail("application_id", id.String()).
		WithDetail("expected", string(from))
}

// ListByUser retrieves a user's applications, most recent click first
func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID kernel.UserID, opts kernel.PaginationOptions) (*kernel.Paginated[application.Application], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID); err != nil {
		return nil, dbx.Wrap(err)
	}

	var models []applicationModel
	err := r.db.SelectContext(ctx, &models, `
		SELECT `+applicationColumns+`
		FROM applications
		WHERE user_id = $1
		ORDER BY clicked_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`, userID, opts.Limit(), opts.Offset())
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	items := make([]application.Application, 0, len(models))
	for i := range models {
		items = append(items, *models[i].toEntity())
	}
	return kernel.NewPaginated(items, opts, total), nil
}

// CountByJob counts applications for a specific job
func (r *PostgresApplicationRepository) CountByJob(ctx context.Context, jobID kernel.JobID) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, jobID); err != nil {
		return 0, dbx.Wrap(err)
	}
	return count, nil
}
