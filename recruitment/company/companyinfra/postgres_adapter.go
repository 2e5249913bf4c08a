package companyinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresCompanyRepository struct {
	db *sqlx.DB
}

func NewPostgresCompanyRepository(db *sqlx.DB) company.Repository {
	return &PostgresCompanyRepository{db: db}
}

// companyRow represents a row from the companies table
type companyRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Logo        sql.NullString `db:"logo"`
	Website     sql.NullString `db:"website"`
	Description sql.NullString `db:"description"`
	Industry    pq.StringArray `db:"industry"`
	Size        sql.NullString `db:"size"`
	Location    sql.NullString `db:"location"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

const companyColumns = `id, name, logo, website, description, industry, size, location, created_at, updated_at`

func (r *companyRow) toEntity() *company.Company {
	c := &company.Company{
		ID:          kernel.CompanyID(r.ID),
		Name:        r.Name,
		Logo:        nullString(r.Logo),
		Website:     nullString(r.Website),
		Description: nullString(r.Description),
		Industry:    []string(r.Industry),
		Location:    nullString(r.Location),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if c.Industry == nil {
		c.Industry = []string{}
	}
	if r.Size.Valid && r.Size.String != "" {
		size := company.CompanySize(r.Size.String)
		c.Size = &size
	}
	return c
}

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (
			id, name, logo, website, description,
			industry, size, location, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Logo,
		c.Website,
		c.Description,
		pq.Array(c.Industry),
		sizeValue(c.Size),
		c.Location,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if dbx.IsUniqueViolation(err) {
		return company.ErrCompanyAlreadyExists().WithDetail("name", c.Name)
	}
	return dbx.Wrap(err)
}

// Update updates an existing company
func (r *PostgresCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	query := `
		UPDATE companies
		SET
			name = $2,
			logo = $3,
			website = $4,
			description = $5,
			industry = $6,
			size = $7,
			location = $8,
			updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Logo,
		c.Website,
		c.Description,
		pq.Array(c.Industry),
		sizeValue(c.Size),
		c.Location,
		c.UpdatedAt,
	)
	if dbx.IsUniqueViolation(err) {
		return company.ErrCompanyAlreadyExists().WithDetail("name", c.Name)
	}
	if err != nil {
		return dbx.Wrap(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound()
	}
	return nil
}

// Delete deletes a company by ID
func (r *PostgresCompanyRepository) Delete(ctx context.Context, id kernel.CompanyID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if dbx.IsForeignKeyViolation(err) {
		return company.ErrCompanyHasJobs().WithDetail("company_id", id.String())
	}
	if err != nil {
		return dbx.Wrap(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound()
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	var row companyRow
	err := r.db.GetContext(ctx, &row, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, company.ErrCompanyNotFound().WithDetail("company_id", id.String())
	}
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return row.toEntity(), nil
}

// GetByIDs retrieves the companies whose id is in ids
func (r *PostgresCompanyRepository) GetByIDs(ctx context.Context, ids []kernel.CompanyID) ([]*company.Company, error) {
	if len(ids) == 0 {
		return []*company.Company{}, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var rows []companyRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+companyColumns+` FROM companies WHERE id = ANY($1)`, pq.Array(raw))
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	out := make([]*company.Company, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// List retrieves companies ordered by name
func (r *PostgresCompanyRepository) List(ctx context.Context, opts kernel.PaginationOptions) (*kernel.Paginated[company.Company], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM companies`); err != nil {
		return nil, dbx.Wrap(err)
	}

	var rows []companyRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+companyColumns+` FROM companies ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`,
		opts.Limit(), opts.Offset())
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	items := make([]company.Company, 0, len(rows))
	for i := range rows {
		items = append(items, *rows[i].toEntity())
	}
	return kernel.NewPaginated(items, opts, total), nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}

func sizeValue(s *company.CompanySize) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
