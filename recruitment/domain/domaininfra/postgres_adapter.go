package domaininfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/gocraft/dbr/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresDomainRepository struct {
	db   *sqlx.DB
	sess *dbr.Session
}

func NewPostgresDomainRepository(db *sqlx.DB, sess *dbr.Session) domain.Repository {
	return &PostgresDomainRepository{db: db, sess: sess}
}

type domainRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type subdomainRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	DomainID    string         `db:"domain_id"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type popularRow struct {
	domainRow
	ActiveJobs int `db:"active_jobs"`
}

func (r *domainRow) toEntity() *domain.Domain {
	return &domain.Domain{
		ID:          kernel.DomainID(r.ID),
		Name:        r.Name,
		Description: nullString(r.Description),
		Subdomains:  []domain.Subdomain{},
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *subdomainRow) toEntity() *domain.Subdomain {
	return &domain.Subdomain{
		ID:          kernel.SubdomainID(r.ID),
		Name:        r.Name,
		Description: nullString(r.Description),
		DomainID:    kernel.DomainID(r.DomainID),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

const (
	domainColumns    = `id, name, description, created_at, updated_at`
	subdomainColumns = `id, name, description, domain_id, created_at, updated_at`
)

// Create creates a new domain
func (r *PostgresDomainRepository) Create(ctx context.Context, d *domain.Domain) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO domains (id, name, description, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Name, d.Description, d.CreatedAt, d.UpdatedAt)
	if dbx.IsUniqueViolation(err) {
		return domain.ErrDomainAlreadyExists().WithDetail("name", d.Name)
	}
	return dbx.Wrap(err)
}

// Update updates name and description
func (r *PostgresDomainRepository) Update(ctx context.Context, d *domain.Domain) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE domains SET name = $2, description = $3, updated_at = $4 WHERE id = $1`,
		d.ID, d.Name, d.Description, d.UpdatedAt)
	if dbx.IsUniqueViolation(err) {
		return domain.ErrDomainAlreadyExists().WithDetail("name", d.Name)
	}
	if err != nil {
		return dbx.Wrap(err)
	}
	return requireRow(result, domain.ErrDomainNotFound())
}

// Delete deletes a domain; subdomains and job links cascade
func (r *PostgresDomainRepository) Delete(ctx context.Context, id kernel.DomainID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM domains WHERE id = $1`, id)
	if err != nil {
		return dbx.Wrap(err)
	}
	return requireRow(result, domain.ErrDomainNotFound())
}

// GetByID retrieves a domain with its subdomains
func (r *PostgresDomainRepository) GetByID(ctx context.Context, id kernel.DomainID) (*domain.Domain, error) {
	return r.getOne(ctx, `SELECT `+domainColumns+` FROM domains WHERE id = $1`, id)
}

// GetByName retrieves a domain with its subdomains
func (r *PostgresDomainRepository) GetByName(ctx context.Context, name string) (*domain.Domain, error) {
	return r.getOne(ctx, `SELECT `+domainColumns+` FROM domains WHERE name = $1`, name)
}

func (r *PostgresDomainRepository) getOne(ctx context.Context, query string, arg any) (*domain.Domain, error) {
	var row domainRow
	err := r.db.GetContext(ctx, &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDomainNotFound()
	}
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	d := row.toEntity()
	if err := r.attachSubdomains(ctx, []*domain.Domain{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByIDs retrieves the domains whose id is in ids
func (r *PostgresDomainRepository) GetByIDs(ctx context.Context, ids []kernel.DomainID) ([]*domain.Domain, error) {
	if len(ids) == 0 {
		return []*domain.Domain{}, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var rows []domainRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+domainColumns+` FROM domains WHERE id = ANY($1) ORDER BY name ASC, id ASC`, pq.Array(raw)); err != nil {
		return nil, dbx.Wrap(err)
	}
	return r.withSubdomains(ctx, rows)
}

// List retrieves all domains ordered by name
func (r *PostgresDomainRepository) List(ctx context.Context) ([]*domain.Domain, error) {
	var rows []domainRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+domainColumns+` FROM domains ORDER BY name ASC, id ASC`); err != nil {
		return nil, dbx.Wrap(err)
	}
	return r.withSubdomains(ctx, rows)
}

func (r *PostgresDomainRepository) withSubdomains(ctx context.Context, rows []domainRow) ([]*domain.Domain, error) {
	out := make([]*domain.Domain, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	if err := r.attachSubdomains(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachSubdomains loads the subdomains of all domains in one query
func (r *PostgresDomainRepository) attachSubdomains(ctx context.Context, domains []*domain.Domain) error {
	if len(domains) == 0 {
		return nil
	}
	byID := make(map[kernel.DomainID]*domain.Domain, len(domains))
	raw := make([]string, 0, len(domains))
	for _, d := range domains {
		byID[d.ID] = d
		raw = append(raw, d.ID.String())
	}

	var rows []subdomainRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+subdomainColumns+` FROM subdomains WHERE domain_id = ANY($1) ORDER BY name ASC, id ASC`,
		pq.Array(raw)); err != nil {
		return dbx.Wrap(err)
	}

	for i := range rows {
		if d, ok := byID[kernel.DomainID(rows[i].DomainID)]; ok {
			d.Subdomains = append(d.Subdomains, *rows[i].toEntity())
		}
	}
	return nil
}

// CreateSubdomain creates a subdomain
func (r *PostgresDomainRepository) CreateSubdomain(ctx context.Context, s *domain.Subdomain) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subdomains (id, name, description, domain_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Description, s.DomainID, s.CreatedAt, s.UpdatedAt)
	if dbx.IsUniqueViolation(err) {
		return domain.ErrSubdomainAlreadyExists().WithDetail("name", s.Name)
	}
	if dbx.IsForeignKeyViolation(err) {
		return domain.ErrDomainNotFound().WithDetail("domain_id", s.DomainID.String())
	}
	return dbx.Wrap(err)
}

// DeleteSubdomain deletes a subdomain
func (r *PostgresDomainRepository) DeleteSubdomain(ctx context.Context, id kernel.SubdomainID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM subdomains WHERE id = $1`, id)
	if err != nil {
		return dbx.Wrap(err)
	}
	return requireRow(result, domain.ErrSubdomainNotFound())
}

// GetSubdomainsByIDs retrieves the subdomains whose id is in ids
func (r *PostgresDomainRepository) GetSubdomainsByIDs(ctx context.Context, ids []kernel.SubdomainID) ([]*domain.Subdomain, error) {
	if len(ids) == 0 {
		return []*domain.Subdomain{}, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var rows []subdomainRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+subdomainColumns+` FROM subdomains WHERE id = ANY($1)`, pq.Array(raw)); err != nil {
		return nil, dbx.Wrap(err)
	}

	out := make([]*domain.Subdomain, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// Popular counts active jobs per domain, skipping domains without any
func (r *PostgresDomainRepository) Popular(ctx context.Context, limit int) ([]domain.PopularDomain, error) {
	var rows []popularRow
	_, err := r.sess.
		Select("d.id", "d.name", "d.description", "d.created_at", "d.updated_at", "COUNT(j.id) AS active_jobs").
		From(dbr.I("domains").As("d")).
		Join(dbr.I("job_domains").As("jd"), "jd.domain_id = d.id").
		Join(dbr.I("jobs").As("j"), "j.id = jd.job_id AND j.is_active = TRUE").
		GroupBy("d.id").
		OrderDesc("active_jobs").
		OrderAsc("d.name").
		Limit(uint64(limit)).
		LoadContext(ctx, &rows)
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	domains := make([]*domain.Domain, 0, len(rows))
	for i := range rows {
		domains = append(domains, rows[i].toEntity())
	}
	if err := r.attachSubdomains(ctx, domains); err != nil {
		return nil, err
	}

	out := make([]domain.PopularDomain, 0, len(rows))
	for i, d := range domains {
		out = append(out, domain.PopularDomain{Domain: *d, ActiveJobs: rows[i].ActiveJobs})
	}
	return out, nil
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	s := ns.String
	return &s
}
