package jobinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/gocraft/dbr/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresJobRepository implements job.Repository using PostgreSQL. Plain
// CRUD goes through sqlx; predicate searches are compiled with dbr.
type PostgresJobRepository struct {
	db   *sqlx.DB
	sess *dbr.Session
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB, sess *dbr.Session) *PostgresJobRepository {
	return &PostgresJobRepository{
		db:   db,
		sess: sess,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobRow struct {
	ID                  string         `db:"id"`
	Title               string         `db:"title"`
	Description         string         `db:"description"`
	Responsibilities    sql.NullString `db:"responsibilities"`
	Requirements        sql.NullString `db:"requirements"`
	PreferredSkills     sql.NullString `db:"preferred_skills"`
	CompanyID           string         `db:"company_id"`
	Location            sql.NullString `db:"location"`
	LocationType        string         `db:"location_type"`
	SalaryMin           sql.NullInt64  `db:"salary_min"`
	SalaryMax           sql.NullInt64  `db:"salary_max"`
	SalaryCurrency      string         `db:"salary_currency"`
	SalaryPeriod        string         `db:"salary_period"`
	JobType             string         `db:"job_type"`
	ExperienceLevel     string         `db:"experience_level"`
	ApplicationLink     string         `db:"application_link"`
	ApplicationDeadline sql.NullTime   `db:"application_deadline"`
	PostedDate          time.Time      `db:"posted_date"`
	IsActive            bool           `db:"is_active"`
	ViewCount           int64          `db:"view_count"`
	ClickCount          int64          `db:"click_count"`
	ImageURL            sql.NullString `db:"image_url"`
	QRCodeURL           sql.NullString `db:"qr_code_url"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

var jobColumns = []string{
	"j.id", "j.title", "j.description", "j.responsibilities", "j.requirements",
	"j.preferred_skills", "j.company_id", "j.location", "j.location_type",
	"j.salary_min", "j.salary_max", "j.salary_currency", "j.salary_period",
	"j.job_type", "j.experience_level", "j.application_link", "j.application_deadline",
	"j.posted_date", "j.is_active", "j.view_count", "j.click_count",
	"j.image_url", "j.qr_code_url", "j.created_at", "j.updated_at",
}

const selectJob = `SELECT j.id, j.title, j.description, j.responsibilities, j.requirements,
	j.preferred_skills, j.company_id, j.location, j.location_type,
	j.salary_min, j.salary_max, j.salary_currency, j.salary_period,
	j.job_type, j.experience_level, j.application_link, j.application_deadline,
	j.posted_date, j.is_active, j.view_count, j.click_count,
	j.image_url, j.qr_code_url, j.created_at, j.updated_at
	FROM jobs j`

// toEntity converts database model to domain entity
func (m *jobRow) toEntity() *job.Job {
	j := &job.Job{
		ID:               kernel.JobID(m.ID),
		Title:            m.Title,
		Description:      m.Description,
		Responsibilities: nullString(m.Responsibilities),
		Requirements:     nullString(m.Requirements),
		PreferredSkills:  nullString(m.PreferredSkills),
		CompanyID:        kernel.CompanyID(m.CompanyID),
		Location:         nullString(m.Location),
		LocationType:     job.LocationType(m.LocationType),
		SalaryCurrency:   m.SalaryCurrency,
		SalaryPeriod:     job.SalaryPeriod(m.SalaryPeriod),
		JobType:          job.JobType(m.JobType),
		ExperienceLevel:  job.ExperienceLevel(m.ExperienceLevel),
		ApplicationLink:  m.ApplicationLink,
		PostedDate:       m.PostedDate,
		IsActive:         m.IsActive,
		ViewCount:        m.ViewCount,
		ClickCount:       m.ClickCount,
		ImageURL:         nullString(m.ImageURL),
		QRCodeURL:        nullString(m.QRCodeURL),
		DomainIDs:        []kernel.DomainID{},
		SubdomainIDs:     []kernel.SubdomainID{},
		Skills:           []job.JobSkill{},
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.SalaryMin.Valid {
		v := m.SalaryMin.Int64
		j.SalaryMin = &v
	}
	if m.SalaryMax.Valid {
		v := m.SalaryMax.Int64
		j.SalaryMax = &v
	}
	if m.ApplicationDeadline.Valid {
		v := m.ApplicationDeadline.Time
		j.ApplicationDeadline = &v
	}
	return j
}

func nullString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// ============================================================================
// Writes
// ============================================================================

// Create inserts the job and its links in one transaction
func (r *PostgresJobRepository) Create(ctx context.Context, j *job.Job) error {
	err := dbx.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO jobs (
				id, title, description, responsibilities, requirements, preferred_skills,
				company_id, location, location_type, salary_min, salary_max, salary_currency,
				salary_period, job_type, experience_level, application_link, application_deadline,
				posted_date, is_active, view_count, click_count, image_url, qr_code_url,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
			)`,
			j.ID, j.Title, j.Description, j.Responsibilities, j.Requirements, j.PreferredSkills,
			j.CompanyID, j.Location, j.LocationType, j.SalaryMin, j.SalaryMax, j.SalaryCurrency,
			j.SalaryPeriod, j.JobType, j.ExperienceLevel, j.ApplicationLink, j.ApplicationDeadline,
			j.PostedDate, j.IsActive, j.ViewCount, j.ClickCount, j.ImageURL, j.QRCodeURL,
			j.CreatedAt, j.UpdatedAt,
		)
		if err != nil {
			return err
		}
		return insertLinks(ctx, tx, j)
	})
	if dbx.IsUniqueViolation(err) {
		return job.ErrJobAlreadyExists().WithDetail("job_id", j.ID)
	}
	if dbx.IsForeignKeyViolation(err) {
		return job.ErrUnknownReference().WithDetail("job_id", j.ID)
	}
	return storageErr(err)
}

// Update rewrites the job row and replaces its links
func (r *PostgresJobRepository) Update(ctx context.Context, j *job.Job) error {
	err := dbx.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE jobs SET
				title = $2, description = $3, responsibilities = $4, requirements = $5,
				preferred_skills = $6, company_id = $7, location = $8, location_type = $9,
				salary_min = $10, salary_max = $11, salary_currency = $12, salary_period = $13,
				job_type = $14, experience_level = $15, application_link = $16,
				application_deadline = $17, posted_date = $18, is_active = $19,
				image_url = $20, qr_code_url = $21, updated_at = $22
			WHERE id = $1`,
			j.ID, j.Title, j.Description, j.Responsibilities, j.Requirements,
			j.PreferredSkills, j.CompanyID, j.Location, j.LocationType,
			j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.SalaryPeriod,
			j.JobType, j.ExperienceLevel, j.ApplicationLink,
			j.ApplicationDeadline, j.PostedDate, j.IsActive,
			j.ImageURL, j.QRCodeURL, j.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if err := requireRow(result); err != nil {
			return err
		}
		for _, table := range []string{"job_domains", "job_subdomains", "job_skills"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE job_id = $1`, j.ID); err != nil {
				return err
			}
		}
		return insertLinks(ctx, tx, j)
	})
	if dbx.IsForeignKeyViolation(err) {
		return job.ErrUnknownReference().WithDetail("job_id", j.ID)
	}
	return storageErr(err)
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, j *job.Job) error {
	for i, id := range j.DomainIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO job_domains (job_id, domain_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			j.ID, id, i); err != nil {
			return err
		}
	}
	for i, id := range j.SubdomainIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO job_subdomains (job_id, subdomain_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
			j.ID, id, i); err != nil {
			return err
		}
	}
	for i, s := range j.Skills {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO job_skills (job_id, skill_id, is_primary, position) VALUES ($1, $2, $3, $4) ON CONFLICT DO NOTHING`,
			j.ID, s.SkillID, s.IsPrimary, i); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a job; links cascade
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return storageErr(err)
	}
	return requireRow(result)
}

// IncrementViewCount adds n to the view counter in a single statement
func (r *PostgresJobRepository) IncrementViewCount(ctx context.Context, id kernel.JobID, n int64) error {
	return r.increment(ctx, `UPDATE jobs SET view_count = view_count + $2 WHERE id = $1`, id, n)
}

// IncrementClickCount adds n to the click counter in a single statement
func (r *PostgresJobRepository) IncrementClickCount(ctx context.Context, id kernel.JobID, n int64) error {
	return r.increment(ctx, `UPDATE jobs SET click_count = click_count + $2 WHERE id = $1`, id, n)
}

func (r *PostgresJobRepository) increment(ctx context.Context, query string, id kernel.JobID, n int64) error {
	result, err := r.db.ExecContext(ctx, query, id, n)
	if err != nil {
		return storageErr(err)
	}
	return requireRow(result)
}

func (r *PostgresJobRepository) SetShareImage(ctx context.Context, id kernel.JobID, imageURL, qrCodeURL string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET image_url = NULLIF($2, ''), qr_code_url = NULLIF($3, ''), updated_at = $4 WHERE id = $1`,
		id, imageURL, qrCodeURL, at)
	if err != nil {
		return storageErr(err)
	}
	return requireRow(result)
}

// DeactivateMatching flips is_active off for every active job matching p
func (r *PostgresJobRepository) DeactivateMatching(ctx context.Context, p job.Predicate, at time.Time) (int64, error) {
	result, err := deactivateStatement(r.sess.Update("jobs"), p, at).ExecContext(ctx)
	if err != nil {
		return 0, storageErr(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

// deactivateStatement completes an update of the jobs table. The predicate is
// written against the alias j, so it narrows an id subquery.
func deactivateStatement(stmt *dbr.UpdateStmt, p job.Predicate, at time.Time) *dbr.UpdateStmt {
	active := dbr.Select("j.id").From(dbr.I("jobs").As("j")).Where("j.is_active = ?", true)
	if cond := condition(p); cond != nil {
		active.Where(cond)
	}
	return stmt.
		Set("is_active", false).
		Set("updated_at", at).
		Where(dbr.Expr("id IN ?", active))
}

// ============================================================================
// Reads
// ============================================================================

// GetByID retrieves a job with its links
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var row jobRow
	err := r.db.GetContext(ctx, &row, selectJob+` WHERE j.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, job.ErrJobNotFound().WithDetail("job_id", id)
	}
	if err != nil {
		return nil, storageErr(err)
	}

	jobs := []*job.Job{row.toEntity()}
	if err := r.loadLinks(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs[0], nil
}

// GetByIDs returns the jobs that exist, in the order of ids
func (r *PostgresJobRepository) GetByIDs(ctx context.Context, ids []kernel.JobID) ([]*job.Job, error) {
	if len(ids) == 0 {
		return []*job.Job{}, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, selectJob+` WHERE j.id = ANY($1)`, pq.Array(raw)); err != nil {
		return nil, storageErr(err)
	}

	byID := make(map[kernel.JobID]*job.Job, len(rows))
	loaded := make([]*job.Job, 0, len(rows))
	for i := range rows {
		j := rows[i].toEntity()
		byID[j.ID] = j
		loaded = append(loaded, j)
	}
	if err := r.loadLinks(ctx, loaded); err != nil {
		return nil, err
	}

	out := make([]*job.Job, 0, len(loaded))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
			delete(byID, id)
		}
	}
	return out, nil
}

// Count returns how many jobs match p
func (r *PostgresJobRepository) Count(ctx context.Context, p job.Predicate) (int, error) {
	stmt := r.sess.Select("COUNT(*)").From(dbr.I("jobs").As("j"))
	if cond := condition(p); cond != nil {
		stmt.Where(cond)
	}
	var total int
	if err := stmt.LoadOneContext(ctx, &total); err != nil {
		return 0, storageErr(err)
	}
	return total, nil
}

// FindMany returns one ordered window of the jobs matching p
func (r *PostgresJobRepository) FindMany(ctx context.Context, p job.Predicate, o job.Ordering, w job.Window) ([]*job.Job, error) {
	stmt := findStatement(r.sess.Select(jobColumns...), p, o, w)

	var rows []jobRow
	if _, err := stmt.LoadContext(ctx, &rows); err != nil {
		return nil, storageErr(err)
	}

	jobs := make([]*job.Job, 0, len(rows))
	for i := range rows {
		jobs = append(jobs, rows[i].toEntity())
	}
	if err := r.loadLinks(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// findStatement completes a column selection into the windowed search query
func findStatement(stmt *dbr.SelectStmt, p job.Predicate, o job.Ordering, w job.Window) *dbr.SelectStmt {
	stmt.From(dbr.I("jobs").As("j"))
	if cond := condition(p); cond != nil {
		stmt.Where(cond)
	}
	applyOrdering(stmt, o)
	if w.Take > 0 {
		stmt.Limit(uint64(w.Take))
	}
	if w.Skip > 0 {
		stmt.Offset(uint64(w.Skip))
	}
	return stmt
}

// CountByCompany counts jobs referencing a company
func (r *PostgresJobRepository) CountByCompany(ctx context.Context, companyID kernel.CompanyID) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID); err != nil {
		return 0, storageErr(err)
	}
	return n, nil
}

type linkRow struct {
	JobID     string `db:"job_id"`
	RefID     string `db:"ref_id"`
	IsPrimary bool   `db:"is_primary"`
}

// loadLinks attaches domain, subdomain and skill links with one query per kind
func (r *PostgresJobRepository) loadLinks(ctx context.Context, jobs []*job.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	byID := make(map[kernel.JobID]*job.Job, len(jobs))
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
		ids = append(ids, j.ID.String())
	}

	var domains []linkRow
	if err := r.db.SelectContext(ctx, &domains, `
		SELECT job_id, domain_id AS ref_id FROM job_domains
		WHERE job_id = ANY($1) ORDER BY job_id, position`, pq.Array(ids)); err != nil {
		return storageErr(err)
	}
	for _, l := range domains {
		j := byID[kernel.JobID(l.JobID)]
		j.DomainIDs = append(j.DomainIDs, kernel.DomainID(l.RefID))
	}

	var subdomains []linkRow
	if err := r.db.SelectContext(ctx, &subdomains, `
		SELECT job_id, subdomain_id AS ref_id FROM job_subdomains
		WHERE job_id = ANY($1) ORDER BY job_id, position`, pq.Array(ids)); err != nil {
		return storageErr(err)
	}
	for _, l := range subdomains {
		j := byID[kernel.JobID(l.JobID)]
		j.SubdomainIDs = append(j.SubdomainIDs, kernel.SubdomainID(l.RefID))
	}

	var skills []linkRow
	if err := r.db.SelectContext(ctx, &skills, `
		SELECT job_id, skill_id AS ref_id, is_primary FROM job_skills
		WHERE job_id = ANY($1) ORDER BY job_id, position`, pq.Array(ids)); err != nil {
		return storageErr(err)
	}
	for _, l := range skills {
		j := byID[kernel.JobID(l.JobID)]
		j.Skills = append(j.Skills, job.JobSkill{SkillID: kernel.SkillID(l.RefID), IsPrimary: l.IsPrimary})
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}
	return nil
}

// storageErr classifies driver errors; domain errors pass through
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	var e *errx.Error
	if errors.As(err, &e) {
		return err
	}
	if dbx.IsUnavailable(err) {
		return job.ErrStorageUnavailable(err)
	}
	return job.ErrStorageFailure(err)
}
