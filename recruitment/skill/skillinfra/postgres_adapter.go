package skillinfra

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/dbx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/skill"
	"github.com/gocraft/dbr/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresSkillRepository struct {
	db   *sqlx.DB
	sess *dbr.Session
}

func NewPostgresSkillRepository(db *sqlx.DB, sess *dbr.Session) skill.Repository {
	return &PostgresSkillRepository{db: db, sess: sess}
}

type skillRow struct {
	ID        string         `db:"id"`
	Name      string         `db:"name"`
	Category  sql.NullString `db:"category"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type popularRow struct {
	skillRow
	ActiveJobs int `db:"active_jobs"`
}

const skillColumns = `id, name, category, created_at, updated_at`

func (r *skillRow) toEntity() *skill.Skill {
	s := &skill.Skill{
		ID:        kernel.SkillID(r.ID),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Category.Valid && r.Category.String != "" {
		c := r.Category.String
		s.Category = &c
	}
	return s
}

// Create creates a new skill
func (r *PostgresSkillRepository) Create(ctx context.Context, s *skill.Skill) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO skills (id, name, category, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Category, s.CreatedAt, s.UpdatedAt)
	if dbx.IsUniqueViolation(err) {
		return skill.ErrSkillAlreadyExists().WithDetail("name", s.Name)
	}
	return dbx.Wrap(err)
}

// Update updates an existing skill
func (r *PostgresSkillRepository) Update(ctx context.Context, s *skill.Skill) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE skills SET name = $2, category = $3, updated_at = $4 WHERE id = $1`,
		s.ID, s.Name, s.Category, s.UpdatedAt)
	if dbx.IsUniqueViolation(err) {
		return skill.ErrSkillAlreadyExists().WithDetail("name", s.Name)
	}
	if err != nil {
		return dbx.Wrap(err)
	}
	return requireRow(result)
}

// Delete deletes a skill; job links cascade
func (r *PostgresSkillRepository) Delete(ctx context.Context, id kernel.SkillID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return dbx.Wrap(err)
	}
	return requireRow(result)
}

// GetByID retrieves a skill by ID
func (r *PostgresSkillRepository) GetByID(ctx context.Context, id kernel.SkillID) (*skill.Skill, error) {
	return r.getOne(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
}

// GetByName retrieves a skill by name
func (r *PostgresSkillRepository) GetByName(ctx context.Context, name string) (*skill.Skill, error) {
	return r.getOne(ctx, `SELECT `+skillColumns+` FROM skills WHERE name = $1`, name)
}

func (r *PostgresSkillRepository) getOne(ctx context.Context, query string, arg any) (*skill.Skill, error) {
	var row skillRow
	err := r.db.GetContext(ctx, &row, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, skill.ErrSkillNotFound()
	}
	if err != nil {
		return nil, dbx.Wrap(err)
	}
	return row.toEntity(), nil
}

// GetByIDs retrieves the skills whose id is in ids
func (r *PostgresSkillRepository) GetByIDs(ctx context.Context, ids []kernel.SkillID) ([]*skill.Skill, error) {
	if len(ids) == 0 {
		return []*skill.Skill{}, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}

	var rows []skillRow
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+skillColumns+` FROM skills WHERE id = ANY($1)`, pq.Array(raw)); err != nil {
		return nil, dbx.Wrap(err)
	}

	out := make([]*skill.Skill, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

// List retrieves a filtered page of skills
func (r *PostgresSkillRepository) List(ctx context.Context, opts skill.ListOptions) (*kernel.Paginated[skill.Skill], error) {
	cond := listCondition(opts)

	count := r.sess.Select("COUNT(*)").From("skills")
	if cond != nil {
		count.Where(cond)
	}
	var total int
	if err := count.LoadOneContext(ctx, &total); err != nil {
		return nil, dbx.Wrap(err)
	}

	stmt := r.sess.Select(strings.Split(skillColumns, ", ")...).From("skills")
	if cond != nil {
		stmt.Where(cond)
	}
	stmt.OrderDir(string(opts.OrderBy), !opts.Desc).
		OrderAsc("id").
		Limit(uint64(opts.Page.Limit())).
		Offset(uint64(opts.Page.Offset()))

	var rows []skillRow
	if _, err := stmt.LoadContext(ctx, &rows); err != nil {
		return nil, dbx.Wrap(err)
	}

	items := make([]skill.Skill, 0, len(rows))
	for i := range rows {
		items = append(items, *rows[i].toEntity())
	}
	return kernel.NewPaginated(items, opts.Page, total), nil
}

func listCondition(opts skill.ListOptions) dbr.Builder {
	var conds []dbr.Builder
	if opts.Category != nil {
		conds = append(conds, dbr.Eq("category", *opts.Category))
	}
	if opts.Search != nil {
		conds = append(conds, dbr.Expr("name ILIKE ? ESCAPE '\\'", "%"+escapeLike(*opts.Search)+"%"))
	}
	if len(conds) == 0 {
		return nil
	}
	return dbr.And(conds...)
}

// Popular counts active jobs per skill, skipping skills without any
func (r *PostgresSkillRepository) Popular(ctx context.Context, limit int) ([]skill.PopularSkill, error) {
	var rows []popularRow
	_, err := r.sess.
		Select("s.id", "s.name", "s.category", "s.created_at", "s.updated_at", "COUNT(j.id) AS active_jobs").
		From(dbr.I("skills").As("s")).
		Join(dbr.I("job_skills").As("js"), "js.skill_id = s.id").
		Join(dbr.I("jobs").As("j"), "j.id = js.job_id AND j.is_active = TRUE").
		GroupBy("s.id").
		OrderDesc("active_jobs").
		OrderAsc("s.name").
		Limit(uint64(limit)).
		LoadContext(ctx, &rows)
	if err != nil {
		return nil, dbx.Wrap(err)
	}

	out := make([]skill.PopularSkill, 0, len(rows))
	for i := range rows {
		out = append(out, skill.PopularSkill{Skill: *rows[i].toEntity(), ActiveJobs: rows[i].ActiveJobs})
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return dbx.Wrap(err)
	}
	if rows == 0 {
		return skill.ErrSkillNotFound()
	}
	return nil
}
