package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Admintools08/BP/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
)

type ResourceRepository interface {
	// Increment creates the resource on first use and otherwise adds one use
	// and hours to it in a single statement.
	Increment(ctx context.Context, name string, hours float64, at time.Time) error
	// Decrement removes one use and hours, never going below zero.
	Decrement(ctx context.Context, name string, hours float64, at time.Time) error
	AddSkills(ctx context.Context, name string, skills []string) error
	ByName(ctx context.Context, name string) (*model.Resource, error)
	Resources(ctx context.Context) ([]*model.Resource, error)
}

type resourceRepository struct {
	db sqlx.ExtContext
}

func NewResourceRepository(db sqlx.ExtContext) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Increment(ctx context.Context, name string, hours float64, at time.Time) error {
	query := `INSERT INTO resources (name, usage_count, total_hours, created_at, updated_at)
	          VALUES ($1, 1, $2, $3, $4)
	          ON CONFLICT (name) DO UPDATE
	          SET usage_count = resources.usage_count + 1,
	              total_hours = resources.total_hours + excluded.total_hours,
	              updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, name, hours, at, at)
	return err
}

func (r *resourceRepository) Decrement(ctx context.Context, name string, hours float64, at time.Time) error {
	query := `UPDATE resources
	          SET usage_count = CASE WHEN usage_count > 0 THEN usage_count - 1 ELSE 0 END,
	              total_hours = CASE WHEN total_hours > $1 THEN total_hours - $2 ELSE 0 END,
	              updated_at = $3
	          WHERE name = $4`

	result, err := r.db.ExecContext(ctx, query, hours, hours, at, name)
	if err != nil {
		return err
	}

	return affected(result, ErrResourceNotFound)
}

func (r *resourceRepository) AddSkills(ctx context.Context, name string, skills []string) error {
	query := `INSERT INTO resource_skills (resource_name, skill) VALUES ($1, $2)
	          ON CONFLICT (resource_name, skill) DO NOTHING`

	for _, skill := range skills {
		_, err := r.db.ExecContext(ctx, query, name, skill)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *resourceRepository) ByName(ctx context.Context, name string) (*model.Resource, error) {
	resource := &model.Resource{}
	err := sqlx.GetContext(ctx, r.db, resource, `SELECT * FROM resources WHERE name = $1`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}

	skills := []string{}
	err = sqlx.SelectContext(ctx, r.db, &skills,
		`SELECT skill FROM resource_skills WHERE resource_name = $1 ORDER BY skill ASC`, name)
	if err != nil {
		return nil, err
	}
	resource.SkillsTaught = skills

	return resource, nil
}

func (r *resourceRepository) Resources(ctx context.Context) ([]*model.Resource, error) {
	resources := []*model.Resource{}
	err := sqlx.SelectContext(ctx, r.db, &resources,
		`SELECT * FROM resources ORDER BY usage_count DESC, name ASC`)
	if err != nil {
		return nil, err
	}

	type resourceSkill struct {
		ResourceName string `db:"resource_name"`
		Skill        string `db:"skill"`
	}
	var rows []resourceSkill
	err = sqlx.SelectContext(ctx, r.db, &rows,
		`SELECT resource_name, skill FROM resource_skills ORDER BY resource_name ASC, skill ASC`)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]string, len(resources))
	for _, row := range rows {
		byName[row.ResourceName] = append(byName[row.ResourceName], row.Skill)
	}
	for _, res := range resources {
		res.SkillsTaught = byName[res.Name]
		if res.SkillsTaught == nil {
			res.SkillsTaught = []string{}
		}
	}

	return resources, nil
}
