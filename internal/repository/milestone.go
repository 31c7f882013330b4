package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Admintools08/BP/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	// ByID looks a milestone up regardless of owner.
	ByID(ctx context.Context, id string) (*model.Milestone, error)
	// Milestones returns every milestone of the user, most recent first.
	Milestones(ctx context.Context, userID string) ([]*model.Milestone, error)
	Count(ctx context.Context, userID string) (int, error)
	Update(ctx context.Context, milestone *model.Milestone) error
	Delete(ctx context.Context, userID, id string) error
}

type milestoneRepository struct {
	db sqlx.ExtContext
}

func NewMilestoneRepository(db sqlx.ExtContext) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Create(ctx context.Context, m *model.Milestone) error {
	query := `INSERT INTO milestones (id, user_id, goal_id, what_learned, learning_source, hours_invested,
	              can_teach_others, certificate_link, skill_tags, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.GoalID,
		m.WhatLearned,
		m.LearningSource,
		m.HoursInvested,
		m.CanTeachOthers,
		m.CertificateLink,
		m.SkillTags,
		m.CreatedAt,
	)

	return err
}

func (r *milestoneRepository) ByID(ctx context.Context, id string) (*model.Milestone, error) {
	milestone := &model.Milestone{}
	query := `SELECT * FROM milestones WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, milestone, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMilestoneNotFound
	}
	if err != nil {
		return nil, err
	}

	return milestone, nil
}

func (r *milestoneRepository) Milestones(ctx context.Context, userID string) ([]*model.Milestone, error) {
	milestones := []*model.Milestone{}
	query := `SELECT * FROM milestones WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	err := sqlx.SelectContext(ctx, r.db, &milestones, query, userID)
	if err != nil {
		return nil, err
	}

	return milestones, nil
}

func (r *milestoneRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowxContext(ctx, `SELECT COUNT(*) FROM milestones WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *milestoneRepository) Update(ctx context.Context, m *model.Milestone) error {
	query := `UPDATE milestones
	          SET what_learned = $1, can_teach_others = $2, certificate_link = $3, skill_tags = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		m.WhatLearned,
		m.CanTeachOthers,
		m.CertificateLink,
		m.SkillTags,
		m.ID,
		m.UserID,
	)
	if err != nil {
		return err
	}

	return affected(result, ErrMilestoneNotFound)
}

func (r *milestoneRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	return affected(result, ErrMilestoneNotFound)
}
