package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Admintools08/BP/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrGoalStatusChanged = errors.New("goal status changed")
)

type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	// ByID looks a goal up regardless of owner so callers can tell
	// "missing" from "someone else's".
	ByID(ctx context.Context, goalID string) (*model.Goal, error)
	Goals(ctx context.Context, userID string) ([]*model.Goal, error)
	CountByStatus(ctx context.Context, userID string, status model.GoalStatus) (int, error)
	Update(ctx context.Context, goal *model.Goal) error
	// Transition writes goal.Status only while the stored status is still from.
	Transition(ctx context.Context, goal *model.Goal, from model.GoalStatus) error
	Delete(ctx context.Context, userID, goalID string) error
}

type goalRepository struct {
	db sqlx.ExtContext
}

func NewGoalRepository(db sqlx.ExtContext) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, target_completion, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.TargetCompletion,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(ctx context.Context, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, goal, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(ctx context.Context, userID string) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC, id DESC`

	err := sqlx.SelectContext(ctx, r.db, &goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountByStatus(ctx context.Context, userID string, status model.GoalStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND status = $2`
	err := r.db.QueryRowxContext(ctx, query, userID, status).Scan(&count)
	return count, err
}

func (r *goalRepository) Update(ctx context.Context, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, target_completion = $3, updated_at = $4
	          WHERE id = $5 AND user_id = $6`

	result, err := r.db.ExecContext(ctx, query,
		goal.Title,
		goal.Description,
		goal.TargetCompletion,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	return affected(result, ErrGoalNotFound)
}

func (r *goalRepository) Transition(ctx context.Context, goal *model.Goal, from model.GoalStatus) error {
	query := `UPDATE goals
	          SET status = $1, updated_at = $2
	          WHERE id = $3 AND user_id = $4 AND status = $5`

	result, err := r.db.ExecContext(ctx, query,
		goal.Status,
		goal.UpdatedAt,
		goal.ID,
		goal.UserID,
		from,
	)
	if err != nil {
		return err
	}

	return affected(result, ErrGoalStatusChanged)
}

func (r *goalRepository) Delete(ctx context.Context, userID, goalID string) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, goalID, userID)
	if err != nil {
		return err
	}

	return affected(result, ErrGoalNotFound)
}
