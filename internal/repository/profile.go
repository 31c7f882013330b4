package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Admintools08/BP/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
}

type profileRepository struct {
	db sqlx.ExtContext
}

func NewProfileRepository(db sqlx.ExtContext) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := sqlx.GetContext(ctx, r.db, &profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, user_id, full_name, position, department, join_date,
			existing_skills, learning_interests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, profile.ID, profile.UserID, profile.FullName, profile.Position, profile.Department, profile.JoinDate,
		profile.ExistingSkills, profile.LearningInterests, profile.CreatedAt, profile.UpdatedAt)

	return err
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET full_name = $1, position = $2, department = $3, join_date = $4,
			existing_skills = $5, learning_interests = $6, updated_at = $7
		WHERE user_id = $8
	`, profile.FullName, profile.Position, profile.Department, profile.JoinDate,
		profile.ExistingSkills, profile.LearningInterests, profile.UpdatedAt, profile.UserID)
	if err != nil {
		return err
	}

	return affected(result, ErrProfileNotFound)
}
