package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repositories bundles every repository bound to one querier, either the
// connection pool or an open transaction.
type Repositories struct {
	Users      UserRepository
	Profiles   ProfileRepository
	Goals      GoalRepository
	Milestones MilestoneRepository
	Resources  ResourceRepository
	Files      FileRepository
}

func New(q sqlx.ExtContext) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(q),
		Profiles:   NewProfileRepository(q),
		Goals:      NewGoalRepository(q),
		Milestones: NewMilestoneRepository(q),
		Resources:  NewResourceRepository(q),
		Files:      NewFileRepository(q),
	}
}

// Transactor runs fn against repositories bound to a single transaction.
// The transaction commits only if fn returns nil.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx *Repositories) error) error
}

type sqlTransactor struct {
	db *sqlx.DB
}

func NewTransactor(db *sqlx.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) InTx(ctx context.Context, fn func(tx *Repositories) error) error {
	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = fn(New(tx))
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// affected maps a zero-row write to notFound.
func affected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
