package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Admintools08/BP/internal/config"
	"github.com/Admintools08/BP/internal/db"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// OpenTestDB opens a migrated SQLite database in a temp dir, closed when the test ends.
// The pool holds a single connection so transactions serialize like they would on one writer.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database := open(t)
	database.SetMaxOpenConns(1)
	migrate(t, database)

	return database
}

// OpenPooledTestDB opens a migrated SQLite database with the server's pragmas
// and connection pool, so concurrent callers really run on separate connections.
func OpenPooledTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database := open(t)
	migrate(t, database)

	return database
}

func open(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?"+config.SQLitePragmas)
	require.NoError(t, err, "open test db")

	t.Cleanup(func() { _ = database.Close() })
	return database
}

func migrate(t *testing.T, database *sqlx.DB) {
	t.Helper()

	err := db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err, "migrate test db")
}

// CreateUser inserts a user row so goals and milestones can reference it.
func CreateUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "x",
		Role:         model.RoleEmployee,
		CreatedAt:    time.Now().UTC(),
	}
	err := repository.NewUserRepository(database).Create(context.Background(), user)
	require.NoError(t, err, "create user")

	return user
}
