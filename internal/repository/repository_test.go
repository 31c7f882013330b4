package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

func ptr(s string) *string { return &s }

func TestUserRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(db)

	user := testutil.CreateUser(t, db, "ada@example.com")

	got, err := repo.ByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	err = repo.Create(ctx, &model.User{ID: "other", Email: "ada@example.com", PasswordHash: "x", Role: model.RoleEmployee, CreatedAt: t0})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	_, err = repo.ByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestProfileRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := repository.NewProfileRepository(db)
	user := testutil.CreateUser(t, db, "ada@example.com")

	profile := &model.Profile{
		ID:                "p1",
		UserID:            user.ID,
		FullName:          "Ada Lovelace",
		JoinDate:          "2025-01-06",
		ExistingSkills:    model.StringSet{"Go"},
		LearningInterests: model.StringSet{"Rust", "SQL"},
		CreatedAt:         t0,
		UpdatedAt:         t0,
	}
	require.NoError(t, repo.Create(ctx, profile))

	got, err := repo.ByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, model.StringSet{"Rust", "SQL"}, got.LearningInterests)

	got.Department = "Platform"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.ByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Platform", got.Department)

	_, err = repo.ByUserID(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestGoalRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := repository.NewGoalRepository(db)
	user := testutil.CreateUser(t, db, "ada@example.com")

	for i, id := range []string{"g1", "g2", "g3"} {
		at := t0.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, &model.Goal{
			ID: id, UserID: user.ID, Title: "Goal " + id, Description: "d",
			TargetCompletion: "2026-06-30", Status: model.GoalStatusActive,
			CreatedAt: at, UpdatedAt: at,
		}))
	}

	goals, err := repo.Goals(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "g3", goals[0].ID)
	assert.True(t, goals[0].CreatedAt.Equal(t0.Add(2*time.Hour)))

	goals[0].Status = model.GoalStatusCompleted
	require.NoError(t, repo.Transition(ctx, goals[0], model.GoalStatusActive))

	// The stored status is no longer active, so a second move is refused.
	goals[0].Status = model.GoalStatusAbandoned
	err = repo.Transition(ctx, goals[0], model.GoalStatusActive)
	assert.ErrorIs(t, err, repository.ErrGoalStatusChanged)

	// Descriptive updates never write the status column.
	goals[0].Title = "Renamed"
	goals[0].Status = model.GoalStatusActive
	require.NoError(t, repo.Update(ctx, goals[0]))
	stored, err := repo.ByID(ctx, "g3")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, model.GoalStatusCompleted, stored.Status)

	count, err := repo.CountByStatus(ctx, user.ID, model.GoalStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = repo.Delete(ctx, "someone-else", "g1")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID, "g1"))
	_, err = repo.ByID(ctx, "g1")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestMilestoneRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := repository.NewMilestoneRepository(db)
	user := testutil.CreateUser(t, db, "ada@example.com")

	m := &model.Milestone{
		ID:              "m1",
		UserID:          user.ID,
		GoalID:          ptr("gone"),
		WhatLearned:     "ownership",
		LearningSource:  "Rustlings",
		HoursInvested:   1.5,
		CanTeachOthers:  true,
		CertificateLink: ptr("https://example.com/cert"),
		SkillTags:       model.StringSet{"rust"},
		CreatedAt:       t0,
	}
	require.NoError(t, repo.Create(ctx, m))
	require.NoError(t, repo.Create(ctx, &model.Milestone{
		ID: "m2", UserID: user.ID, WhatLearned: "borrowing", LearningSource: "Rustlings",
		HoursInvested: 0, CreatedAt: t0.Add(time.Minute),
	}))

	got, err := repo.ByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.HoursInvested)
	assert.True(t, got.CanTeachOthers)
	require.NotNil(t, got.GoalID)
	assert.Equal(t, "gone", *got.GoalID)
	assert.Equal(t, model.StringSet{"rust"}, got.SkillTags)
	assert.True(t, got.CreatedAt.Equal(t0))

	list, err := repo.Milestones(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "m2", list[0].ID)
	assert.Nil(t, list[0].GoalID)
	assert.Empty(t, list[0].SkillTags)

	count, err := repo.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = repo.Create(ctx, &model.Milestone{
		ID: "neg", UserID: user.ID, WhatLearned: "x", LearningSource: "y", HoursInvested: -1, CreatedAt: t0,
	})
	assert.Error(t, err, "hours check constraint")

	require.NoError(t, repo.Delete(ctx, user.ID, "m1"))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID, "m1"), repository.ErrMilestoneNotFound)
}

func TestResourceRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := repository.NewResourceRepository(db)

	require.NoError(t, repo.Increment(ctx, "Rustlings", 3, t0))
	require.NoError(t, repo.Increment(ctx, "Rustlings", 2, t0.Add(time.Hour)))
	require.NoError(t, repo.Increment(ctx, "rustlings", 1, t0))
	require.NoError(t, repo.AddSkills(ctx, "Rustlings", []string{"rust", "cli"}))
	require.NoError(t, repo.AddSkills(ctx, "Rustlings", []string{"rust"}))

	res, err := repo.ByName(ctx, "Rustlings")
	require.NoError(t, err)
	assert.Equal(t, 2, res.UsageCount)
	assert.Equal(t, 5.0, res.TotalHours)
	assert.Equal(t, []string{"cli", "rust"}, res.SkillsTaught)
	assert.True(t, res.CreatedAt.Equal(t0))
	assert.True(t, res.UpdatedAt.Equal(t0.Add(time.Hour)))

	all, err := repo.Resources(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rustlings", all[0].Name)
	assert.Equal(t, "rustlings", all[1].Name)
	assert.Equal(t, []string{}, all[1].SkillsTaught)

	require.NoError(t, repo.Decrement(ctx, "rustlings", 4, t0))
	res, err = repo.ByName(ctx, "rustlings")
	require.NoError(t, err)
	assert.Equal(t, 0, res.UsageCount)
	assert.Equal(t, 0.0, res.TotalHours)

	require.NoError(t, repo.Decrement(ctx, "rustlings", 1, t0))
	res, err = repo.ByName(ctx, "rustlings")
	require.NoError(t, err)
	assert.Equal(t, 0, res.UsageCount, "clamped at zero")

	assert.ErrorIs(t, repo.Decrement(ctx, "missing", 1, t0), repository.ErrResourceNotFound)
	_, err = repo.ByName(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)
}

func TestFileRepository(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	repo := repository.NewFileRepository(db)
	user := testutil.CreateUser(t, db, "ada@example.com")

	f := &model.File{
		ID: "f1", UserID: user.ID, OwnerType: model.OwnerTypeMilestone, OwnerID: "m1",
		Type: model.FileTypeCertificate, Filename: "abc.pdf", OriginalName: "cert.pdf",
		MimeType: "application/pdf", Size: 42, StoragePath: "certificates/u/m1/abc.pdf", CreatedAt: t0,
	}
	require.NoError(t, repo.Create(ctx, f))
	require.NoError(t, repo.Create(ctx, &model.File{
		ID: "f2", UserID: user.ID, OwnerType: model.OwnerTypeMilestone, OwnerID: "m2",
		Type: model.FileTypeCertificate, Filename: "def.png", OriginalName: "cert.png",
		MimeType: "image/png", Size: 7, StoragePath: "certificates/u/m2/def.png", CreatedAt: t0.Add(time.Minute),
	}))

	files, err := repo.UserFiles(ctx, user.ID, model.OwnerTypeMilestone, model.FileTypeCertificate)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f2", files[0].ID)
	assert.Equal(t, int64(42), files[1].Size)

	files, err = repo.UserFiles(ctx, "someone-else", model.OwnerTypeMilestone, model.FileTypeCertificate)
	require.NoError(t, err)
	assert.Empty(t, files)

	require.NoError(t, repo.Delete(ctx, "f1"))
	files, err = repo.UserFiles(ctx, user.ID, model.OwnerTypeMilestone, model.FileTypeCertificate)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "f2", files[0].ID)
}

func TestTransactorRollsBack(t *testing.T) {
	db := testutil.OpenTestDB(t)
	ctx := context.Background()
	tx := repository.NewTransactor(db)
	user := testutil.CreateUser(t, db, "ada@example.com")

	boom := errors.New("boom")
	err := tx.InTx(ctx, func(r *repository.Repositories) error {
		err := r.Milestones.Create(ctx, &model.Milestone{
			ID: "m1", UserID: user.ID, WhatLearned: "x", LearningSource: "Rustlings", CreatedAt: t0,
		})
		require.NoError(t, err)
		require.NoError(t, r.Resources.Increment(ctx, "Rustlings", 1, t0))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repository.NewMilestoneRepository(db).ByID(ctx, "m1")
	assert.ErrorIs(t, err, repository.ErrMilestoneNotFound)
	_, err = repository.NewResourceRepository(db).ByName(ctx, "Rustlings")
	assert.ErrorIs(t, err, repository.ErrResourceNotFound)

	err = tx.InTx(ctx, func(r *repository.Repositories) error {
		return r.Resources.Increment(ctx, "Rustlings", 1, t0)
	})
	require.NoError(t, err)
	_, err = repository.NewResourceRepository(db).ByName(ctx, "Rustlings")
	assert.NoError(t, err)
}
