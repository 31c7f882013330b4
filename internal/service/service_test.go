package service

import (
	"context"
	"testing"
	"time"

	"github.com/Admintools08/BP/internal/clock"
	"github.com/Admintools08/BP/internal/model"
	"github.com/Admintools08/BP/internal/repository"
	"github.com/Admintools08/BP/internal/testutil"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type harness struct {
	db         *sqlx.DB
	clock      *clock.Fixed
	repos      *repository.Repositories
	tx         repository.Transactor
	goals      *GoalService
	milestones *MilestoneService
	ledger     *ResourceLedger
	progress   *ProgressService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessOn(testutil.OpenTestDB(t))
}

// newPooledHarness runs on the server's connection pool instead of a single connection.
func newPooledHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessOn(testutil.OpenPooledTestDB(t))
}

func newHarnessOn(db *sqlx.DB) *harness {
	clk := clock.NewFixed(time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC))
	repos := repository.New(db)
	tx := repository.NewTransactor(db)

	ledger := NewResourceLedger(repos.Resources, clk)
	goals := NewGoalService(repos.Goals, clk)

	return &harness{
		db:         db,
		clock:      clk,
		repos:      repos,
		tx:         tx,
		goals:      goals,
		milestones: NewMilestoneService(repos.Milestones, repos.Goals, tx, goals, ledger, nil, clk),
		ledger:     ledger,
		progress:   NewProgressService(repos.Milestones, repos.Goals, nil),
	}
}

func (h *harness) user(t *testing.T, email string) string {
	t.Helper()
	return testutil.CreateUser(t, h.db, email).ID
}

func (h *harness) goal(t *testing.T, userID, title string) *model.Goal {
	t.Helper()
	goal, err := h.goals.Create(context.Background(), userID, model.GoalInput{
		Title:            title,
		Description:      "learn it properly",
		TargetCompletion: "2026-12-31",
	})
	require.NoError(t, err)
	return goal
}

func milestoneInput(source string, hours float64) model.MilestoneInput {
	return model.MilestoneInput{
		WhatLearned:    "worked through exercises",
		LearningSource: source,
		HoursInvested:  hours,
	}
}

func strPtr(s string) *string { return &s }
