package model

import (
	"time"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusAbandoned:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s GoalStatus) Terminal() bool {
	return s == GoalStatusCompleted || s == GoalStatusAbandoned
}

// CanTransition reports whether a goal may move from s to next.
// Only active goals move, and only to a terminal state.
func (s GoalStatus) CanTransition(next GoalStatus) bool {
	return s == GoalStatusActive && next.Terminal()
}

type Goal struct {
	ID               string     `db:"id" json:"id"`
	UserID           string     `db:"user_id" json:"user_id"`
	Title            string     `db:"title" json:"title"`
	Description      string     `db:"description" json:"description"`
	TargetCompletion string     `db:"target_completion" json:"target_completion"` // YYYY-MM-DD
	Status           GoalStatus `db:"status" json:"status"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
