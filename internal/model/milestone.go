package model

import (
	"time"
)

type Milestone struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	GoalID          *string   `db:"goal_id" json:"goal_id"` // weak reference, may dangle
	WhatLearned     string    `db:"what_learned" json:"what_learned"`
	LearningSource  string    `db:"learning_source" json:"learning_source"`
	HoursInvested   float64   `db:"hours_invested" json:"hours_invested"`
	CanTeachOthers  bool      `db:"can_teach_others" json:"can_teach_others"`
	CertificateLink *string   `db:"certificate_link" json:"project_certificate_link"`
	SkillTags       StringSet `db:"skill_tags" json:"skill_tags"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// MilestoneDetail is a milestone with its goal resolved at read time.
// Goal is nil when the milestone has no goal or the goal no longer exists.
type MilestoneDetail struct {
	*Milestone
	Goal *Goal `json:"goal"`
}
