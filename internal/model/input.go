package model

// GoalInput is the typed request for creating or editing a goal.
type GoalInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TargetCompletion string `json:"target_completion"`
}

// MilestoneInput is the typed request for logging a milestone.
// Creation time is never part of the input.
type MilestoneInput struct {
	GoalID          *string  `json:"goal_id"`
	WhatLearned     string   `json:"what_learned"`
	LearningSource  string   `json:"learning_source"`
	HoursInvested   float64  `json:"hours_invested"`
	CanTeachOthers  bool     `json:"can_teach_others"`
	CertificateLink *string  `json:"project_certificate_link"`
	SkillTags       []string `json:"skill_tags"`
}

// MilestoneUpdate carries the fields that may change after creation.
// Hours and source are fixed once they have been recorded in the ledger.
type MilestoneUpdate struct {
	WhatLearned     string   `json:"what_learned"`
	CanTeachOthers  bool     `json:"can_teach_others"`
	CertificateLink *string  `json:"project_certificate_link"`
	SkillTags       []string `json:"skill_tags"`
}

type ProfileInput struct {
	FullName          string   `json:"full_name"`
	Position          string   `json:"position"`
	Department        string   `json:"department"`
	JoinDate          string   `json:"date_of_joining"`
	ExistingSkills    []string `json:"existing_skills"`
	LearningInterests []string `json:"learning_interests"`
}

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ProfileInput
}
