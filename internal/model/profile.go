package model

import "time"

// Profile holds the mutable employee fields of a User.
type Profile struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	FullName          string    `db:"full_name" json:"full_name"`
	Position          string    `db:"position" json:"position"`
	Department        string    `db:"department" json:"department"`
	JoinDate          string    `db:"join_date" json:"date_of_joining"` // YYYY-MM-DD
	ExistingSkills    StringSet `db:"existing_skills" json:"existing_skills"`
	LearningInterests StringSet `db:"learning_interests" json:"learning_interests"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
