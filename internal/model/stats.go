package model

// DashboardStats is computed on every read and never persisted.
type DashboardStats struct {
	Month              string       `json:"month_year"`
	CurrentMonthHours  float64      `json:"current_month_hours"`
	TargetHours        float64      `json:"target_hours"`
	ProgressPercentage int          `json:"progress_percentage"`
	TotalHours         float64      `json:"total_hours"`
	ActiveGoals        int          `json:"active_goals"`
	TotalMilestones    int          `json:"total_milestones"`
	RecentMilestones   []*Milestone `json:"recent_milestones"`
}

type MonthProgress struct {
	Month              string       `json:"month_year"`
	TotalHours         float64      `json:"total_hours"`
	TargetHours        float64      `json:"target_hours"`
	ProgressPercentage int          `json:"progress_percentage"`
	Milestones         []*Milestone `json:"milestones"`
}
