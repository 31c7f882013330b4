// Package progress turns milestone records into monthly and all-time
// statistics. Every function here is pure: callers load the data and pass
// the clock reading in.
package progress

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/Admintools08/BP/internal/model"
)

// RecentLimit is the number of milestones reported as recent on the dashboard.
const RecentLimit = 5

// Percentage returns round(hours/target*100) capped at 100.
// A non-positive or non-finite target yields 0.
func Percentage(hours, target float64) int {
	if !finite(target) || target <= 0 || math.IsNaN(hours) || hours <= 0 {
		return 0
	}
	if math.IsInf(hours, 1) {
		return 100
	}
	pct := math.Round(hours / target * 100)
	if pct > 100 {
		return 100
	}
	return int(pct)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// InMonth reports whether t falls in the given calendar month as seen from loc.
func InMonth(t time.Time, year int, month time.Month, loc *time.Location) bool {
	local := t.In(loc)
	return local.Year() == year && local.Month() == month
}

func SumHours(milestones []*model.Milestone) float64 {
	var total float64
	for _, m := range milestones {
		total += m.HoursInvested
	}
	return total
}

// SortRecent orders milestones by creation time, most recent first.
// Ties fall back to id so the order is stable across reads.
func SortRecent(milestones []*model.Milestone) {
	slices.SortStableFunc(milestones, func(a, b *model.Milestone) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}

// ForMonth returns the milestones created in the given month, most recent first.
// The input slice is left untouched.
func ForMonth(milestones []*model.Milestone, year int, month time.Month, loc *time.Location) []*model.Milestone {
	out := make([]*model.Milestone, 0, len(milestones))
	for _, m := range milestones {
		if InMonth(m.CreatedAt, year, month, loc) {
			out = append(out, m)
		}
	}
	SortRecent(out)
	return out
}

// Dashboard computes the dashboard for one user. The current month is the
// calendar month of now, in now's location.
func Dashboard(milestones []*model.Milestone, activeGoals int, now time.Time, target float64) model.DashboardStats {
	current := ForMonth(milestones, now.Year(), now.Month(), now.Location())
	currentHours := SumHours(current)

	all := slices.Clone(milestones)
	SortRecent(all)
	recent := all[:min(RecentLimit, len(all))]

	return model.DashboardStats{
		Month:              now.Format("2006-01"),
		CurrentMonthHours:  currentHours,
		TargetHours:        target,
		ProgressPercentage: Percentage(currentHours, target),
		TotalHours:         SumHours(milestones),
		ActiveGoals:        activeGoals,
		TotalMilestones:    len(milestones),
		RecentMilestones:   recent,
	}
}

// Month computes progress for one calendar month against target.
func Month(milestones []*model.Milestone, year int, month time.Month, loc *time.Location, target float64) model.MonthProgress {
	inMonth := ForMonth(milestones, year, month, loc)
	hours := SumHours(inMonth)

	return model.MonthProgress{
		Month:              time.Date(year, month, 1, 0, 0, 0, 0, loc).Format("2006-01"),
		TotalHours:         hours,
		TargetHours:        target,
		ProgressPercentage: Percentage(hours, target),
		Milestones:         inMonth,
	}
}
