package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"sort"
	"time"
)

const day = 24 * time.Hour

// ComputeStreaks derives the current and longest consecutive-day streaks
// from a session history (any order). Sessions are deduplicated by calendar
// date first: multiple sessions logged on one day count as a single streak
// day and never break a run.
//
// The current streak is anchored at the most recent session day; it is zero
// when that day is more than one day before today.
func ComputeStreaks(sessions []domain.WorkoutSession, today time.Time) (current, longest int) {
	if len(sessions) == 0 {
		return 0, 0
	}

	distinct := make(map[time.Time]struct{}, len(sessions))
	for i := range sessions {
		distinct[sessions[i].Day()] = struct{}{}
	}

	days := make([]time.Time, 0, len(distinct))
	for d := range distinct {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	todayDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	// Current streak: walk back from the most recent day while each date is
	// exactly one day before the previous counted one.
	if todayDay.Sub(days[0]) <= day {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].Sub(days[i]) != day {
				break
			}
			current++
		}
	}

	// Longest streak: single pass over the sorted distinct days.
	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	if current > longest {
		longest = current
	}

	return current, longest
}
