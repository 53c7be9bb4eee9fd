package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"time"
)

// AggregateStatistics computes the derived view over an owner's full
// history: totals, averages, calendar-month comparison, favorite session
// name and streaks. Month buckets are the session's actual calendar
// month/year, not a rolling 30-day window.
func AggregateStatistics(sessions []domain.WorkoutSession, now time.Time) domain.Statistics {
	stats := domain.Statistics{TotalWorkouts: len(sessions)}
	if len(sessions) == 0 {
		return stats
	}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	intensitySum := 0
	intensityCount := 0
	counts := make(map[string]int, len(sessions))
	firstSeen := make(map[string]int, len(sessions))

	for i := range sessions {
		session := &sessions[i]
		stats.TotalDurationMinutes += session.DurationMinutes

		if session.Intensity != nil {
			intensitySum += *session.Intensity
			intensityCount++
		}

		if session.Date.Year() == thisMonth.Year() && session.Date.Month() == thisMonth.Month() {
			stats.ThisMonthCount++
		} else if session.Date.Year() == lastMonth.Year() && session.Date.Month() == lastMonth.Month() {
			stats.LastMonthCount++
		}

		name := session.DisplayName()
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			firstSeen[name] = i
		}
		counts[name]++
	}

	stats.AverageDurationMinutes = float64(stats.TotalDurationMinutes) / float64(len(sessions))
	if intensityCount > 0 {
		stats.AverageIntensity = float64(intensitySum) / float64(intensityCount)
	}

	// Favorite is the most frequent name; ties go to the name that
	// appeared first in input order.
	best := -1
	for name, count := range counts {
		if count > best || (count == best && firstSeen[name] < firstSeen[stats.FavoriteName]) {
			best = count
			stats.FavoriteName = name
		}
	}

	stats.CurrentStreak, stats.LongestStreak = ComputeStreaks(sessions, now)
	return stats
}
