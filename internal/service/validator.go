package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"fmt"
	"strings"
	"time"
)

// Duration bounds for a single session, in minutes.
const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 1440
)

// Stable field identifiers carried on ValidationError.
const (
	FieldDuration     = "durationMinutes"
	FieldDate         = "date"
	FieldExercises    = "exercises"
	FieldExerciseName = "exercises.name"
	FieldExerciseSets = "exercises.sets"
	FieldExerciseReps = "exercises.reps"
)

// ValidateSession checks a candidate session against the domain rules and
// returns the first violation in rule order (duration, date, exercises
// presence, per-exercise fields), or nil when the session is acceptable.
// It has no side effects and is safe to call standalone for pre-submit
// feedback.
func ValidateSession(session *domain.WorkoutSession, now time.Time) *ValidationError {
	if session.DurationMinutes < MinDurationMinutes || session.DurationMinutes > MaxDurationMinutes {
		return &ValidationError{
			Field:  FieldDuration,
			Reason: fmt.Sprintf("duration must be between %d and %d minutes", MinDurationMinutes, MaxDurationMinutes),
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if session.Day().After(today) {
		return &ValidationError{
			Field:  FieldDate,
			Reason: "workout date cannot be in the future",
		}
	}

	if len(session.Exercises) == 0 {
		return &ValidationError{
			Field:  FieldExercises,
			Reason: "at least one exercise is required",
		}
	}

	for i, exercise := range session.Exercises {
		if strings.TrimSpace(exercise.Name) == "" {
			return &ValidationError{
				Field:  FieldExerciseName,
				Reason: fmt.Sprintf("exercise %d is missing a name", i+1),
			}
		}
		if exercise.Sets <= 0 {
			return &ValidationError{
				Field:  FieldExerciseSets,
				Reason: fmt.Sprintf("exercise %d must have at least one set", i+1),
			}
		}
		if strings.TrimSpace(exercise.Reps) == "" {
			return &ValidationError{
				Field:  FieldExerciseReps,
				Reason: fmt.Sprintf("exercise %d is missing reps", i+1),
			}
		}
	}

	return nil
}
