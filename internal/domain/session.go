package domain

import (
	"time"
)

// WorkoutExercise is a single exercise entry embedded in a session.
// It has no identity or lifecycle of its own.
type WorkoutExercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	// Reps is intentionally free-form text: plain counts ("10"),
	// ranges ("8-12") and durations ("30s") are all valid.
	Reps      string   `bson:"reps" json:"reps"`
	Weight    *float64 `bson:"weight,omitempty" json:"weight,omitempty"`
	Completed bool     `bson:"completed" json:"completed"`
}

// WorkoutSession represents one logged workout for an owner.
type WorkoutSession struct {
	// ID is assigned by the storage backend on save; empty until persisted.
	ID      string `bson:"_id,omitempty" json:"id"`
	OwnerID string `bson:"ownerId" json:"ownerId"`
	Name    string `bson:"name,omitempty" json:"name,omitempty"` // e.g. "Upper Body", "Long Run"

	// Date is the calendar day of the workout. Streak logic only cares
	// about day granularity; time-of-day is not significant.
	Date            time.Time         `bson:"date" json:"date"`
	DurationMinutes int               `bson:"durationMinutes" json:"durationMinutes"`
	Intensity       *int              `bson:"intensity,omitempty" json:"intensity,omitempty"`
	Exercises       []WorkoutExercise `bson:"exercises" json:"exercises"`
	Notes           string            `bson:"notes,omitempty" json:"notes,omitempty"`

	// Completed is set by the caller ("all exercises done") and stored
	// as-is; it is not re-derived at read time.
	Completed bool      `bson:"completed" json:"completed"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Day returns the session's date truncated to calendar-day granularity in UTC.
func (s *WorkoutSession) Day() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, time.UTC)
}

// DisplayName is the label used for frequency statistics. Sessions logged
// without a name fall back to their first exercise's name.
func (s *WorkoutSession) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if len(s.Exercises) > 0 {
		return s.Exercises[0].Name
	}
	return ""
}
