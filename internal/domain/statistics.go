package domain

// Statistics is the derived view over an owner's full session history.
type Statistics struct {
	TotalWorkouts          int     `json:"totalWorkouts"`
	TotalDurationMinutes   int     `json:"totalDurationMinutes"`
	AverageDurationMinutes float64 `json:"averageDurationMinutes"`
	// AverageIntensity is computed over sessions that carry an intensity
	// value; zero when none do.
	AverageIntensity   float64 `json:"averageIntensity"`
	ThisMonthCount     int     `json:"thisMonthCount"`
	LastMonthCount     int     `json:"lastMonthCount"`
	FavoriteName       string  `json:"favoriteName,omitempty"`
	CurrentStreak      int     `json:"currentStreak"`
	LongestStreak      int     `json:"longestStreak"`
}
