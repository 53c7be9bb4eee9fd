package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// WorkoutHandler holds the tracking service dependency.
type WorkoutHandler struct {
	trackingService service.TrackingService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(trackingService service.TrackingService) *WorkoutHandler {
	return &WorkoutHandler{trackingService: trackingService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest mirrors domain.WorkoutExercise for input. Field rules are
// left to the session validator so the client always gets the same
// field-keyed error shape.
type ExerciseRequest struct {
	Name      string   `json:"name"`
	Sets      int      `json:"sets"`
	Reps      string   `json:"reps"`
	Weight    *float64 `json:"weight"`
	Completed bool     `json:"completed"`
}

// TrackWorkoutRequest defines the expected JSON for logging a session.
// Date accepts "2006-01-02" or RFC3339.
type TrackWorkoutRequest struct {
	Name            string            `json:"name"`
	Date            string            `json:"date" binding:"required"`
	DurationMinutes int               `json:"durationMinutes"`
	Intensity       *int              `json:"intensity"`
	Exercises       []ExerciseRequest `json:"exercises"`
	Notes           string            `json:"notes"`
	Completed       bool              `json:"completed"`
}

// SessionResponse is the DTO for returning session details.
type SessionResponse struct {
	ID              string                   `json:"id"`
	OwnerID         string                   `json:"ownerId"`
	Name            string                   `json:"name,omitempty"`
	Date            time.Time                `json:"date"`
	DurationMinutes int                      `json:"durationMinutes"`
	Intensity       *int                     `json:"intensity,omitempty"`
	Exercises       []domain.WorkoutExercise `json:"exercises"`
	Notes           string                   `json:"notes,omitempty"`
	Completed       bool                     `json:"completed"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// HistoryResponse is one page of the owner's history.
type HistoryResponse struct {
	Items      []SessionResponse `json:"items"`
	TotalCount int               `json:"totalCount"`
}

func mapSessionToResponse(session *domain.WorkoutSession) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:              session.ID,
		OwnerID:         session.OwnerID,
		Name:            session.Name,
		Date:            session.Date,
		DurationMinutes: session.DurationMinutes,
		Intensity:       session.Intensity,
		Exercises:       session.Exercises,
		Notes:           session.Notes,
		Completed:       session.Completed,
		CreatedAt:       session.CreatedAt,
	}
}

func parseSessionDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// --- Handler Methods ---

// TrackWorkout logs a new session for the authenticated identity.
func (h *WorkoutHandler) TrackWorkout(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	var req TrackWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	date, err := parseSessionDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format; expected YYYY-MM-DD or RFC3339.")
		return
	}

	exercises := make([]domain.WorkoutExercise, len(req.Exercises))
	for i, ex := range req.Exercises {
		exercises[i] = domain.WorkoutExercise{
			Name:      ex.Name,
			Sets:      ex.Sets,
			Reps:      ex.Reps,
			Weight:    ex.Weight,
			Completed: ex.Completed,
		}
	}

	session := domain.WorkoutSession{
		Name:            req.Name,
		Date:            date,
		DurationMinutes: req.DurationMinutes,
		Intensity:       req.Intensity,
		Exercises:       exercises,
		Notes:           req.Notes,
		Completed:       req.Completed,
	}

	saved, err := h.trackingService.TrackWorkout(c.Request.Context(), identity, session)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": verr.Reason,
				"field": verr.Field,
			})
		case errors.Is(err, service.ErrAuthenticationRequired):
			abortWithError(c, http.StatusUnauthorized, "Authentication required.")
		default:
			// Backend failure: surfaced for a user-driven retry, never
			// retried here because the write outcome may be ambiguous.
			abortWithError(c, http.StatusBadGateway, "Could not save your workout. Please try again.")
		}
		return
	}

	c.JSON(http.StatusCreated, mapSessionToResponse(saved))
}

// LoadHistory returns one page of the identity's session history.
func (h *WorkoutHandler) LoadHistory(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		abortWithError(c, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		abortWithError(c, http.StatusBadRequest, "pageSize must be between 1 and 100")
		return
	}

	result, err := h.trackingService.LoadHistory(c.Request.Context(), identity, page, pageSize)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Could not load workout history. Please try again.")
		return
	}

	items := make([]SessionResponse, len(result.Items))
	for i := range result.Items {
		items[i] = mapSessionToResponse(&result.Items[i])
	}
	c.JSON(http.StatusOK, HistoryResponse{Items: items, TotalCount: result.TotalCount})
}

// RemoveWorkout deletes one of the identity's sessions.
func (h *WorkoutHandler) RemoveWorkout(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	sessionID := c.Param("id")
	removed, err := h.trackingService.RemoveWorkout(c.Request.Context(), identity, sessionID)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Could not delete workout. Please try again.")
		return
	}
	if !removed {
		abortWithError(c, http.StatusNotFound, "Workout not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetStatistics returns the derived statistics over the identity's full history.
func (h *WorkoutHandler) GetStatistics(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	stats, err := h.trackingService.GetStatistics(c.Request.Context(), identity)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Could not compute statistics. Please try again.")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportHistory uploads a JSON archive of the identity's history and
// returns a presigned download URL.
func (h *WorkoutHandler) ExportHistory(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}

	url, err := h.trackingService.ExportHistory(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, service.ErrExportUnavailable) {
			abortWithError(c, http.StatusNotImplemented, "History export is not configured.")
			return
		}
		abortWithError(c, http.StatusBadGateway, "Could not export history. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
