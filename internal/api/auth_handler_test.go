package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubUserRepo is an in-memory repository.UserRepository.
type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.Email] = &stored
	return user.ID, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func registerBody() map[string]any {
	return map[string]any{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "correct horse",
	}
}

func TestRegisterAndLoginRoutes(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var user UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ana@example.com", user.Email)

	// Duplicate registration conflicts.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", registerBody())
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConvertDemoRoute(t *testing.T) {
	router := newTestRouter()
	token := demoToken(t, router)

	// Log one demo workout, then convert.
	date := time.Now().Format("2006-01-02")
	w := doJSON(t, router, http.MethodPost, "/api/v1/workouts", token, workoutBody(date))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/convert", token, registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token    string       `json:"token"`
		User     UserResponse `json:"user"`
		Migrated bool         `json:"migrated"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.Migrated)

	// The demo bucket was cleared by the transfer.
	otherToken := demoToken(t, router)
	w = doJSON(t, router, http.MethodGet, "/api/v1/workouts", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	assert.Zero(t, history.TotalCount)
}

func TestConvertDemo_RejectsRealIdentity(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/convert", login.Token, registerBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
