package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the auth service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- DTOs ---

// RegisterRequest defines the expected JSON for registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the expected JSON for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the DTO for returning account details.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func mapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
}

// --- Handler Methods ---

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	c.JSON(http.StatusCreated, mapUserToResponse(user))
}

// Login authenticates an account and returns a real-mode token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Login failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  mapUserToResponse(user),
	})
}

// StartDemo issues a trial identity without creating an account.
func (h *AuthHandler) StartDemo(c *gin.Context) {
	token, identity, err := h.authService.StartDemo(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to start demo session.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"identity": identity,
	})
}

// ConvertDemo registers an account for the current demo identity and
// transfers its demo data to the durable store exactly once. The migrated
// flag tells the client whether the transfer succeeded; a false value means
// the demo data is still in the ephemeral store.
func (h *AuthHandler) ConvertDemo(c *gin.Context) {
	identity, err := identityFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify caller from token.")
		return
	}
	if !identity.IsDemo() {
		abortWithError(c, http.StatusBadRequest, "Only demo identities can be converted.")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	token, user, migrated, err := h.authService.ConvertDemo(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to convert demo account.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"user":     mapUserToResponse(user),
		"migrated": migrated,
	})
}
