package api

import (
	"alcyxob/workout-tracker/internal/domain"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Constants for context keys
const (
	ContextOwnerIDKey      = "ownerID"
	ContextIdentityModeKey = "identityMode"
)

// jwtClaims defines the structure we expect in the JWT payload.
// Mirroring the structure used in authService.generateJWT
type jwtClaims struct {
	OwnerID string              `json:"uid"`
	Mode    domain.IdentityMode `json:"mode"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.OwnerID == "" || claims.Mode == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		// Set identity information in the context for downstream handlers
		c.Set(ContextOwnerIDKey, claims.OwnerID)
		c.Set(ContextIdentityModeKey, claims.Mode)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// identityFromContext rebuilds the caller's Identity set by AuthMiddleware.
func identityFromContext(c *gin.Context) (*domain.Identity, error) {
	idRaw, exists := c.Get(ContextOwnerIDKey)
	if !exists {
		return nil, errors.New("owner ID not found in context")
	}
	ownerID, ok := idRaw.(string)
	if !ok {
		return nil, errors.New("invalid owner ID type in context")
	}

	modeRaw, exists := c.Get(ContextIdentityModeKey)
	if !exists {
		return nil, errors.New("identity mode not found in context")
	}
	mode, ok := modeRaw.(domain.IdentityMode)
	if !ok {
		return nil, errors.New("invalid identity mode type in context")
	}

	return &domain.Identity{OwnerID: ownerID, Mode: mode}, nil
}
