package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// --- Service Interface ---

// AuthService issues identities for the tracking core. Demo identities are
// just a generated owner id inside a short-lived token; registration turns
// one into a real account, migrating any demo sessions exactly once.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)

	// StartDemo issues a fresh demo identity with no stored account.
	StartDemo(ctx context.Context) (token string, identity domain.Identity, err error)

	// ConvertDemo registers the account and then transfers demo data to the
	// durable store. The transfer is invoked exactly once here; migrated
	// reports whether it succeeded. A failed transfer does not fail the
	// conversion: the account exists either way and the demo data stays in
	// the ephemeral store.
	ConvertDemo(ctx context.Context, name, email, password string) (token string, user *domain.User, migrated bool, err error)

	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	migration     MigrationService
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, migration MigrationService, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 24
	}
	return &authService{
		userRepo:      userRepo,
		migration:     migration,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password cannot be empty")
	}

	// Check if user already exists.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (token string, user *domain.User, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password cannot be empty")
		return
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed // User not found maps to auth failure
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		user = nil
		return
	}

	token, err = s.generateJWT(user.ID.Hex(), domain.ModeReal)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

// StartDemo issues a demo identity backed by no account record.
func (s *authService) StartDemo(ctx context.Context) (string, domain.Identity, error) {
	identity := domain.Identity{
		OwnerID: uuid.NewString(),
		Mode:    domain.ModeDemo,
	}

	token, err := s.generateJWT(identity.OwnerID, domain.ModeDemo)
	if err != nil {
		return "", domain.Identity{}, ErrTokenGeneration
	}

	log.WithField("ownerId", identity.OwnerID).Info("demo identity issued")
	return token, identity, nil
}

// ConvertDemo registers the account and triggers the one-shot demo data
// transfer under the new owner id.
func (s *authService) ConvertDemo(ctx context.Context, name, email, password string) (string, *domain.User, bool, error) {
	user, err := s.Register(ctx, name, email, password)
	if err != nil {
		return "", nil, false, err
	}

	migrated := true
	if err := s.migration.Transfer(ctx, user.ID.Hex()); err != nil {
		// The account exists; the demo data stays put for a manual retry.
		log.WithError(err).WithField("ownerId", user.ID.Hex()).Error("demo data transfer failed during conversion")
		migrated = false
	}

	token, err := s.generateJWT(user.ID.Hex(), domain.ModeReal)
	if err != nil {
		return "", nil, migrated, ErrTokenGeneration
	}
	return token, user, migrated, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	OwnerID string              `json:"uid"`
	Mode    domain.IdentityMode `json:"mode"`
	jwt.RegisteredClaims
}

// generateJWT creates a new token carrying the owner id and identity mode.
func (s *authService) generateJWT(ownerID string, mode domain.IdentityMode) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		OwnerID: ownerID,
		Mode:    mode,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ownerID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "workout-tracker",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
