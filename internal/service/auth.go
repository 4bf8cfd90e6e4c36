package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okunev/usermgmt/internal/logger"
	"github.com/okunev/usermgmt/internal/model"
)

// Auth orchestrates credential authentication, token issuance and
// principal resolution.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Authenticate verifies a username/password pair against the store.
// Unknown username and wrong password are indistinguishable: both
// return ErrInvalidCredentials.
func (a *Auth) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, err := a.userStore.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the credentials and issues a bearer token for
// the matched user.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: processing login", "username", username)

	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	tokenString, err := a.tokenManager.Generate(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"user_id", user.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: login completed", "user_id", user.ID)

	return tokenString, nil
}

// ResolvePrincipal verifies the token and loads the subject user.
// It fails with ErrPrincipalNotFound when the subject was deleted
// after issuance, and with ErrInactiveAccount when the subject is
// deactivated. The inactive check is authoritative here; token
// validity alone never grants access to a deactivated account.
func (a *Auth) ResolvePrincipal(ctx context.Context, tokenString string) (model.User, error) {
	userID, err := a.tokenManager.Parse(tokenString)
	if err != nil {
		return model.User{}, err
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrPrincipalNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if !user.IsActive {
		return model.User{}, model.ErrInactiveAccount
	}

	return user, nil
}

// BootstrapSeed describes the superuser created on an empty store.
type BootstrapSeed struct {
	Username string
	Email    string
	Password string
}

// Bootstrap creates the seed superuser when the store holds no users.
// It is idempotent: any existing user makes it a no-op. Runs once at
// process start, outside the request path.
func (a *Auth) Bootstrap(ctx context.Context, seed BootstrapSeed) error {
	count, err := a.userStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	digest, err := a.hasher.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     seed.Username,
		Email:        seed.Email,
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: digest,
		IsActive:     true,
		IsSuperuser:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := a.userStore.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create bootstrap user: %w", err)
	}

	a.logger.Info("Auth service: bootstrap superuser created", "username", seed.Username)

	return nil
}
