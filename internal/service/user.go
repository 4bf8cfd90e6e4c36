package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/okunev/usermgmt/internal/logger"
	"github.com/okunev/usermgmt/internal/model"
)

// MinPasswordLength is the domain minimum for plaintext passwords.
const MinPasswordLength = 8

// DefaultListLimit caps listing when the caller does not set one.
const DefaultListLimit = 100

// User implements user registration, profile CRUD and avatar storage.
// Update and Delete are gated by ownership or superuser override.
type User struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	storage   model.Storage
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	storage model.Storage,
	logger *logger.Logger,
) *User {
	return &User{
		userStore: userStore,
		hasher:    hasher,
		storage:   storage,
		logger:    logger,
	}
}

// RegisterParams carries input for user registration.
type RegisterParams struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	IsActive  *bool
}

// UpdateParams carries a partial profile update. Nil fields are left
// unchanged; a non-nil Password is re-hashed.
type UpdateParams struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	IsActive  *bool
}

// Register validates and creates a new user. Registration is open:
// no principal is required.
func (s *User) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	s.logger.Debug("User service: processing registration", "username", params.Username)

	if len(params.Password) < MinPasswordLength {
		return model.User{}, model.ErrPasswordTooShort
	}

	if err := s.checkUsernameFree(ctx, params.Username); err != nil {
		return model.User{}, err
	}
	if err := s.checkEmailFree(ctx, params.Email); err != nil {
		return model.User{}, err
	}

	digest, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	active := true
	if params.IsActive != nil {
		active = *params.IsActive
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: digest,
		IsActive:     active,
		IsSuperuser:  false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user, err = s.userStore.Create(ctx, user)
	if err != nil {
		s.logger.Error("User service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered", "user_id", user.ID)

	return user, nil
}

// Get returns a user by ID. Any authenticated principal may read any
// profile.
func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// List returns users with offset/limit pagination. Any authenticated
// principal may list.
func (s *User) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	users, err := s.userStore.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Update applies a partial update to the target user. The principal
// must own the record or be a superuser, otherwise ErrForbidden.
func (s *User) Update(ctx context.Context, principal model.User, id uuid.UUID, params UpdateParams) (model.User, error) {
	if !CanModify(principal, id) {
		return model.User{}, model.ErrForbidden
	}

	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if params.Username != nil && *params.Username != user.Username {
		if err := s.checkUsernameFree(ctx, *params.Username); err != nil {
			return model.User{}, err
		}
		user.Username = *params.Username
	}
	if params.Email != nil && *params.Email != user.Email {
		if err := s.checkEmailFree(ctx, *params.Email); err != nil {
			return model.User{}, err
		}
		user.Email = *params.Email
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.IsActive != nil {
		user.IsActive = *params.IsActive
	}
	if params.Password != nil {
		if len(*params.Password) < MinPasswordLength {
			return model.User{}, model.ErrPasswordTooShort
		}
		digest, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = digest
	}

	user.UpdatedAt = time.Now()

	user, err = s.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated", "user_id", user.ID)

	return user, nil
}

// Delete removes the target user. The principal must own the record
// or be a superuser. The stored avatar object is removed best-effort.
func (s *User) Delete(ctx context.Context, principal model.User, id uuid.UUID) (model.User, error) {
	if !CanModify(principal, id) {
		return model.User{}, model.ErrForbidden
	}

	user, err := s.userStore.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.storage.Delete(ctx, avatarKey(id)); err != nil {
		s.logger.Warn("User service: failed to delete avatar object",
			"user_id", id,
			"error", err.Error())
	}

	s.logger.Info("User service: user deleted", "user_id", id)

	return user, nil
}

// UploadAvatar stores the avatar object for the target user. Gated
// the same way as Update.
func (s *User) UploadAvatar(ctx context.Context, principal model.User, id uuid.UUID, reader io.Reader) error {
	if !CanModify(principal, id) {
		return model.ErrForbidden
	}

	if _, err := s.userStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if err := s.storage.Upload(ctx, avatarKey(id), reader); err != nil {
		return fmt.Errorf("failed to upload avatar: %w", err)
	}

	return nil
}

// DownloadAvatar streams the avatar object for the target user. Any
// authenticated principal may read it.
func (s *User) DownloadAvatar(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	exists, err := s.storage.Exists(ctx, avatarKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to stat avatar: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, avatarKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to download avatar: %w", err)
	}

	return reader, nil
}

func (s *User) checkUsernameFree(ctx context.Context, username string) error {
	_, err := s.userStore.GetByUsername(ctx, username)
	if err == nil {
		return model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by username: %w", err)
	}
	return nil
}

func (s *User) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.userStore.GetByEmail(ctx, email)
	if err == nil {
		return model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	return nil
}

func avatarKey(id uuid.UUID) string {
	return "avatars/" + id.String()
}
