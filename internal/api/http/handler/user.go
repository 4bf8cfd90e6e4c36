package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okunev/usermgmt/internal/logger"
	"github.com/okunev/usermgmt/internal/model"
	"github.com/okunev/usermgmt/internal/service"
)

// UserService defines user registration, profile CRUD and avatar
// operations.
type UserService interface {
	Register(ctx context.Context, params service.RegisterParams) (model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	Update(ctx context.Context, principal model.User, id uuid.UUID, params service.UpdateParams) (model.User, error)
	Delete(ctx context.Context, principal model.User, id uuid.UUID) (model.User, error)
	UploadAvatar(ctx context.Context, principal model.User, id uuid.UUID, reader io.Reader) error
	DownloadAvatar(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

// User handles HTTP endpoints for user records.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// userResponse is the outward user representation. The password hash
// never appears here.
type userResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	IsActive  *bool  `json:"is_active"`
}

type updateRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password"`
	IsActive  *bool   `json:"is_active"`
}

// Register creates a new user. Registration is open.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}

	user, err := h.userService.Register(r.Context(), service.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// List returns users with skip/limit pagination.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", service.DefaultListLimit)

	users, err := h.userService.List(r.Context(), skip, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, out)
}

// Me returns the current principal's profile.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(principal))
}

// Get returns a user profile by id.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Update applies a partial update to a user record.
func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), principal, id, service.UpdateParams{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		IsActive:  req.IsActive,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Delete removes a user record and returns its last state.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.userService.Delete(r.Context(), principal, id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UploadAvatar stores the request body as the user's avatar.
func (h *User) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.userService.UploadAvatar(r.Context(), principal, id, r.Body); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DownloadAvatar streams the user's avatar.
func (h *User) DownloadAvatar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reader, err := h.userService.DownloadAvatar(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("User handler: failed to stream avatar",
			"user_id", id,
			"error", err.Error())
	}
}

func (h *User) principal(w http.ResponseWriter, r *http.Request) (model.User, bool) {
	principal, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		// The authenticate middleware always sets the principal on
		// protected routes; missing it means a wiring bug.
		h.logger.Error("User handler: principal missing from context", "path", r.URL.Path)
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return model.User{}, false
	}
	return principal, true
}
