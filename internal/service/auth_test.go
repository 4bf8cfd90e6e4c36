package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/okunev/usermgmt/internal/mocks"
	"github.com/okunev/usermgmt/internal/service"
	"github.com/okunev/usermgmt/internal/model"
	"github.com/okunev/usermgmt/internal/testutil"
)

func TestAuth_Authenticate_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userStore.On("GetByUsername", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)
	userStore.On("GetByUsername", mock.Anything, "real_user").Return(model.User{ID: uuid.New(), Username: "real_user", PasswordHash: "digest"}, nil)
	hasher.On("Verify", "wrong_pw", "digest").Return(false)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	_, errGhost := a.Authenticate(ctx, "ghost", "anything")
	_, errWrongPw := a.Authenticate(ctx, "real_user", "wrong_pw")

	require.ErrorIs(t, errGhost, model.ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, model.ErrInvalidCredentials)
	assert.Equal(t, errGhost.Error(), errWrongPw.Error())
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userID := uuid.New()
	userStore.On("GetByUsername", mock.Anything, "alice").Return(model.User{ID: userID, Username: "alice", PasswordHash: "digest", IsActive: true}, nil)
	hasher.On("Verify", "correct-pw", "digest").Return(true)
	tokMan.On("Generate", userID).Return("signed-token", nil)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	tokenString, err := a.Login(ctx, "alice", "correct-pw")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", tokenString)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userStore.On("GetByUsername", mock.Anything, "alice").Return(model.User{ID: uuid.New(), PasswordHash: "digest"}, nil)
	hasher.On("Verify", "bad", "digest").Return(false)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	_, err := a.Login(ctx, "alice", "bad")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuth_ResolvePrincipal_Success(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userID := uuid.New()
	tokMan.On("Parse", "token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, Username: "alice", IsActive: true}, nil)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	principal, err := a.ResolvePrincipal(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, userID, principal.ID)
}

func TestAuth_ResolvePrincipal_TokenError(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	tokMan.On("Parse", "expired").Return(uuid.Nil, model.ErrTokenExpired)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	_, err := a.ResolvePrincipal(ctx, "expired")
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestAuth_ResolvePrincipal_SubjectDeleted(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userID := uuid.New()
	tokMan.On("Parse", "token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	_, err := a.ResolvePrincipal(ctx, "token")
	require.ErrorIs(t, err, model.ErrPrincipalNotFound)
}

func TestAuth_ResolvePrincipal_InactiveAccount(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userID := uuid.New()
	tokMan.On("Parse", "token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, IsActive: false}, nil)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	_, err := a.ResolvePrincipal(ctx, "token")
	require.ErrorIs(t, err, model.ErrInactiveAccount)
}

// Login succeeds for an inactive account at credential level, but any
// later authenticated request fails when the principal is resolved.
func TestAuth_InactiveAccount_LoginSucceedsResolveFails(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userID := uuid.New()
	inactive := model.User{ID: userID, Username: "bob", PasswordHash: "digest", IsActive: false}
	userStore.On("GetByUsername", mock.Anything, "bob").Return(inactive, nil)
	hasher.On("Verify", "correct-pw", "digest").Return(true)
	tokMan.On("Generate", userID).Return("token", nil)
	tokMan.On("Parse", "token").Return(userID, nil)
	userStore.On("GetByID", mock.Anything, userID).Return(inactive, nil)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	tokenString, err := a.Login(ctx, "bob", "correct-pw")
	require.NoError(t, err)

	_, err = a.ResolvePrincipal(ctx, tokenString)
	require.ErrorIs(t, err, model.ErrInactiveAccount)
}

func TestAuth_Bootstrap_EmptyStore(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userStore.On("Count", mock.Anything).Return(int64(0), nil)
	hasher.On("Hash", "adminpassword").Return("digest", nil)
	userStore.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Username == "admin" && u.IsSuperuser && u.IsActive && u.PasswordHash == "digest"
	})).Return(model.User{ID: uuid.New()}, nil)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	err := a.Bootstrap(ctx, service.BootstrapSeed{Username: "admin", Email: "admin@example.com", Password: "adminpassword"})
	require.NoError(t, err)
}

func TestAuth_Bootstrap_NoopWhenUsersExist(t *testing.T) {
	ctx := context.Background()
	userStore := mocks.NewUserStore(t)
	hasher := mocks.NewPasswordHasher(t)
	tokMan := mocks.NewTokenManager(t)
	lg := testutil.MakeNoopLogger()

	userStore.On("Count", mock.Anything).Return(int64(3), nil)

	a := service.NewAuth(userStore, hasher, tokMan, lg)

	err := a.Bootstrap(ctx, service.BootstrapSeed{Username: "admin", Email: "admin@example.com", Password: "adminpassword"})
	require.NoError(t, err)
	userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
