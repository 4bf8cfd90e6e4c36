package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okunev/usermgmt/internal/model"
)

// AuthService is a mock covering the auth interfaces consumed by the
// HTTP handler and middleware packages.
type AuthService struct {
	mock.Mock
}

func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	ret := _m.Called(ctx, username, password)
	return ret.String(0), ret.Error(1)
}

func (_m *AuthService) ResolvePrincipal(ctx context.Context, tokenString string) (model.User, error) {
	ret := _m.Called(ctx, tokenString)
	return ret.Get(0).(model.User), ret.Error(1)
}
