package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/okunev/usermgmt/internal/model"
)

// ContextManager is a mock implementation of model.ContextManager.
type ContextManager struct {
	mock.Mock
}

func NewContextManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *ContextManager {
	m := &ContextManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *ContextManager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	ret := _m.Called(ctx, user)
	return ret.Get(0).(context.Context)
}

func (_m *ContextManager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	ret := _m.Called(ctx)
	return ret.Get(0).(model.User), ret.Bool(1)
}
