package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/okunev/usermgmt/internal/model"
	"github.com/okunev/usermgmt/internal/service"
)

// UserService is a mock covering the user interface consumed by the
// HTTP handler package.
type UserService struct {
	mock.Mock
}

func NewUserService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserService {
	m := &UserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *UserService) Register(ctx context.Context, params service.RegisterParams) (model.User, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserService) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserService) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	ret := _m.Called(ctx, offset, limit)

	var r0 []model.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserService) Update(ctx context.Context, principal model.User, id uuid.UUID, params service.UpdateParams) (model.User, error) {
	ret := _m.Called(ctx, principal, id, params)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserService) Delete(ctx context.Context, principal model.User, id uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, principal, id)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *UserService) UploadAvatar(ctx context.Context, principal model.User, id uuid.UUID, reader io.Reader) error {
	ret := _m.Called(ctx, principal, id, reader)
	return ret.Error(0)
}

func (_m *UserService) DownloadAvatar(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	ret := _m.Called(ctx, id)

	var r0 io.ReadCloser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(io.ReadCloser)
	}
	return r0, ret.Error(1)
}
