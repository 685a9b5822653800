package handler_test

import (
	"context"

	"tasktracker/internal/model"
	"tasktracker/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTaskUseCase struct {
	mock.Mock
}

func (m *MockTaskUseCase) Create(ctx context.Context, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, in)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskUseCase) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskUseCase) Update(ctx context.Context, id uuid.UUID, patch service.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, id, patch)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskUseCase) Remove(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskUseCase) AddUpdate(ctx context.Context, taskID uuid.UUID, message string) (*model.TaskUpdate, error) {
	args := m.Called(ctx, taskID, message)
	update := args.Get(0)
	if update == nil {
		return nil, args.Error(1)
	}
	return update.(*model.TaskUpdate), args.Error(1)
}

func (m *MockTaskUseCase) Logs(ctx context.Context, taskID uuid.UUID) ([]model.TaskLog, error) {
	args := m.Called(ctx, taskID)
	logs := args.Get(0)
	if logs == nil {
		return nil, args.Error(1)
	}
	return logs.([]model.TaskLog), args.Error(1)
}

func (m *MockTaskUseCase) Updates(ctx context.Context, taskID uuid.UUID) ([]model.TaskUpdate, error) {
	args := m.Called(ctx, taskID)
	updates := args.Get(0)
	if updates == nil {
		return nil, args.Error(1)
	}
	return updates.([]model.TaskUpdate), args.Error(1)
}

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, in service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, in)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserUseCase) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}
