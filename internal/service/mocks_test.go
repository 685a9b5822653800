package service_test

import (
	"context"

	"tasktracker/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task, entry *model.TaskLog) error {
	args := m.Called(ctx, task, entry)
	return args.Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task := args.Get(0)
	if task == nil {
		return nil, args.Error(1)
	}
	return task.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.([]model.Task), args.Error(1)
}

func (m *MockTaskStore) Save(ctx context.Context, task *model.Task, entry *model.TaskLog) error {
	args := m.Called(ctx, task, entry)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskStore) AddUpdate(ctx context.Context, update *model.TaskUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockTaskStore) GetLogs(ctx context.Context, taskID uuid.UUID) ([]model.TaskLog, error) {
	args := m.Called(ctx, taskID)
	logs := args.Get(0)
	if logs == nil {
		return nil, args.Error(1)
	}
	return logs.([]model.TaskLog), args.Error(1)
}

func (m *MockTaskStore) GetUpdates(ctx context.Context, taskID uuid.UUID) ([]model.TaskUpdate, error) {
	args := m.Called(ctx, taskID)
	updates := args.Get(0)
	if updates == nil {
		return nil, args.Error(1)
	}
	return updates.([]model.TaskUpdate), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}
