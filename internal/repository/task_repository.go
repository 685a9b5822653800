package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktracker/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task together with its first log entry. A missing owner
// surfaces as ErrOwnerNotFound.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task, entry *model.TaskLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrOwnerNotFound
			}
			return err
		}
		return tx.Create(entry).Error
	})
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByUserID retrieves every task owned by a user, newest first.
// Tasks created at the same instant keep their insertion order.
func (r *TaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("seq ASC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Save writes every column of an existing task and appends a log entry
func (r *TaskRepository) Save(ctx context.Context, task *model.Task, entry *model.TaskLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(task).Omit(clause.Associations).Select("*").Updates(task)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return tx.Create(entry).Error
	})
}

// Delete removes a task along with its logs and updates.
// Deleting an unknown id is not an error.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskUpdate{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Task{}).Error
	})
}

// AddUpdate appends a progress note to a task
func (r *TaskRepository) AddUpdate(ctx context.Context, update *model.TaskUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

// GetLogs returns the audit trail of a task, oldest first
func (r *TaskRepository) GetLogs(ctx context.Context, taskID uuid.UUID) ([]model.TaskLog, error) {
	var logs []model.TaskLog
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order(`"timestamp" ASC`).
		Find(&logs).Error
	return logs, err
}

// GetUpdates returns the progress notes of a task, oldest first
func (r *TaskRepository) GetUpdates(ctx context.Context, taskID uuid.UUID) ([]model.TaskUpdate, error) {
	var updates []model.TaskUpdate
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&updates).Error
	return updates, err
}
