package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work owned by a user. DueDate is the only persisted form
// of the scheduled time; the HH:mm start time is derived from it on read.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Seq         int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	Title       string     `gorm:"not null"`
	Description *string    `gorm:"type:text"`
	Status      Status     `gorm:"type:varchar(32);not null"`
	Priority    Priority   `gorm:"type:varchar(32);not null"`
	DueDate     *time.Time `gorm:"column:due_date"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false;not null"`

	Logs    []TaskLog    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Updates []TaskUpdate `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// Actions recorded in the task log.
const (
	LogActionCreated = "created"
	LogActionUpdated = "updated"
)

// TaskLog is an audit entry written alongside every change to a task.
type TaskLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action    string    `gorm:"type:varchar(64);not null"`
	Details   *string   `gorm:"type:text"`
	Timestamp time.Time `gorm:"column:timestamp;not null"`
}

// TaskUpdate is a free-text progress note attached to a task.
type TaskUpdate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
}
