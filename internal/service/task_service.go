package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"tasktracker/internal/model"
	"tasktracker/internal/optional"
	"tasktracker/internal/repository"
	"tasktracker/internal/timeofday"
)

// MaxTextLength bounds task descriptions and progress notes, in characters.
const MaxTextLength = 2000

// TaskStore persists tasks and their audit records.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task, entry *model.TaskLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	Save(ctx context.Context, task *model.Task, entry *model.TaskLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddUpdate(ctx context.Context, update *model.TaskUpdate) error
	GetLogs(ctx context.Context, taskID uuid.UUID) ([]model.TaskLog, error)
	GetUpdates(ctx context.Context, taskID uuid.UUID) ([]model.TaskUpdate, error)
}

// UserLookup resolves a user by id, returning nil, nil when there is none.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	// TimeOfDay is an HH:mm start time placed on today's date. Nil or blank
	// means the task has no due date.
	TimeOfDay *string
	UserID    uuid.UUID
}

// TaskPatch lists the fields an update may touch. Unset fields are left
// alone. Clearing TimeOfDay (or setting it to "") removes the due date and
// clearing Description sets it to null; the other fields cannot be cleared.
type TaskPatch struct {
	Title       optional.Field[string]
	Description optional.Field[string]
	Status      optional.Field[string]
	Priority    optional.Field[string]
	TimeOfDay   optional.Field[string]
}

func (p TaskPatch) IsEmpty() bool {
	return !p.Title.IsSet() &&
		!p.Description.IsSet() &&
		!p.Status.IsSet() &&
		!p.Priority.IsSet() &&
		!p.TimeOfDay.IsSet()
}

type TaskService struct {
	tasks  TaskStore
	users  UserLookup
	clock  func() time.Time
	loc    *time.Location
	logger *slog.Logger
}

type Option func(*TaskService)

func WithClock(clock func() time.Time) Option {
	return func(s *TaskService) { s.clock = clock }
}

// WithLocation sets the time zone in which start times are interpreted.
func WithLocation(loc *time.Location) Option {
	return func(s *TaskService) { s.loc = loc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *TaskService) { s.logger = logger }
}

func NewTaskService(tasks TaskStore, users UserLookup, opts ...Option) *TaskService {
	s := &TaskService{
		tasks:  tasks,
		users:  users,
		clock:  time.Now,
		loc:    time.Local,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input, checks the owner exists and stores a new task.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := normalizeDescription(in.Description)
	if err != nil {
		return nil, err
	}
	status, err := model.ParseStatus(in.Status)
	if err != nil {
		return nil, invalidCause("status", err)
	}
	priority, err := model.ParsePriority(in.Priority)
	if err != nil {
		return nil, invalidCause("priority", err)
	}
	if in.UserID == uuid.Nil {
		return nil, invalid("userId", "is required")
	}

	now := s.now()
	var dueDate *time.Time
	if in.TimeOfDay != nil {
		d, err := timeofday.ToDueDate(*in.TimeOfDay, now)
		if err != nil {
			return nil, invalidCause("startTime", err)
		}
		dueDate = &d
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	entry := &model.TaskLog{
		ID:        uuid.New(),
		TaskID:    task.ID,
		Action:    model.LogActionCreated,
		Timestamp: now,
	}
	if err := s.tasks.Create(ctx, task, entry); err != nil {
		// the owner can vanish between the lookup and the insert
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "task created", "task_id", task.ID, "user_id", task.UserID)
	return task, nil
}

// ListByUser returns the user's tasks, most recently created first.
func (s *TaskService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	if userID == uuid.Nil {
		return nil, invalid("userId", "is required")
	}
	tasks, err := s.tasks.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		s.localize(&tasks[i])
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.load(ctx, id)
}

// Update applies the fields present in patch. An empty patch returns the
// task untouched, without writing or bumping UpdatedAt.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, patch TaskPatch) (*model.Task, error) {
	task, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return task, nil
	}

	now := s.now()
	changed := make([]string, 0, 5)

	if patch.Title.IsSet() {
		raw, ok := patch.Title.Get()
		if !ok {
			return nil, invalid("title", "cannot be null")
		}
		title, err := normalizeTitle(raw)
		if err != nil {
			return nil, err
		}
		task.Title = title
		changed = append(changed, "title")
	}

	if patch.Description.IsSet() {
		var description *string
		if raw, ok := patch.Description.Get(); ok {
			if description, err = normalizeDescription(&raw); err != nil {
				return nil, err
			}
		}
		task.Description = description
		changed = append(changed, "description")
	}

	if patch.Status.IsSet() {
		raw, ok := patch.Status.Get()
		if !ok {
			return nil, invalid("status", "cannot be null")
		}
		status, err := model.ParseStatus(raw)
		if err != nil {
			return nil, invalidCause("status", err)
		}
		task.Status = status
		changed = append(changed, "status")
	}

	if patch.Priority.IsSet() {
		raw, ok := patch.Priority.Get()
		if !ok {
			return nil, invalid("priority", "cannot be null")
		}
		priority, err := model.ParsePriority(raw)
		if err != nil {
			return nil, invalidCause("priority", err)
		}
		task.Priority = priority
		changed = append(changed, "priority")
	}

	if patch.TimeOfDay.IsSet() {
		raw, _ := patch.TimeOfDay.Get()
		raw = strings.TrimSpace(raw)
		if raw == "" {
			task.DueDate = nil
		} else {
			ref := now
			if task.DueDate != nil {
				ref = *task.DueDate
			}
			d, err := timeofday.ToDueDate(raw, ref)
			if err != nil {
				return nil, invalidCause("startTime", err)
			}
			task.DueDate = &d
		}
		changed = append(changed, "startTime")
	}

	task.UpdatedAt = now
	details := strings.Join(changed, ", ")
	entry := &model.TaskLog{
		ID:        uuid.New(),
		TaskID:    task.ID,
		Action:    model.LogActionUpdated,
		Details:   &details,
		Timestamp: now,
	}
	if err := s.tasks.Save(ctx, task, entry); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "task updated", "task_id", task.ID, "fields", details)
	return task, nil
}

// Remove deletes a task with its logs and updates. Unknown ids are ignored.
func (s *TaskService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "task removed", "task_id", id)
	return nil
}

// AddUpdate attaches a progress note to an existing task.
func (s *TaskService) AddUpdate(ctx context.Context, taskID uuid.UUID, message string) (*model.TaskUpdate, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalid("message", "is required")
	}
	if utf8.RuneCountInString(message) > MaxTextLength {
		return nil, invalid("message", "must be at most %d characters", MaxTextLength)
	}
	if _, err := s.load(ctx, taskID); err != nil {
		return nil, err
	}

	update := &model.TaskUpdate{
		ID:        uuid.New(),
		TaskID:    taskID,
		Message:   message,
		CreatedAt: s.now(),
	}
	if err := s.tasks.AddUpdate(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *TaskService) Logs(ctx context.Context, taskID uuid.UUID) ([]model.TaskLog, error) {
	if _, err := s.load(ctx, taskID); err != nil {
		return nil, err
	}
	return s.tasks.GetLogs(ctx, taskID)
}

func (s *TaskService) Updates(ctx context.Context, taskID uuid.UUID) ([]model.TaskUpdate, error) {
	if _, err := s.load(ctx, taskID); err != nil {
		return nil, err
	}
	return s.tasks.GetUpdates(ctx, taskID)
}

func (s *TaskService) load(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	s.localize(task)
	return task, nil
}

func (s *TaskService) now() time.Time {
	return s.clock().In(s.loc)
}

// localize moves the due date into the service time zone so the derived
// start time reads the same as when it was written.
func (s *TaskService) localize(task *model.Task) {
	if task.DueDate != nil {
		d := task.DueDate.In(s.loc)
		task.DueDate = &d
	}
}

func normalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", invalid("title", "is required")
	}
	return title, nil
}

// normalizeDescription trims the text and maps blank to nil.
func normalizeDescription(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	d := strings.TrimSpace(*raw)
	if d == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(d) > MaxTextLength {
		return nil, invalid("description", "must be at most %d characters", MaxTextLength)
	}
	return &d, nil
}
