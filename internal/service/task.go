package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/msomdec/taskflow/internal/domain"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 1000
)

// TaskCreate carries the fields for creating a task. Status and Priority are
// raw strings; unknown values fall back to the defaults rather than failing.
type TaskCreate struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// TaskUpdate carries a partial update. Nil fields are left untouched. Unlike
// creation, unknown Status/Priority strings are rejected: a caller setting a
// field explicitly should hear about a typo instead of silently keeping the
// old value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// TaskService handles task CRUD and search, gated by ownership. All methods
// take an already-resolved owner ID; token handling is the caller's job.
type TaskService struct {
	tasks domain.TaskRepository
	users domain.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks domain.TaskRepository, users domain.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users}
}

// Create validates the input and persists a new task for ownerID.
func (s *TaskService) Create(ctx context.Context, ownerID int64, in TaskCreate) (*domain.Task, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}

	title := strings.TrimSpace(in.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}

	// Lenient on create: unknown enum strings fall back to the defaults.
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		status = domain.StatusPending
	}
	priority, ok := domain.ParsePriority(in.Priority)
	if !ok {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// List returns the owner's tasks, newest first, optionally filtered by
// status and priority. An unrecognized filter value matches nothing and
// yields an empty result rather than an error.
func (s *TaskService) List(ctx context.Context, ownerID int64, statusFilter, priorityFilter string) ([]domain.Task, error) {
	filter := domain.TaskFilter{}

	if statusFilter != "" {
		status, ok := domain.ParseStatus(statusFilter)
		if !ok {
			return []domain.Task{}, nil
		}
		filter.Status = &status
	}

	if priorityFilter != "" {
		priority, ok := domain.ParsePriority(priorityFilter)
		if !ok {
			return []domain.Task{}, nil
		}
		filter.Priority = &priority
	}

	tasks, err := s.tasks.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a task after checking existence and ownership. A missing task
// fails with ErrTaskNotFound; an existing task owned by someone else fails
// with ErrUnauthorized. The order matters: existence is checked first.
func (s *TaskService) Get(ctx context.Context, taskID, ownerID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	if task.UserID != ownerID {
		return nil, domain.ErrUnauthorized
	}
	return task, nil
}

// Update applies a partial update to an owned task. Only non-nil fields are
// touched; updated_at always advances.
func (s *TaskService) Update(ctx context.Context, taskID, ownerID int64, in TaskUpdate) (*domain.Task, error) {
	task, err := s.Get(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		task.Title = title
	}

	if in.Description != nil {
		if err := validateDescription(*in.Description); err != nil {
			return nil, err
		}
		task.Description = *in.Description
	}

	// Strict on update: the caller is intentionally setting these fields.
	if in.Status != nil {
		status, ok := domain.ParseStatus(*in.Status)
		if !ok {
			return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, *in.Status)
		}
		task.Status = status
	}

	if in.Priority != nil {
		priority, ok := domain.ParsePriority(*in.Priority)
		if !ok {
			return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, *in.Priority)
		}
		task.Priority = priority
	}

	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

// Delete permanently removes an owned task.
func (s *TaskService) Delete(ctx context.Context, taskID, ownerID int64) error {
	if _, err := s.Get(ctx, taskID, ownerID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Search performs a case-insensitive substring match over the owner's task
// titles and descriptions, newest first. A blank query matches nothing.
func (s *TaskService) Search(ctx context.Context, ownerID int64, query string) ([]domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Task{}, nil
	}

	tasks, err := s.tasks.Search(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// Limits count characters, not bytes, so multi-byte titles are not penalized.
func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: task title is required", domain.ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return fmt.Errorf("%w: task title cannot exceed %d characters", domain.ErrValidation, maxTitleLen)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return fmt.Errorf("%w: task description cannot exceed %d characters", domain.ErrValidation, maxDescriptionLen)
	}
	return nil
}
