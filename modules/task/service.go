package task

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/VinihAugs/task-api/domain/task"
	"github.com/VinihAugs/task-api/events"
	"github.com/go-monolith/mono"
)

// TaskService holds the task business logic over a Store. It
// implements TaskPort so it can also back the API directly in tests.
type TaskService struct {
	store Store
	bus   mono.EventBus
}

var _ TaskPort = (*TaskService)(nil)

// NewService creates a TaskService over the given store.
func NewService(store Store) *TaskService {
	return &TaskService{store: store}
}

// SetEventBus wires the event bus used for task lifecycle events.
func (s *TaskService) SetEventBus(bus mono.EventBus) {
	s.bus = bus
}

// CreateTask fills defaults for status/priority and persists a new
// task. Always succeeds given a valid title and user.
func (s *TaskService) CreateTask(_ context.Context, req *CreateTaskRequest) (*TaskData, error) {
	status := domain.Status(req.Status)
	if status == "" {
		status = domain.StatusPending
	}
	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	newTask := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		UserID:      req.UserID,
	}

	if err := s.store.Create(newTask); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	if s.bus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			Title:     newTask.Title,
			UserID:    newTask.UserID,
			CreatedAt: newTask.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(s.bus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %d: %v", newTask.ID, err)
		}
	}

	data := toTaskData(newTask)
	return &data, nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(_ context.Context, taskID int) (*TaskData, error) {
	task, err := s.store.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	data := toTaskData(task)
	return &data, nil
}

// UpdateTask merges the patch over the stored task. ID and CreatedAt
// are never overwritten.
func (s *TaskService) UpdateTask(_ context.Context, req *UpdateTaskRequest) (*TaskData, error) {
	task, err := s.store.Update(req.TaskID, Patch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    task.ID,
			UserID:    task.UserID,
			UpdatedAt: task.UpdatedAt,
		}
		if err := events.TaskUpdatedV1.Publish(s.bus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskUpdated event for task %d: %v", task.ID, err)
		}
	}

	data := toTaskData(task)
	return &data, nil
}

// DeleteTask removes a task. Returns ErrNotFound when no record was
// removed.
func (s *TaskService) DeleteTask(_ context.Context, taskID int) error {
	task, err := s.store.FindByID(taskID)
	if err != nil {
		return err
	}

	deleted, err := s.store.Delete(taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	if s.bus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    taskID,
			UserID:    task.UserID,
			DeletedAt: time.Now(),
		}
		if err := events.TaskDeletedV1.Publish(s.bus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %d: %v", taskID, err)
		}
	}

	return nil
}

// ListTasks returns the requested page of the filtered, sorted task
// set.
func (s *TaskService) ListTasks(_ context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	result, err := s.store.List(
		Filter{Status: req.Status, Priority: req.Priority, UserID: req.UserID},
		PageRequest{Page: req.Page, Limit: req.Limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	resp := &ListTasksResponse{
		Tasks:      make([]TaskData, 0, len(result.Tasks)),
		Pagination: result.Pagination,
	}
	for _, t := range result.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskData(t))
	}
	return resp, nil
}

// toTaskData converts a domain Task to the exchange shape.
func toTaskData(t *domain.Task) TaskData {
	return TaskData{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
