package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/VinihAugs/task-api/events"
	"github.com/VinihAugs/task-api/modules/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Config selects the persistence backend for the task module.
type Config struct {
	// Store is "memory" or "sqlite".
	Store string
	// DBPath is the SQLite database file, ignored for the memory store.
	DBPath string
}

// TaskModule provides task management services (core domain).
type TaskModule struct {
	cfg     Config
	store   Store
	service *TaskService
	users   user.UserPort
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.DependentModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

func NewModule(cfg Config) *TaskModule {
	m := &TaskModule{cfg: cfg}
	m.store = NewMemoryStore()
	m.service = NewService(m.store)
	return m
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) Dependencies() []string {
	return []string{"user"}
}

func (m *TaskModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "user" {
		m.users = user.NewUserAdapter(container)
	}
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.service.SetEventBus(bus)
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	log.Printf("[task] Registered services: create-task, get-task, update-task, delete-task, list-tasks")
	return nil
}

func (m *TaskModule) Start(_ context.Context) error {
	if m.users == nil {
		return fmt.Errorf("user dependency not set")
	}
	if m.cfg.Store == "sqlite" {
		store, err := NewSQLiteStore(m.cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open task store: %w", err)
		}
		m.store = store
		m.service.store = store
		log.Printf("[task] Module started (store: sqlite, path: %s, depends on: user)", m.cfg.DBPath)
		return nil
	}
	log.Println("[task] Module started (store: memory, depends on: user)")
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	if err := m.store.Close(); err != nil {
		log.Printf("[task] Warning: failed to close task store: %v", err)
	}
	log.Println("[task] Module stopped")
	return nil
}

func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	result, err := m.store.List(Filter{}, PageRequest{Page: 1, Limit: 1})
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "Task store unavailable",
			Details: map[string]any{"error": err.Error()},
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "Task module is healthy",
		Details: map[string]any{
			"store":      m.cfg.Store,
			"task_count": result.Pagination.Total,
		},
	}
}

// createTask handles the create-task service request. The owner must
// exist in the user module before anything is stored.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskData, error) {
	if _, err := m.users.GetUser(ctx, req.UserID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return TaskData{}, fmt.Errorf("unknown task owner: %d", req.UserID)
		}
		return TaskData{}, fmt.Errorf("failed to verify task owner: %w", err)
	}

	data, err := m.service.CreateTask(ctx, &req)
	if err != nil {
		return TaskData{}, err
	}
	return *data, nil
}

// getTask handles the get-task service request. "Not found" is a
// normal response (Found: false), not a service error.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskEnvelope, error) {
	data, err := m.service.GetTask(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TaskEnvelope{Found: false}, nil
		}
		return TaskEnvelope{}, err
	}
	return TaskEnvelope{Task: *data, Found: true}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskEnvelope, error) {
	data, err := m.service.UpdateTask(ctx, &req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return TaskEnvelope{Found: false}, nil
		}
		return TaskEnvelope{}, err
	}
	return TaskEnvelope{Task: *data, Found: true}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.DeleteTask(ctx, req.TaskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteTaskResponse{Deleted: false}, nil
		}
		return DeleteTaskResponse{}, err
	}
	return DeleteTaskResponse{Deleted: true}, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	resp, err := m.service.ListTasks(ctx, &req)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return *resp, nil
}
