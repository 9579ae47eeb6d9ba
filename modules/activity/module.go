package activity

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/VinihAugs/task-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// Entry is one recorded activity.
type Entry struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	TaskID     int       `json:"taskId"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ActivityModule keeps an audit trail of task lifecycle events. It is
// a pure event consumer: it never calls into other modules.
type ActivityModule struct {
	entries []Entry
	mu      sync.RWMutex
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)

func NewModule() *ActivityModule {
	return &ActivityModule{
		entries: make([]Entry, 0),
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task created: %d - %s", event.TaskID, event.Title)
	m.record("task_created", event.TaskID, fmt.Sprintf("Task '%s' created by user %d", event.Title, event.UserID))
	return nil
}

func (m *ActivityModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task updated: %d", event.TaskID)
	m.record("task_updated", event.TaskID, fmt.Sprintf("Task %d updated", event.TaskID))
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task deleted: %d", event.TaskID)
	m.record("task_deleted", event.TaskID, fmt.Sprintf("Task %d deleted", event.TaskID))
	return nil
}

func (m *ActivityModule) record(entryType string, taskID int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, Entry{
		ID:         uuid.New().String(),
		Type:       entryType,
		TaskID:     taskID,
		Message:    message,
		OccurredAt: time.Now(),
	})
}

// GetEntries returns a copy of the recorded activity, oldest first.
func (m *ActivityModule) GetEntries() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Entry, len(m.entries))
	copy(result, m.entries)
	return result
}

func (m *ActivityModule) Start(_ context.Context) error {
	log.Println("[activity] Module started - listening for task events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}
