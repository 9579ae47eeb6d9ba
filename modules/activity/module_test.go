package activity

import (
	"context"
	"testing"
	"time"

	"github.com/VinihAugs/task-api/events"
)

func TestActivityModule_RecordsTaskLifecycle(t *testing.T) {
	module := NewModule()
	ctx := context.Background()

	created := events.TaskCreatedEvent{
		TaskID:    1,
		Title:     "Write report",
		UserID:    1,
		CreatedAt: time.Now(),
	}
	if err := module.handleTaskCreated(ctx, created, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	updated := events.TaskUpdatedEvent{TaskID: 1, UserID: 1, UpdatedAt: time.Now()}
	if err := module.handleTaskUpdated(ctx, updated, nil); err != nil {
		t.Fatalf("handleTaskUpdated() error = %v", err)
	}

	deleted := events.TaskDeletedEvent{TaskID: 1, UserID: 1, DeletedAt: time.Now()}
	if err := module.handleTaskDeleted(ctx, deleted, nil); err != nil {
		t.Fatalf("handleTaskDeleted() error = %v", err)
	}

	entries := module.GetEntries()
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	wantTypes := []string{"task_created", "task_updated", "task_deleted"}
	for i, want := range wantTypes {
		if entries[i].Type != want {
			t.Errorf("entries[%d].Type = %q, want %q", i, entries[i].Type, want)
		}
		if entries[i].TaskID != 1 {
			t.Errorf("entries[%d].TaskID = %d, want 1", i, entries[i].TaskID)
		}
		if entries[i].ID == "" {
			t.Errorf("entries[%d] has no ID", i)
		}
		if entries[i].OccurredAt.IsZero() {
			t.Errorf("entries[%d] has no timestamp", i)
		}
	}
}

func TestActivityModule_GetEntriesReturnsCopy(t *testing.T) {
	module := NewModule()
	ctx := context.Background()

	event := events.TaskCreatedEvent{TaskID: 7, Title: "Original", UserID: 2, CreatedAt: time.Now()}
	if err := module.handleTaskCreated(ctx, event, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	entries := module.GetEntries()
	entries[0].Message = "tampered"

	if module.GetEntries()[0].Message == "tampered" {
		t.Error("GetEntries must return a copy, not the internal slice")
	}
}
