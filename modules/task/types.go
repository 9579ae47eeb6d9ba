package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task. UserID is the
// authenticated caller, set by the API layer.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	UserID      int    `json:"userId"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID int `json:"taskId"`
}

// UpdateTaskRequest is the request for updating a task. Nil fields
// are left untouched.
type UpdateTaskRequest struct {
	TaskID      int     `json:"taskId"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID int `json:"taskId"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// ListTasksRequest is the request for listing tasks. Zero-valued
// filters are ignored; Page and Limit default to 1 and 10.
type ListTasksRequest struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	UserID   int    `json:"userId,omitempty"`
	Page     int    `json:"page,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks      []TaskData `json:"tasks"`
	Pagination PageInfo   `json:"pagination"`
}

// TaskData is the task shape exchanged between modules and returned
// to the API layer.
type TaskData struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	UserID      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskEnvelope wraps a TaskData with a Found flag so "not found" can
// cross the service container without being a transport error.
type TaskEnvelope struct {
	Task  TaskData `json:"task"`
	Found bool     `json:"found"`
}

// TaskPort defines the interface for task operations. This is the
// contract driving adapters (like the HTTP API) use to reach the core
// domain.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskData, error)
	GetTask(ctx context.Context, taskID int) (*TaskData, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*TaskData, error)
	DeleteTask(ctx context.Context, taskID int) error
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
}
