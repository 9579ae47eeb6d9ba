package api

import (
	"errors"
	"time"

	"github.com/VinihAugs/task-api/modules/auth"
	"github.com/VinihAugs/task-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth      auth.AuthPort
	tasks     task.TaskPort
	startedAt time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authAdapter auth.AuthPort, taskAdapter task.TaskPort) *Handlers {
	return &Handlers{
		auth:      authAdapter,
		tasks:     taskAdapter,
		startedAt: time.Now(),
	}
}

// Health reports liveness plus server uptime in seconds.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startedAt).Seconds(),
	})
}

// Login authenticates an email/password pair and issues a JWT.
func (h *Handlers) Login(c *fiber.Ctx) error {
	payload := payloadFrom[LoginPayload](c)

	result, err := h.auth.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(FailureResponse{
				Success: false,
				Error:   "Invalid credentials",
			})
		}
		return err
	}

	return c.JSON(SuccessResponse{
		Success: true,
		Message: "Login successful",
		Data: LoginData{
			User: UserData{
				ID:    result.User.ID,
				Email: result.User.Email,
				Name:  result.User.Name,
			},
			Token: result.Token,
		},
	})
}

// ListTasks returns one page of the task collection, optionally
// filtered by status, priority and owner.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	req := task.ListTasksRequest{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		UserID:   c.QueryInt("userId"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 10),
	}

	resp, err := h.tasks.ListTasks(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(SuccessResponse{
		Success:    true,
		Data:       resp.Tasks,
		Pagination: &resp.Pagination,
	})
}

// GetTask returns a single task by its numeric ID.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return taskNotFound(c)
	}

	data, err := h.tasks.GetTask(c.UserContext(), taskID)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return taskNotFound(c)
		}
		return err
	}

	return c.JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// CreateTask creates a task owned by the authenticated user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	payload := payloadFrom[CreateTaskPayload](c)
	identity := identityFrom(c)

	req := task.CreateTaskRequest{
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
		UserID:      identity.ID,
	}

	data, err := h.tasks.CreateTask(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Success: true,
		Message: "Task created successfully",
		Data:    data,
	})
}

// UpdateTask applies a partial update to an existing task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return taskNotFound(c)
	}

	payload := payloadFrom[UpdateTaskPayload](c)
	req := task.UpdateTaskRequest{
		TaskID:      taskID,
		Title:       payload.Title,
		Description: payload.Description,
		Status:      payload.Status,
		Priority:    payload.Priority,
	}

	data, err := h.tasks.UpdateTask(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return taskNotFound(c)
		}
		return err
	}

	return c.JSON(SuccessResponse{
		Success: true,
		Message: "Task updated successfully",
		Data:    data,
	})
}

// DeleteTask removes a task. Success carries no body.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return taskNotFound(c)
	}

	if err := h.tasks.DeleteTask(c.UserContext(), taskID); err != nil {
		if errors.Is(err, task.ErrNotFound) {
			return taskNotFound(c)
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func taskNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(FailureResponse{
		Success: false,
		Error:   "Task not found",
	})
}
