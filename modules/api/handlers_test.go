package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "github.com/VinihAugs/task-api/domain/user"
	"github.com/VinihAugs/task-api/modules/auth"
	"github.com/VinihAugs/task-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// setupTestAPI builds the production routing over a real task service
// and a stubbed auth port. "Bearer valid-token" authenticates as the
// admin demo user.
func setupTestAPI(t *testing.T) *fiber.App {
	t.Helper()

	mockAuth := &mockAuthPort{
		loginFunc: func(_ context.Context, email, password string) (*auth.LoginResult, error) {
			if email == "admin@example.com" && password == "admin123" {
				return &auth.LoginResult{
					User:  domain.Identity{ID: 1, Email: email, Name: "Administrador"},
					Token: "issued-token",
				}, nil
			}
			return nil, auth.ErrInvalidCredentials
		},
		validateTokenFunc: func(_ context.Context, token string) (*domain.Identity, error) {
			if token == "valid-token" {
				return &domain.Identity{ID: 1, Email: "admin@example.com", Name: "Administrador"}, nil
			}
			return nil, auth.ErrInvalidToken
		},
	}

	service := task.NewService(task.NewMemoryStore())
	return newApp(Config{Port: 3000}, NewHandlers(mockAuth, service))
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string, authed bool) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer valid-token")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return resp, raw
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestAPI(t)

	resp, raw := doRequest(t, app, "GET", "/api/health", "", false)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.Unmarshal(raw, &health); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("status = %q, want ok", health.Status)
	}
	if health.Timestamp == "" {
		t.Error("expected a timestamp")
	}
	if health.Uptime < 0 {
		t.Errorf("uptime = %v, want >= 0", health.Uptime)
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		app := setupTestAPI(t)
		resp, raw := doRequest(t, app, "POST", "/api/auth/login",
			`{"email":"admin@example.com","password":"admin123"}`, false)

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", resp.StatusCode, raw)
		}

		body := string(raw)
		if !strings.Contains(body, `"success":true`) {
			t.Errorf("body = %s, want success true", body)
		}
		if !strings.Contains(body, `"token":"issued-token"`) {
			t.Errorf("body = %s, want the issued token", body)
		}
		if !strings.Contains(body, `"Administrador"`) {
			t.Errorf("body = %s, want the user name", body)
		}
		if strings.Contains(body, "password") {
			t.Errorf("body = %s, must not echo the password field", body)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		app := setupTestAPI(t)
		resp, raw := doRequest(t, app, "POST", "/api/auth/login",
			`{"email":"admin@example.com","password":"wrong-pass"}`, false)

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", resp.StatusCode)
		}
		if !strings.Contains(string(raw), `"Invalid credentials"`) {
			t.Errorf("body = %s, want invalid credentials error", raw)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		app := setupTestAPI(t)
		resp, raw := doRequest(t, app, "POST", "/api/auth/login",
			`{"email":"admin@example.com"}`, false)

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		if !strings.Contains(string(raw), `"password"`) {
			t.Errorf("body = %s, want a password detail", raw)
		}
	})
}

func TestCreateTaskEndpoint(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		app := setupTestAPI(t)
		resp, _ := doRequest(t, app, "POST", "/api/tasks",
			`{"title":"Unauthorized attempt"}`, false)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("validation runs after authentication", func(t *testing.T) {
		app := setupTestAPI(t)
		resp, raw := doRequest(t, app, "POST", "/api/tasks", `{"title":"AB"}`, true)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400: %s", resp.StatusCode, raw)
		}
		if !strings.Contains(string(raw), `"title"`) {
			t.Errorf("body = %s, want a title detail", raw)
		}
	})

	t.Run("creates with defaults and owner", func(t *testing.T) {
		app := setupTestAPI(t)
		resp, raw := doRequest(t, app, "POST", "/api/tasks",
			`{"title":"My first task"}`, true)

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want 201: %s", resp.StatusCode, raw)
		}

		var envelope struct {
			Success bool          `json:"success"`
			Data    task.TaskData `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if !envelope.Success {
			t.Error("expected success true")
		}
		if envelope.Data.ID != 1 {
			t.Errorf("id = %d, want 1", envelope.Data.ID)
		}
		if envelope.Data.Status != "pending" || envelope.Data.Priority != "medium" {
			t.Errorf("defaults = %s/%s, want pending/medium", envelope.Data.Status, envelope.Data.Priority)
		}
		if envelope.Data.UserID != 1 {
			t.Errorf("userId = %d, want the authenticated user", envelope.Data.UserID)
		}
		if envelope.Data.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	})
}

func TestGetTaskEndpoint(t *testing.T) {
	app := setupTestAPI(t)

	doRequest(t, app, "POST", "/api/tasks", `{"title":"Fetch me"}`, true)

	t.Run("existing task", func(t *testing.T) {
		resp, raw := doRequest(t, app, "GET", "/api/tasks/1", "", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", resp.StatusCode, raw)
		}
		if !strings.Contains(string(raw), `"Fetch me"`) {
			t.Errorf("body = %s, want the task title", raw)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, raw := doRequest(t, app, "GET", "/api/tasks/99999", "", false)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		if !strings.Contains(string(raw), `"Task not found"`) {
			t.Errorf("body = %s, want task not found error", raw)
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp, _ := doRequest(t, app, "GET", "/api/tasks/abc", "", false)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestUpdateTaskEndpoint(t *testing.T) {
	app := setupTestAPI(t)

	doRequest(t, app, "POST", "/api/tasks", `{"title":"Before update"}`, true)

	t.Run("requires authentication", func(t *testing.T) {
		resp, _ := doRequest(t, app, "PUT", "/api/tasks/1", `{"status":"completed"}`, false)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("partial update", func(t *testing.T) {
		resp, raw := doRequest(t, app, "PUT", "/api/tasks/1", `{"status":"completed"}`, true)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", resp.StatusCode, raw)
		}

		body := string(raw)
		if !strings.Contains(body, `"completed"`) {
			t.Errorf("body = %s, want the new status", body)
		}
		if !strings.Contains(body, `"Before update"`) {
			t.Errorf("body = %s, want the untouched title", body)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, _ := doRequest(t, app, "PUT", "/api/tasks/99999", `{"status":"completed"}`, true)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestDeleteTaskEndpoint(t *testing.T) {
	app := setupTestAPI(t)

	doRequest(t, app, "POST", "/api/tasks", `{"title":"Short lived"}`, true)

	t.Run("requires authentication", func(t *testing.T) {
		resp, _ := doRequest(t, app, "DELETE", "/api/tasks/1", "", false)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", resp.StatusCode)
		}
	})

	t.Run("deletes and stays gone", func(t *testing.T) {
		resp, _ := doRequest(t, app, "DELETE", "/api/tasks/1", "", true)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", resp.StatusCode)
		}

		resp, _ = doRequest(t, app, "GET", "/api/tasks/1", "", false)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404 after delete", resp.StatusCode)
		}

		resp, _ = doRequest(t, app, "DELETE", "/api/tasks/1", "", true)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404 on repeat delete", resp.StatusCode)
		}
	})
}

func TestListTasksEndpoint(t *testing.T) {
	app := setupTestAPI(t)

	for i := 0; i < 12; i++ {
		doRequest(t, app, "POST", "/api/tasks",
			fmt.Sprintf(`{"title":"Pending task %d"}`, i), true)
	}
	for i := 0; i < 3; i++ {
		doRequest(t, app, "POST", "/api/tasks",
			fmt.Sprintf(`{"title":"Done task %d","status":"completed"}`, i), true)
	}

	decode := func(t *testing.T, raw []byte) (tasks []task.TaskData, pagination task.PageInfo) {
		t.Helper()
		var envelope struct {
			Success    bool            `json:"success"`
			Data       []task.TaskData `json:"data"`
			Pagination task.PageInfo   `json:"pagination"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		return envelope.Data, envelope.Pagination
	}

	t.Run("default pagination", func(t *testing.T) {
		resp, raw := doRequest(t, app, "GET", "/api/tasks", "", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		tasks, pagination := decode(t, raw)
		if len(tasks) != 10 {
			t.Errorf("len(tasks) = %d, want 10", len(tasks))
		}
		if pagination.Page != 1 || pagination.Limit != 10 || pagination.Total != 15 || pagination.TotalPages != 2 {
			t.Errorf("pagination = %+v, want {1 10 15 2}", pagination)
		}
	})

	t.Run("status filter with pagination", func(t *testing.T) {
		resp, raw := doRequest(t, app, "GET", "/api/tasks?status=pending&page=2&limit=10", "", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		tasks, pagination := decode(t, raw)
		if len(tasks) != 2 {
			t.Errorf("len(tasks) = %d, want 2", len(tasks))
		}
		if pagination.Total != 12 || pagination.TotalPages != 2 {
			t.Errorf("pagination = %+v, want total 12 over 2 pages", pagination)
		}
		for _, item := range tasks {
			if item.Status != "pending" {
				t.Errorf("task %d has status %q, want pending", item.ID, item.Status)
			}
		}
	})

	t.Run("invalid page falls back to defaults", func(t *testing.T) {
		resp, raw := doRequest(t, app, "GET", "/api/tasks?page=abc&limit=-5", "", false)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		_, pagination := decode(t, raw)
		if pagination.Page != 1 || pagination.Limit != 10 {
			t.Errorf("pagination = %+v, want page 1 limit 10", pagination)
		}
	})

	t.Run("most recent first", func(t *testing.T) {
		_, raw := doRequest(t, app, "GET", "/api/tasks?limit=15", "", false)
		tasks, _ := decode(t, raw)
		for i := 1; i < len(tasks); i++ {
			if tasks[i-1].ID <= tasks[i].ID {
				t.Errorf("tasks out of order: ID %d before ID %d", tasks[i-1].ID, tasks[i].ID)
			}
		}
	})
}

func TestErrorHandler(t *testing.T) {
	newFailingApp := func(development bool) *fiber.App {
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ErrorHandler:          errorHandler(development),
		})
		app.Get("/boom", func(c *fiber.Ctx) error {
			return errors.New("boom")
		})
		app.Get("/missing", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		})
		return app
	}

	t.Run("stack exposed in development", func(t *testing.T) {
		app := newFailingApp(true)
		resp, raw := doRequest(t, app, "GET", "/boom", "", false)

		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
		body := string(raw)
		if !strings.Contains(body, `"error":true`) {
			t.Errorf("body = %s, want the server error envelope", body)
		}
		if !strings.Contains(body, `"stack"`) {
			t.Errorf("body = %s, want a stack trace in development", body)
		}
	})

	t.Run("stack hidden otherwise", func(t *testing.T) {
		app := newFailingApp(false)
		resp, raw := doRequest(t, app, "GET", "/boom", "", false)

		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", resp.StatusCode)
		}
		body := string(raw)
		if strings.Contains(body, `"stack"`) {
			t.Errorf("body = %s, must not leak a stack trace", body)
		}
		if strings.Contains(body, "boom") {
			t.Errorf("body = %s, must not leak the internal error", body)
		}
	})

	t.Run("client errors keep the failure envelope", func(t *testing.T) {
		app := newFailingApp(false)
		resp, raw := doRequest(t, app, "GET", "/missing", "", false)

		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		if !strings.Contains(string(raw), `"success":false`) {
			t.Errorf("body = %s, want the failure envelope", raw)
		}
	})
}
