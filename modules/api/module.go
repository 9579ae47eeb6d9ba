package api

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/VinihAugs/task-api/modules/auth"
	"github.com/VinihAugs/task-api/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Config holds the HTTP server settings.
type Config struct {
	Port int
	// Development gates the stack trace in 500 responses.
	Development bool
}

// APIModule is the HTTP API module (driving adapter).
type APIModule struct {
	cfg         Config
	app         *fiber.App
	authAdapter auth.AuthPort
	taskAdapter task.TaskPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config) *APIModule {
	return &APIModule{cfg: cfg}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "task":
		m.taskAdapter = task.NewTaskAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskAdapter == nil {
		return fmt.Errorf("task dependency not set")
	}

	m.app = newApp(m.cfg, NewHandlers(m.authAdapter, m.taskAdapter))

	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.cfg.Port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.cfg.Port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.cfg.Port,
		},
	}
}

// newApp builds the Fiber application with middleware and routes. It
// is separate from Start so tests can exercise the exact production
// routing via app.Test.
func newApp(cfg Config, handlers *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(cfg.Development),
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/api/health", handlers.Health)

	authRoutes := app.Group("/api/auth")
	authRoutes.Post("/login", ValidateBody[LoginPayload](), handlers.Login)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", handlers.ListTasks)
	tasks.Get("/:id", handlers.GetTask)
	tasks.Post("/", AuthMiddleware(handlers.auth), ValidateBody[CreateTaskPayload](), handlers.CreateTask)
	tasks.Put("/:id", AuthMiddleware(handlers.auth), ValidateBody[UpdateTaskPayload](), handlers.UpdateTask)
	tasks.Delete("/:id", AuthMiddleware(handlers.auth), handlers.DeleteTask)

	return app
}

// errorHandler maps unhandled errors to the API's error envelopes.
// Client errors keep the success/error shape; server errors switch to
// the error/message shape, with the stack included in development.
func errorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code < fiber.StatusInternalServerError {
			return c.Status(code).JSON(FailureResponse{
				Success: false,
				Error:   message,
			})
		}

		log.Printf("[api] %s %s failed: %v", c.Method(), c.Path(), err)

		resp := InternalErrorResponse{
			Error:   true,
			Message: message,
		}
		if development {
			resp.Stack = err.Error() + "\n" + string(debug.Stack())
		}
		return c.Status(code).JSON(resp)
	}
}
