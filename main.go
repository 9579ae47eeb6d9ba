package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/VinihAugs/task-api/config"
	"github.com/VinihAugs/task-api/modules/activity"
	"github.com/VinihAugs/task-api/modules/api"
	"github.com/VinihAugs/task-api/modules/auth"
	"github.com/VinihAugs/task-api/modules/task"
	"github.com/VinihAugs/task-api/modules/user"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	app.Register(user.NewModule())     // Independent module (seeds demo users)
	app.Register(activity.NewModule()) // Event consumer (subscribes to task events)
	app.Register(task.NewModule(task.Config{
		Store:  cfg.TaskStore,
		DBPath: cfg.TaskDBPath,
	})) // Core domain (depends on user, emits events)
	app.Register(auth.NewModule(auth.Config{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
	})) // Depends on user
	app.Register(api.NewModule(api.Config{
		Port:        cfg.Port,
		Development: cfg.Development(),
	})) // Driving adapter (depends on auth, task)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg *config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Environment: %s | Task store: %s", cfg.Env, cfg.TaskStore)
	log.Println("")
	log.Println("Demo Users Available:")
	log.Println("  - admin@example.com / admin123 (Administrador)")
	log.Println("  - user@example.com  / user123  (Usuário Teste)")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.Port)
	log.Println("  GET    /api/health         - Health check")
	log.Println("  POST   /api/auth/login     - Login, returns a JWT")
	log.Println("  GET    /api/tasks          - List tasks (filters + pagination)")
	log.Println("  GET    /api/tasks/:id      - Get a task by ID")
	log.Println("  POST   /api/tasks          - Create a task (requires token)")
	log.Println("  PUT    /api/tasks/:id      - Update a task (requires token)")
	log.Println("  DELETE /api/tasks/:id      - Delete a task (requires token)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
