package api

import "github.com/VinihAugs/task-api/modules/task"

// SuccessResponse is the envelope for every 2xx JSON body.
type SuccessResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
	Data       any            `json:"data,omitempty"`
	Pagination *task.PageInfo `json:"pagination,omitempty"`
}

// FailureResponse is the envelope for 4xx errors.
type FailureResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError points a validation failure at a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InternalErrorResponse is the envelope for 5xx errors. Stack is only
// populated outside production.
type InternalErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}

// LoginData is the payload of a successful login response.
type LoginData struct {
	User  UserData `json:"user"`
	Token string   `json:"token"`
}

// UserData is the public user shape. The password never appears here.
type UserData struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}
