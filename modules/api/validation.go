package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const payloadKey = "payload"

// validate is the shared validator. Field names in error details use
// the json tag, matching what the client actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LoginPayload is the login request body.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateTaskPayload is the task creation body. Status and priority
// fall back to their defaults when omitted.
type CreateTaskPayload struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// UpdateTaskPayload is the task update body. Every field is optional;
// absent fields leave the stored value untouched.
type UpdateTaskPayload struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// ValidateBody parses and validates the request body as T. On failure
// it replies 400 with one detail per violated rule; on success the
// parsed payload is stored in the request context for the handler.
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := new(T)
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(FailureResponse{
				Success: false,
				Error:   "Invalid request body",
			})
		}

		if err := validate.Struct(payload); err != nil {
			var details []FieldError
			var verrs validator.ValidationErrors
			if errors, ok := err.(validator.ValidationErrors); ok {
				verrs = errors
			}
			for _, fe := range verrs {
				details = append(details, FieldError{
					Field:   fe.Field(),
					Message: messageFor(fe),
				})
			}
			return c.Status(fiber.StatusBadRequest).JSON(FailureResponse{
				Success: false,
				Error:   "Validation failed",
				Details: details,
			})
		}

		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// payloadFrom retrieves the payload stored by ValidateBody.
func payloadFrom[T any](c *fiber.Ctx) *T {
	payload, _ := c.Locals(payloadKey).(*T)
	return payload
}

// messageFor renders a human-readable message for one violated rule.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
