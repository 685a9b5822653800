package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tasktracker/internal/model"
	"tasktracker/internal/service"
)

// RegisterValidation makes gin's validator report JSON field names and
// teaches it the task vocabulary tags. Call it once before serving.
func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return model.Status(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("task_priority", func(fl validator.FieldLevel) bool {
		return model.Priority(fl.Field().String()).IsValid()
	})
}

// FieldError is one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

// bindError answers a request whose body or query failed to bind.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request", Details: details})
		return
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Details: []FieldError{{Field: typeErr.Field, Message: "has the wrong type"}},
		})
	case errors.Is(err, io.EOF):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body is required"})
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid", "uuid4":
		return "must be a UUID"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "task_status":
		return fmt.Sprintf("must be one of: %s", joinValues(model.Statuses()))
	case "task_priority":
		return fmt.Sprintf("must be one of: %s", joinValues(model.Priorities()))
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// respondError maps service errors to HTTP statuses. Anything unrecognised
// is logged and hidden behind a 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Details: []FieldError{{Field: verr.Field, Message: verr.Reason}},
		})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User not found"})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "User with this email already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	default:
		_ = c.Error(err)
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
