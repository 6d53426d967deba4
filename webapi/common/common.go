// Package common holds the response envelopes, error mapping and request
// binding shared by all route groups.
package common

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/Coconhat/Currency-converter/pkg/converter"
	"github.com/Coconhat/Currency-converter/pkg/currency"
	"github.com/Coconhat/Currency-converter/pkg/provider"
	"github.com/Coconhat/Currency-converter/pkg/service/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const ProblemContentType = "application/problem+json"

var validate = newValidator()

// newValidator reports fields by their json or query name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ErrorResponseJSON returns a response following RFC 9457 Problem Details
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()

	return c.Status(status).JSON(pd, ProblemContentType)
}

// ProblemDetailsJSON writes a problem derived from err. The status follows
// ErrorToStatusCode unless an int override is passed; a string override
// replaces the detail text.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, overrides ...any) error {
	status := fiber.StatusBadRequest
	var detail any
	if err != nil {
		status = ErrorToStatusCode(err)
		detail = err.Error()
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			status = fiber.StatusBadRequest
			detail = fieldErrors(verrs)
		}
	}
	for _, o := range overrides {
		switch v := o.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	return ErrorResponseJSON(c, status, title, detail)
}

// ErrorHandler renders errors returned by handlers as problem details
// titled after their status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := ErrorToStatusCode(err)
	return ProblemDetailsJSON(c, http.StatusText(status), err, status)
}

// ErrorToStatusCode maps domain errors to appropriate HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, session.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, converter.ErrClosed):
		return fiber.StatusGone
	case errors.Is(err, provider.ErrInvalidRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, provider.ErrNetworkFailure), errors.Is(err, provider.ErrParseFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it. On failure the
// problem response has already been written and the returned error is non-nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err)
		return nil, err
	}
	return &input, nil
}

// BindQuery is BindAndValidate for query parameters.
func BindQuery[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		_ = ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid query", err.Error())
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		_ = ProblemDetailsJSON(c, "Validation failed", err)
		return nil, err
	}
	return &input, nil
}

func fieldErrors(verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
