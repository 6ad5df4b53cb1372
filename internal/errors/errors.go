package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindUnclassified Kind = iota
	KindValidation
	KindUnauthorized
	KindInvalidOperation
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindNotFound:
		return "not_found"
	default:
		return "unclassified"
	}
}

// GenericInternalMessage is shown for unclassified errors outside development.
const GenericInternalMessage = "Internal Server Error"

// Error is a classified API error
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" && e.Kind == KindValidation {
		return "validation failed"
	}
	return e.Message
}

// Validation creates a field-keyed validation error.
func Validation(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: "The given data was invalid.", Fields: fields}
}

// ValidationField creates a validation error for a single field.
func ValidationField(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

// InvalidOperation creates a domain rule violation.
func InvalidOperation(message string) *Error {
	return &Error{Kind: KindInvalidOperation, Message: message}
}

// NotFound creates a missing resource error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found."
	}
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf returns the kind of err, or KindUnclassified.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnclassified
}

// Status maps a kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidOperation:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Body renders the JSON body for err.
func Body(err error, development bool) gin.H {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		if development {
			return gin.H{"error": err.Error()}
		}
		return gin.H{"error": GenericInternalMessage}
	}

	if apiErr.Kind == KindValidation {
		return gin.H{"errors": apiErr.Fields}
	}
	return gin.H{"error": apiErr.Message}
}

// Respond sends the error response and aborts the chain.
func Respond(c *gin.Context, err error, development bool) {
	c.AbortWithStatusJSON(Status(KindOf(err)), Body(err, development))
}
