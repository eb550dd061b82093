package apperr

import "fmt"

// Error codes
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeEmptyDeck  = "EMPTY_DECK"
	CodeConflict   = "CONFLICT"
	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL_ERROR"
)

// Error represents an application error with HTTP status code and error code
type Error struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a new NOT_FOUND error
func NotFound(resource string, id interface{}) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// Validation creates a new VALIDATION_ERROR
func Validation(field string, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// EmptyDeck creates a new EMPTY_DECK error. A study session may never be
// built over a deck with no cards; the caller is expected to surface an
// "add cards first" flow instead.
func EmptyDeck(deckID interface{}) *Error {
	return &Error{
		Code:    CodeEmptyDeck,
		Message: fmt.Sprintf("deck %v has no cards to study", deckID),
		Status:  400,
	}
}

// Conflict creates a new CONFLICT error
func Conflict(message string) *Error {
	return &Error{
		Code:    CodeConflict,
		Message: message,
		Status:  409,
	}
}

// BadRequest creates a new BAD_REQUEST error
func BadRequest(message string) *Error {
	return &Error{
		Code:    CodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// Internal creates a new INTERNAL_ERROR
func Internal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}
