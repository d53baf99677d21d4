package serverutils

import "net/http"

// AppError is a request-scoped error with a fixed HTTP status. It covers
// the local failure classes (validation, not found); downstream model
// failures carry their own type in pkg/llm.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message}
}
