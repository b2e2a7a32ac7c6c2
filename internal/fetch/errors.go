package fetch

import (
	"errors"
	"fmt"
)

var (
	ErrNoIngredients     = errors.New("no ingredients")
	ErrServerUnavailable = errors.New("server is not responding")
	ErrMalformedResponse = errors.New("invalid recipe data format")
)

// ServerError is returned when the generation endpoint answers with a non-2xx status.
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %s", e.Body)
}

// ApplicationError carries the "error" field of an otherwise successful response.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

const unavailableMessage = "Unable to connect to the server. Please check your connection and try again."

// Message maps a fetch failure to the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrServerUnavailable) {
		return unavailableMessage
	}
	if errors.Is(err, ErrNoIngredients) {
		return "Please add at least one ingredient first."
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return "Failed to get recipes: " + appErr.Message
	}
	var srvErr *ServerError
	if errors.As(err, &srvErr) {
		return "Failed to get recipes: Server error: " + srvErr.Body
	}
	if errors.Is(err, ErrMalformedResponse) {
		return "Failed to get recipes: Invalid recipe data format"
	}
	return "Failed to get recipes: " + err.Error()
}
