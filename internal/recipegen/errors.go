package recipegen

import "errors"

var (
	ErrNoJSON       = errors.New("No valid JSON found in response")
	ErrInvalidJSON  = errors.New("Invalid JSON format")
	ErrInvalidInput = errors.New("invalid input")
)
