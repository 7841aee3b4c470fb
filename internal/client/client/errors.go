package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// RejectedError is a non-2xx answer from the API.
type RejectedError struct {
	Status  int
	Message string
	Code    string
	Fields  map[string]string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("rejected (%d): %s", e.Status, e.Message)
}
