package fmc

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorMessage is a single server-reported message in an error envelope.
type ErrorMessage struct {
	Description string `json:"description" yaml:"description"`
}

// ErrorBody is the "error" member of the FMC error envelope.
type ErrorBody struct {
	Category string         `json:"category,omitempty" yaml:"category,omitempty"`
	Messages []ErrorMessage `json:"messages,omitempty" yaml:"messages,omitempty"`
	Severity string         `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// ErrorItem carries a per-item error on bulk responses.
type ErrorItem struct {
	Name  string `json:"name,omitempty"  yaml:"name,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ResponseError represents a non-success response from the FMC API. It is
// returned as a value by the verb operations so callers can count failures
// without exception-driven control flow; it is never retried.
type ResponseError struct {
	StatusCode int         `json:"-"`
	Err        *ErrorBody  `json:"error,omitempty"`
	Items      []ErrorItem `json:"items,omitempty"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "status %d", e.StatusCode)

	if e.Err != nil {
		for _, msg := range e.Err.Messages {
			fmt.Fprintf(&builder, ": %s", msg.Description)
		}
	}

	for _, item := range e.Items {
		if item.Error != "" {
			fmt.Fprintf(&builder, ": %s", item.Error)
		}
	}

	return builder.String()
}

// Messages returns the server-reported message descriptions, if any.
func (e *ResponseError) Messages() []string {
	var msgs []string

	if e.Err != nil {
		for _, msg := range e.Err.Messages {
			msgs = append(msgs, msg.Description)
		}
	}

	for _, item := range e.Items {
		if item.Error != "" {
			msgs = append(msgs, item.Error)
		}
	}

	return msgs
}

// ParseResponseError builds a ResponseError from a response body. A body
// that is not the error envelope still yields a usable error carrying the
// status code.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	if len(body) > 0 {
		// Best effort; the status code alone is enough to report.
		_ = json.Unmarshal(body, respErr)
	}

	return respErr
}

// IsNotFound checks if the error is a 404 rejection.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 rejection.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsTooManyRequests checks if the error is a 429 rejection.
func IsTooManyRequests(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, code int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == code
	}

	return false
}
