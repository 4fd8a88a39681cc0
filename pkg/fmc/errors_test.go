package fmc

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseError(t *testing.T) {
	body := []byte(`{
		"error": {
			"category": "FRAMEWORK",
			"messages": [
				{"description": "The object name already exists"},
				{"description": "Choose a different name"}
			],
			"severity": "ERROR"
		}
	}`)

	respErr := ParseResponseError(http.StatusBadRequest, body)
	assert.Equal(t, http.StatusBadRequest, respErr.StatusCode)
	require.NotNil(t, respErr.Err)
	assert.Equal(t, "FRAMEWORK", respErr.Err.Category)
	assert.Equal(t, []string{"The object name already exists", "Choose a different name"}, respErr.Messages())
	assert.Equal(t, "status 400: The object name already exists: Choose a different name", respErr.Error())
}

func TestParseResponseErrorMalformedBody(t *testing.T) {
	respErr := ParseResponseError(http.StatusBadGateway, []byte("<html>gateway error</html>"))
	assert.Equal(t, http.StatusBadGateway, respErr.StatusCode)
	assert.Empty(t, respErr.Messages())
	assert.Equal(t, "status 502", respErr.Error())
}

func TestParseResponseErrorEmptyBody(t *testing.T) {
	respErr := ParseResponseError(http.StatusNotFound, nil)
	assert.Equal(t, "status 404", respErr.Error())
}

func TestResponseErrorItemMessages(t *testing.T) {
	respErr := &ResponseError{
		StatusCode: http.StatusUnprocessableEntity,
		Items: []ErrorItem{
			{Name: "obj-1", Error: "invalid value"},
			{Name: "obj-2"},
		},
	}

	assert.Equal(t, []string{"invalid value"}, respErr.Messages())
}

func TestStatusPredicates(t *testing.T) {
	notFound := &ResponseError{StatusCode: http.StatusNotFound}
	unauthorized := &ResponseError{StatusCode: http.StatusUnauthorized}
	throttled := &ResponseError{StatusCode: http.StatusTooManyRequests}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(unauthorized))
	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, IsTooManyRequests(throttled))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("getting host: %w", notFound)
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(errors.New("plain error")))
	assert.False(t, IsNotFound(nil))
}
