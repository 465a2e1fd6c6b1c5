package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"gemini-chat/internal/models"
)

var ErrInvalidResponse = errors.New("invalid response format")

// ValidationError is a client input error (4xx).
type ValidationError struct {
	Message string
	Details interface{}
}

func (e *ValidationError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Details)
	}
	return e.Message
}

// ProviderError carries a non-2xx reply from Gemini so the relay can pass it through.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Gemini API error [%d]: %s", e.StatusCode, e.Body)
}

// Details returns the provider body as raw JSON when it is JSON, otherwise as a string.
func (e *ProviderError) Details() interface{} {
	if e.Body != "" && gjson.Valid(e.Body) {
		return json.RawMessage(e.Body)
	}
	return e.Body
}

// ErrorInfo is what a transport needs to report a failed relay call.
type ErrorInfo struct {
	Status  int
	Message string
	Details interface{}
	Outcome string
}

// DescribeError maps an error to its status, public message and outcome.
func DescribeError(err error) ErrorInfo {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Message: validationErr.Message,
			Details: validationErr.Details,
			Outcome: models.OutcomeClientError,
		}
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return ErrorInfo{
			Status:  providerErr.StatusCode,
			Message: "Gemini API failed",
			Details: providerErr.Details(),
			Outcome: models.OutcomeProviderError,
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Message: "Server error",
		Details: err.Error(),
		Outcome: models.OutcomeServerError,
	}
}
