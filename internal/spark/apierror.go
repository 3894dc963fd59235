package spark

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a backend rejection with the human-readable message already
// extracted from whatever shape the error body took.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spark api error (status %d): %s", e.StatusCode, e.Message)
}

// UserMessage returns the message suitable for surfacing to the user.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Something went wrong. Please try again."
}

type errorDetailItem struct {
	Msg string `json:"msg"`
}

// ExtractErrorMessage pulls a human-readable message out of an error body.
// The backend reports errors as {"detail": "..."} or as
// {"detail": [{"msg": "..."}, ...]}; anything else degrades to the fallback.
func ExtractErrorMessage(body []byte, fallback string) string {
	var withString struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &withString); err == nil && withString.Detail != "" {
		return withString.Detail
	}

	var withItems struct {
		Detail []errorDetailItem `json:"detail"`
	}
	if err := json.Unmarshal(body, &withItems); err == nil && len(withItems.Detail) > 0 && withItems.Detail[0].Msg != "" {
		return withItems.Detail[0].Msg
	}

	return fallback
}
