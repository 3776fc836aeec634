package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrNetwork reports that a request never produced an HTTP response.
var ErrNetwork = errors.New("network error: could not reach the portfolio API")

// APIError is a non-success response from the portfolio API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// apiErrorFrom turns a non-success response into an APIError, preferring the
// server's own message when the body carries one.
func apiErrorFrom(resp *resty.Response) *APIError {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return &APIError{StatusCode: resp.StatusCode(), Message: body.Message}
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode()),
	}
}

// ErrorMessage maps any error from this package to the text shown to the
// user: server messages pass through verbatim, transport problems collapse
// to one generic line.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrNetwork) {
		return ErrNetwork.Error()
	}
	return err.Error()
}
