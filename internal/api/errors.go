package api

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic/decoder"
)

// Error represents an error from the formatting service.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("postfmt api: %s (HTTP %d)", e.Message, e.StatusCode)
}

// checkResponse validates a service response. The service reports errors
// as {"error":"..."}; fall back to status code mapping when the body is
// not parseable.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr struct {
		Error string `json:"error"`
	}

	if err := decoder.NewStreamDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    apiErr.Error,
		}
	}

	return &Error{
		StatusCode: resp.StatusCode,
		Message:    statusMessage(resp.StatusCode),
	}
}

// statusMessage maps HTTP status codes to human-readable error messages.
func statusMessage(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "missing or invalid API key (set POSTFMT_API_KEY)"
	case http.StatusRequestEntityTooLarge:
		return "text too long for the formatting service"
	case http.StatusUnprocessableEntity:
		return "unsupported platform or tone"
	case http.StatusTooManyRequests:
		return "rate limited, try again later"
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return "formatting service unavailable"
	default:
		return fmt.Sprintf("unexpected error (HTTP %d)", code)
	}
}
