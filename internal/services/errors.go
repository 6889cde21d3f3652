package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrConfiguration marks failures caused by missing or invalid provider
	// credentials. Fatal for the whole request, never retried.
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")
	// ErrUpstream marks provider-side failures (outage, rate limit, malformed
	// response). Call sites handle these through their fallback chains.
	ErrUpstream = errors.New("upstream provider error")
	// ErrTimeout marks requests abandoned by the platform request deadline.
	ErrTimeout = errors.New("timeout")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later status classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrUpstream
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps a classified error to the response code the API layer
// should emit.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfiguration):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
