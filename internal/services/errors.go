package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks operations whose target recording does not exist.
	// It is always surfaced to the caller and never retried internally.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration marks operations that cannot run because a required
	// credential or endpoint is absent.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnavailable marks a failed health check against an external
	// dependency; it short-circuits delivery retries.
	ErrUnavailable = errors.New("service unavailable")
	// ErrExternalTool marks failures reported by an external engine
	// (subprocess exit, non-2xx response).
	ErrExternalTool = errors.New("external tool error")
	// ErrTransient marks failures that may succeed on retry.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes step context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
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
