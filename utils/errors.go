package utils

import "fmt"

// WrapError wraps an error with additional context. A nil err yields a
// plain error carrying only msg.
func WrapError(err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%s", msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
