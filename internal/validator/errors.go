package validator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequired matches a *MissingRequiredError via errors.Is
	ErrMissingRequired = errors.New("missing required environment variables")

	// ErrNotSet matches a *NotSetError via errors.Is
	ErrNotSet = errors.New("environment variable is not set")
)

// MissingRequiredError is the aggregated failure of a validation pass.
// Keys lists every missing required key in spec order.
type MissingRequiredError struct {
	Keys []string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequired, strings.Join(e.Keys, ", "))
}

func (e *MissingRequiredError) Is(target error) bool {
	return target == ErrMissingRequired
}

// NotSetError is returned when a single required value is requested but absent.
type NotSetError struct {
	Key string
}

func (e *NotSetError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Key)
}

func (e *NotSetError) Is(target error) bool {
	return target == ErrNotSet
}

// MissingKeys extracts the missing key list from err, if it is (or wraps)
// a MissingRequiredError.
func MissingKeys(err error) ([]string, bool) {
	var mre *MissingRequiredError
	if !errors.As(err, &mre) {
		return nil, false
	}
	return append([]string(nil), mre.Keys...), true
}
