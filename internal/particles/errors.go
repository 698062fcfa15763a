package particles

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates a particle or system was configured with
// values outside their valid range.
var ErrInvalidConfig = errors.New("particles: invalid configuration")

// ConfigError reports the offending field of a rejected configuration.
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("particles: invalid configuration: %s = %g", e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func requirePositive(field string, v float64) error {
	if !(v > 0) {
		return &ConfigError{Field: field, Value: v}
	}
	return nil
}

func requireNonNegative(field string, v float64) error {
	if !(v >= 0) {
		return &ConfigError{Field: field, Value: v}
	}
	return nil
}
