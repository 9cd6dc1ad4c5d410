package config

import (
	"errors"
	"fmt"
)

// ErrRequired marks a setting that must be present.
var ErrRequired = errors.New("is required")

// Error reports an invalid or missing setting.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err is a configuration error.
func IsError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}
