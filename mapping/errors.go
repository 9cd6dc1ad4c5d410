package mapping

import (
	"errors"
	"fmt"
	"strings"
)

// UnknownCodeError reports a lookup cell whose code is not in the lookup
// table. It is collected rather than returned: the rest of the row is
// still mapped.
type UnknownCodeError struct {
	Sheet      string
	Row        int
	Field      string
	Vocabulary string
	Code       string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%s row %d, %s: %q not in %s", e.Sheet, e.Row, e.Field, e.Code, e.Vocabulary)
}

// ConfigError reports a field table that does not fit the vocabulary or a
// worksheet whose header is missing expected columns.
type ConfigError struct {
	Sheet string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("sheet %s: %v", e.Sheet, e.Err)
	}
	return fmt.Sprintf("sheet %s, field %q: %v", e.Sheet, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError returns true if err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// MissingHeadersError lists expected columns absent from a worksheet.
type MissingHeadersError struct {
	Headers []string
}

func (e *MissingHeadersError) Error() string {
	return "missing header column(s): " + strings.Join(e.Headers, ", ")
}
