package lookup

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Set.Resolve.
var (
	ErrUnknownTable = errors.New("unknown lookup table")
	ErrUnknownCode  = errors.New("unknown lookup code")
)

// LoadError reports a reference table that could not be loaded. Line is the
// 1-based line of the offending record, or 0 when the whole file failed.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load lookup table %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load lookup table %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError returns true if err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
