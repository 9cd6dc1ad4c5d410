package pipeline

import (
	"errors"
	"fmt"

	"github.com/c360studio/ppodgraph/export"
	"github.com/c360studio/ppodgraph/graph"
	"github.com/c360studio/ppodgraph/identity"
	"github.com/c360studio/ppodgraph/lookup"
	"github.com/c360studio/ppodgraph/mapping"
	"github.com/c360studio/ppodgraph/source"
)

// ErrNoWorksheet is returned when a required sheet has no worksheet name.
var ErrNoWorksheet = errors.New("no worksheet configured")

// ErrNoOutput is returned when a run that writes has no output path.
var ErrNoOutput = errors.New("no output path configured")

// Error is a fatal run error with the context it happened in.
type Error struct {
	State State
	// Sheet is the logical sheet name, if any.
	Sheet string
	// Row is the 1-based worksheet row, if any.
	Row int
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Sheet != "" && e.Row > 0:
		return fmt.Sprintf("%s: sheet %s row %d: %v", e.State, e.Sheet, e.Row, e.Err)
	case e.Sheet != "":
		return fmt.Sprintf("%s: sheet %s: %v", e.State, e.Sheet, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.State, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind classifies errors for reporting and exit codes.
type ErrorKind string

// Error kinds.
const (
	KindNone              ErrorKind = ""
	KindConfiguration     ErrorKind = "configuration"
	KindLookupLoad        ErrorKind = "lookup_load"
	KindSourceUnavailable ErrorKind = "source_unavailable"
	KindEmptyKey          ErrorKind = "empty_key"
	KindUnknownCode       ErrorKind = "unknown_lookup_code"
	KindWrite             ErrorKind = "write"
	KindPublish           ErrorKind = "publish"
	KindUnknown           ErrorKind = "unknown"
)

// Kind classifies err.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var (
		collision *graph.CollisionError
		unknown   *mapping.UnknownCodeError
		pe        *Error
	)
	switch {
	case lookup.IsLoadError(err):
		return KindLookupLoad
	case source.IsUnavailable(err):
		return KindSourceUnavailable
	case export.IsWriteError(err):
		return KindWrite
	case mapping.IsConfigError(err), errors.As(err, &collision), errors.Is(err, ErrNoWorksheet), errors.Is(err, ErrNoOutput),
		errors.Is(err, source.ErrDuplicateHeader):
		return KindConfiguration
	case errors.As(err, &unknown):
		return KindUnknownCode
	case errors.Is(err, identity.ErrEmptyKey):
		return KindEmptyKey
	case errors.As(err, &pe) && pe.State == StatePublishing:
		return KindPublish
	default:
		return KindUnknown
	}
}
