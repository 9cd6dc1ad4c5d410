package main

import (
	"errors"

	"github.com/c360studio/ppodgraph/config"
	"github.com/c360studio/ppodgraph/pipeline"
	"github.com/c360studio/ppodgraph/publish"
)

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK                = 0
	exitUnknown           = 1
	exitConfig            = 2
	exitLookupLoad        = 3
	exitSourceUnavailable = 4
	exitWrite             = 5
	exitPublish           = 6
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitUnknown
}

// classify attaches the exit code for err's kind.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if config.IsError(err) {
		return withCode(exitConfig, err)
	}
	if publish.IsError(err) {
		return withCode(exitPublish, err)
	}
	switch pipeline.Kind(err) {
	case pipeline.KindConfiguration:
		return withCode(exitConfig, err)
	case pipeline.KindLookupLoad:
		return withCode(exitLookupLoad, err)
	case pipeline.KindSourceUnavailable:
		return withCode(exitSourceUnavailable, err)
	case pipeline.KindWrite:
		return withCode(exitWrite, err)
	case pipeline.KindPublish:
		return withCode(exitPublish, err)
	default:
		return withCode(exitUnknown, err)
	}
}
