package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	codeValidation    = "COMMAND_VALIDATION_FAILED"
	codeCanceled      = "COMMAND_CONTEXT_CANCELED"
	codeTimeout       = "COMMAND_CONTEXT_TIMEOUT"
	codeContextError  = "COMMAND_CONTEXT_ERROR"
	codeExecuteFailed = "COMMAND_EXECUTION_FAILED"
	codeFeatureOff    = "COMMAND_FEATURE_DISABLED"
)

// ErrFeatureDisabled is returned when a runtime feature gate is closed.
var ErrFeatureDisabled = errors.New("commands: feature disabled")

func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(codeValidation)
}

func WrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(codeContextError)
	}
}

// WrapExecuteError tags handler failures. Context errors keep their own
// codes and feature gates are reported as such.
func WrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return WrapContextError(err)
	case errors.Is(err, ErrFeatureDisabled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command feature disabled").
			WithTextCode(codeFeatureOff)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecuteFailed)
}
