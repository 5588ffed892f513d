package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns an error specifying that there is an issue with a config field.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}
