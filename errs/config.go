package errs

import (
	"errors"
	"fmt"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

// NewConfigMissingError reports a required setting that is absent from every source.
func NewConfigMissingError(key string) error {
	return fmt.Errorf("%w: %s is required", ErrConfigMissing, key)
}

// NewConfigInvalidError reports a setting whose value cannot be used.
func NewConfigInvalidError(key, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrConfigInvalid, key, reason)
}

func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}

func IsConfigInvalid(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}
