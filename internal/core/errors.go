package core

import (
	"errors"
	"fmt"
)

// ErrInvalidPackageName is returned for identifiers that are not "org:name".
var ErrInvalidPackageName = errors.New("invalid package name")

// ErrUnknownVersioning is returned when a versioning scheme id is not registered.
var ErrUnknownVersioning = errors.New("unknown versioning scheme")

// ErrInvalidRegistryURL is returned for registries that are not absolute http(s) URLs.
var ErrInvalidRegistryURL = errors.New("invalid registry URL")

// ConfigurationError reports caller input that can never resolve, as opposed
// to repository conditions. It is the only error class surfaced by resolution.
type ConfigurationError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v %q: %s", e.Err, e.Input, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
