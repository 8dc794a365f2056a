package service

import "errors"

var (
	// ErrEmptySecretName is returned when a secret operation is attempted
	// with an empty name.
	ErrEmptySecretName = errors.New("secret name must not be empty")
)
