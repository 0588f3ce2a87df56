package model

import "errors"

var (
	// ErrNotValid is returned when a configuration or argument is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrNotSupported is returned when the requested backend is not available in this build.
	ErrNotSupported = errors.New("not supported")
	// ErrNotInitialized is returned when the layer is used outside its initialize/terminate window.
	ErrNotInitialized = errors.New("not initialized")
	// ErrAlreadyInitialized is returned when the layer is initialized twice without terminating.
	ErrAlreadyInitialized = errors.New("already initialized")
)
