package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that
// already exists, e.g. a second closing for the same (date, store, cashier).
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates a validation-state change the transition
// table does not allow.
var ErrInvalidTransition = errors.New("invalid validation state transition")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")
