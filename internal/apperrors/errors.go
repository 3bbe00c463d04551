package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrReconciliationFailed indicates a document's paid/remaining amounts could not
// be recomputed atomically. The triggering payment write should be retried or
// flagged inconsistent by the caller.
var ErrReconciliationFailed = errors.New("reconciliation failed")

// ErrSequenceExhausted indicates document number generation kept colliding with
// existing numbers after the bounded retry count.
var ErrSequenceExhausted = errors.New("document number sequence exhausted")
