package application

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a project operation failed. The transport layer
// maps kinds to response status codes; the orchestrator branches on them to
// apply the fatal/non-fatal policy.
type FailureKind string

const (
	// KindStoreFailure covers record creation and image upload failures.
	// Always fatal: no project identifier exists for later steps.
	KindStoreFailure FailureKind = "store_failure"

	// KindAssociationFailure covers tag association failures. Fatal, but
	// post-hoc: the project row already exists and is not rolled back.
	KindAssociationFailure FailureKind = "association_failure"

	// KindImportFailure covers contributor import failures. Never fatal;
	// the orchestrator records it and reports success regardless.
	KindImportFailure FailureKind = "import_failure"
)

// OperationError is a failed operation outcome: a kind, a human-readable
// message for the caller, and the underlying cause for operators.
type OperationError struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, or "" when err is not an
// OperationError.
func KindOf(err error) FailureKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return ""
}

func storeFailure(message string, err error) *OperationError {
	return &OperationError{Kind: KindStoreFailure, Message: message, Err: err}
}

func associationFailure(message string, err error) *OperationError {
	return &OperationError{Kind: KindAssociationFailure, Message: message, Err: err}
}

func importFailure(message string, err error) *OperationError {
	return &OperationError{Kind: KindImportFailure, Message: message, Err: err}
}
