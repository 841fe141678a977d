package sheets

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// StoreError wraps a failed spreadsheet operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps an error with the operation that failed.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// HTTPStatus returns the HTTP status of the underlying API error, or 0
// when the failure was not an API response.
func (e *StoreError) HTTPStatus() int {
	var gerr *googleapi.Error
	if errors.As(e.Err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsStoreError reports whether the error (or any error in its chain) is
// a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// CredentialError reports missing or unusable Google credentials.
type CredentialError struct {
	Reason string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("credentials: %s", e.Reason)
	}
	return fmt.Sprintf("credentials: %s: %v", e.Reason, e.Err)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

// NewCredentialError wraps an error with a credential failure reason.
func NewCredentialError(reason string, err error) *CredentialError {
	return &CredentialError{Reason: reason, Err: err}
}

// IsCredentialError reports whether the error (or any error in its
// chain) is a CredentialError.
func IsCredentialError(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}
