package fetcher

import (
	"errors"
	"fmt"
)

// FetchError wraps a failed report download with the URL that failed.
// Downloads are single-shot; a FetchError aborts the whole pass.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps an error with the URL being fetched.
func NewFetchError(url string, err error) *FetchError {
	return &FetchError{URL: url, Err: err}
}

// IsFetchError reports whether the error (or any error in its chain) is a
// FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
