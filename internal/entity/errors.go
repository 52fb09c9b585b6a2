package entity

import "errors"

// The client sorts every failure into one of five buckets so the UI layer
// can decide between "log in again", "fix the form", "keep the old screen"
// and "just retry". Messages are user-facing; server-provided text is kept
// verbatim when present.

// AuthError: the server rejected the credential or the session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// ValidationError: a local pre-submission check failed. No network call was
// made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CatalogError: the inventory fetch or its decoding failed. The previous
// catalog stays on screen.
type CatalogError struct {
	Message string
	Err     error
}

func (e *CatalogError) Error() string { return e.Message }

func (e *CatalogError) Unwrap() error { return e.Err }

// TransportError: a network failure not otherwise classified.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Err }

// ConflictError: the server refused the mutation because of its own state,
// e.g. insufficient stock at order time.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StatusError is a non-2xx API response before classification. The message
// is the server's `detail`/`error` text when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// AsStatus unwraps err looking for a StatusError.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsStatus reports whether err carries a StatusError with one of the codes.
func IsStatus(err error, codes ...int) bool {
	se, ok := AsStatus(err)
	if !ok {
		return false
	}
	for _, c := range codes {
		if se.Code == c {
			return true
		}
	}
	return false
}
