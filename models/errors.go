// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// The error taxonomy mirrors how failures surface to the user: auth and
// permission failures end the current view, everything else is a transient
// message and the UI stays where it is.

// AuthError means the backend rejected the request as unauthenticated (401).
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not signed in"
}

// PermissionError means the user is signed in but not allowed (403), or the
// resolved role does not match the role this client was started with.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "permission denied"
}

// NetworkError wraps a transport-level failure (connection refused, timeout,
// malformed response body).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a client-side precondition failure; the request is
// never sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServerError carries a non-2xx response with the server-supplied message,
// or a generic fallback when the body had none.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (status %d)", e.Status)
}
