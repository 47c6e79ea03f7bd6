// Package common defines shared constants and sentinel errors used across
// the pocketvine layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Account/session errors (expected validation outcomes).
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("username must start with @")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrUserNotFound       = errors.New("user not found")

	// Post errors.
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("post belongs to another user")
	ErrEmptyPost    = errors.New("post content is empty")

	// Storage errors.
	ErrStorageExhausted = errors.New("storage exhausted")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
)
