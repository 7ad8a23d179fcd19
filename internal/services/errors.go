package services

import (
	"errors"

	"mindbloom/internal/repositories"
	"mindbloom/pkg/googleauth"
)

// Sentinel errors handlers map onto HTTP statuses with errors.Is. ErrNotFound
// covers both "does not exist" and "belongs to someone else" so responses
// never confirm the existence of another user's resource.
var (
	ErrNotFound            = repositories.ErrNotFound
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailExists         = errors.New("email already registered")
	ErrGoogleNotConfigured = googleauth.ErrNotConfigured
	ErrInvalidGoogleToken  = googleauth.ErrInvalidToken
)
