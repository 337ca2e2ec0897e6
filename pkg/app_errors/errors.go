package apperrors

import "errors"

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordTooLong     = errors.New("password exceeds 72 bytes")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrAlreadyRegistered   = errors.New("phone already registered for event")
	ErrShortIDConflict     = errors.New("short id already issued")
	ErrShortIDExhausted    = errors.New("could not issue a unique short id")
)
