package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPIN            = errors.New("wrong pin")
	ErrPINTooShort         = errors.New("pin must be at least 4 characters long")
	ErrInvalidPeriod       = errors.New("invalid academic period")
	ErrTokenIsExpired      = errors.New("token is expired")

	ErrTaskNotFound = errors.New("task not found")

	ErrNoFileNameProvided       = errors.New("no file name provided")
	ErrMissingRemoteCredentials = errors.New("user has no remote portal credentials")
	ErrRemoteSyncFailed         = errors.New("remote sync failed")
)
