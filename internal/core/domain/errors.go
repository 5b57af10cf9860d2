package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrAccountInactive    = errors.New("account is not active")
	ErrForbidden          = errors.New("access forbidden")

	ErrSessionNotFound = errors.New("session not found")

	ErrDeviceNotFound       = errors.New("device not found")
	ErrDeviceExists         = errors.New("device already exists")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyExists        = errors.New("company already exists")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrRecordNotFound       = errors.New("service record not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrLogNotFound          = errors.New("driving log not found")
	ErrScheduleNotFound     = errors.New("submission schedule not found")

	ErrInvalidTransition = errors.New("invalid status transition")
)
