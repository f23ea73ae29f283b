package services

import "errors"

// Shared errors used across services and HTTP mapping.
var (
	// Resolution and configuration
	ErrLeagueNotConfigured = errors.New("league has no registered settings")
	ErrEditionNotFound     = errors.New("edition not found")
	ErrEditionNotStarted   = errors.New("edition definition round has not happened yet")
	ErrParticipantNotFound = errors.New("participant not found in league roster")
	ErrSeedUnavailable     = errors.New("definition round ranking unavailable")

	// Validation
	ErrAdjustmentSlotInvalid = errors.New("adjustment slot must be between 1 and 4")
	ErrAdjustmentNameLong    = errors.New("adjustment name is too long")

	// Recoverable conditions
	// ErrAdjustmentPersistFailed means the edited value was accepted for
	// the session but could not be saved; callers surface a warning
	// instead of failing the request.
	ErrAdjustmentPersistFailed = errors.New("adjustment accepted but could not be persisted")
	// ErrSuperseded marks a computation whose participant selection was
	// replaced before it finished; its result is discarded.
	ErrSuperseded = errors.New("computation superseded by a newer selection")
)
