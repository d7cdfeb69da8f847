package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Lobby Errors =====
var (
	ErrLobbyNotFound      = errors.New("lobby not found")
	ErrLobbyClosed        = errors.New("lobby is closed")
	ErrLobbyFull          = errors.New("lobby is full")
	ErrAlreadyJoined      = errors.New("already joined this lobby")
	ErrNotParticipant     = errors.New("not a participant of this lobby")
	ErrNotLobbyCreator    = errors.New("not the creator of this lobby")
	ErrLevelOutOfRange    = errors.New("skill level outside the lobby's accepted range")
	ErrInvalidLevelRange  = errors.New("min level must not exceed max level and both must be between 1.0 and 7.0")
	ErrInvalidPlayerCount = errors.New("required players must be between 2 and 8")
	ErrStartTimeInPast    = errors.New("start time must be in the future")
)

// ===== Court Errors =====
var (
	ErrCourtNotFound = errors.New("court not found")
	ErrCourtRequired = errors.New("court_id is required")
)

// ===== Engagement Errors =====
var (
	ErrUserIDRequired    = errors.New("user id is required")
	ErrCourtNameRequired = errors.New("court name is required")
)
