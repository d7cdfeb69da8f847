package handler

import (
	"errors"

	"github.com/Maksimka7878/PADL/internal/model"
	"github.com/Maksimka7878/PADL/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotLobbyCreator):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrLobbyNotFound):
		return model.NewNotFoundError("lobby")
	case errors.Is(err, service.ErrCourtNotFound):
		return model.NewNotFoundError("court")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAlreadyJoined):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidLevelRange),
		errors.Is(err, service.ErrInvalidPlayerCount),
		errors.Is(err, service.ErrStartTimeInPast):
		return model.NewValidationError([]model.FieldError{{Field: "lobby", Message: err.Error()}})

	case errors.Is(err, service.ErrLevelOutOfRange):
		return model.NewValidationError([]model.FieldError{{Field: "level", Message: err.Error()}})

	// State errors → 422
	case errors.Is(err, service.ErrLobbyFull),
		errors.Is(err, service.ErrLobbyClosed),
		errors.Is(err, service.ErrNotParticipant):
		return model.NewValidationError([]model.FieldError{{Field: "state", Message: err.Error()}})

	// ===== Input Errors → 400 =====
	case errors.Is(err, service.ErrUserIDRequired),
		errors.Is(err, service.ErrCourtRequired),
		errors.Is(err, service.ErrCourtNameRequired):
		return model.NewBadRequestError(err.Error())

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
