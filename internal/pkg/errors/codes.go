package errors

import "net/http"

var (
	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found",
		http.StatusNotFound,
	)

	ErrFavoritePlaceNotFound = New(
		"FAVORITE_PLACE_NOT_FOUND",
		"Favorite place not found",
		http.StatusNotFound,
	)

	ErrDuplicateAddress = New(
		"DUPLICATE_ADDRESS",
		"Place with this address already exists",
		http.StatusConflict,
	)

	ErrUnknownCategory = New(
		"UNKNOWN_CATEGORY",
		"Referenced category does not exist",
		http.StatusBadRequest,
	)

	ErrUnknownUser = New(
		"UNKNOWN_USER",
		"Referenced user does not exist",
		http.StatusBadRequest,
	)

	ErrInvalidProposal = New(
		"INVALID_PROPOSAL",
		"Place proposal failed validation",
		http.StatusBadRequest,
	)

	ErrInvalidFilter = New(
		"INVALID_FILTER",
		"Invalid filter parameters",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = New(
		"INVALID_STATUS",
		"Unknown place status",
		http.StatusBadRequest,
	)

	ErrIllegalTransition = New(
		"ILLEGAL_TRANSITION",
		"Status transition is not allowed from the current state",
		http.StatusConflict,
	)

	ErrPlaceDeleted = New(
		"PLACE_DELETED",
		"Place is deleted and can no longer be modified",
		http.StatusConflict,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Principal is not allowed to perform this operation",
		http.StatusForbidden,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid credentials",
		http.StatusUnauthorized,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrCancelled = New(
		"CANCELLED",
		"Operation was cancelled by the caller",
		499,
	)

	ErrTimeout = New(
		"TIMEOUT",
		"Operation deadline exceeded",
		http.StatusGatewayTimeout,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusServiceUnavailable,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
