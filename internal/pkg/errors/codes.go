package errors

import "net/http"

const (
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeLocationUnavailable = "LOCATION_UNAVAILABLE"
	CodeProviderError       = "PROVIDER_ERROR"
	CodeNetworkError        = "NETWORK_ERROR"
	CodeValidationError     = "VALIDATION_ERROR"
)

// Discovery failures. The first four surface as a session Error phase,
// ErrValidation is rejected at the input boundary.
var (
	ErrPermissionDenied = New(
		CodePermissionDenied,
		"Location permission denied",
		http.StatusForbidden,
	)

	ErrLocationUnavailable = New(
		CodeLocationUnavailable,
		"Current location unavailable",
		http.StatusServiceUnavailable,
	)

	ErrProviderError = New(
		CodeProviderError,
		"Places provider rejected the request",
		http.StatusBadGateway,
	)

	ErrNetworkError = New(
		CodeNetworkError,
		"Places provider unreachable",
		http.StatusBadGateway,
	)

	ErrValidation = New(
		CodeValidationError,
		"Enter a value between 1K - 20K",
		http.StatusBadRequest,
	)
)

var (
	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Radius must be between 1000 and 20000 meters",
		http.StatusBadRequest,
	)

	ErrScreenNotFound = New(
		"SCREEN_NOT_FOUND",
		"Screen session not found",
		http.StatusNotFound,
	)

	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Place not found in current results",
		http.StatusNotFound,
	)

	ErrPlaceNotSelected = New(
		"PLACE_NOT_SELECTED",
		"Place is not the current selection",
		http.StatusConflict,
	)

	ErrScreenClosed = New(
		"SCREEN_CLOSED",
		"Screen session is closed",
		http.StatusGone,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
