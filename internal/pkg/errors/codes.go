package errors

import "net/http"

var (
	ErrStationNotFound = New(
		"STATION_NOT_FOUND",
		"Could not find location for station",
		http.StatusNotFound,
	)

	ErrNoParkingFound = New(
		"NO_PARKING_FOUND",
		"No parking lots found near station",
		http.StatusNotFound,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"Geodata service unavailable",
		http.StatusBadGateway,
	)

	ErrInvalidCity = New(
		"INVALID_CITY",
		"City name is required",
		http.StatusBadRequest,
	)

	ErrInvalidStationName = New(
		"INVALID_STATION_NAME",
		"Station name is required",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
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
