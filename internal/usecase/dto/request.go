package dto

// StationSearchRequest asks for all subway station names in a city.
type StationSearchRequest struct {
	City string `json:"city" validate:"required,min=2"`
}

// ParkingRequest asks for parking lots around a named station. City is
// optional and narrows the station lookup. RadiusM defaults to the
// configured search radius when zero.
type ParkingRequest struct {
	StationName string `json:"station_name" validate:"required,min=1"`
	City        string `json:"city,omitempty"`
	RadiusM     int    `json:"radius" validate:"omitempty,min=50,max=5000"`
	SurfaceOnly bool   `json:"surface_only,omitempty"`
}
