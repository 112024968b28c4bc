package domain

// Station is a subway station resolved from the geodata source.
// Stations are fetched per request and never persisted.
type Station struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
