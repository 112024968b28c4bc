package domain

// Point is a lat/lon pair used in request and response payloads.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
