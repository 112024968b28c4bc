package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two
// points in kilometers.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// ValidateCoordinates checks that lat/lon are on the WGS84 ellipsoid.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius checks the search radius in meters (50 m - 5 km).
func ValidateRadius(radiusM int) bool {
	return radiusM >= 50 && radiusM <= 5000
}
