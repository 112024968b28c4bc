package dto

import "github.com/metro-parking/internal/domain"

// MapViewData is everything the map template needs: where to center
// the view and the measured lots as a GeoJSON FeatureCollection.
type MapViewData struct {
	StationName string       `json:"station_name"`
	Center      domain.Point `json:"center"`
	Zoom        int          `json:"zoom"`
	TotalAreaM2 float64      `json:"total_area_m2"`
	LotCount    int          `json:"lot_count"`
	GeoJSON     string       `json:"geojson"`
}
