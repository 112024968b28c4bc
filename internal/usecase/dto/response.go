package dto

import "github.com/metro-parking/internal/domain"

// StationSearchResponse lists station names found in a city.
type StationSearchResponse struct {
	City     string   `json:"city"`
	Stations []string `json:"stations"`
	Total    int      `json:"total"`
}

// ParkingLotResult is one measured parking lot.
type ParkingLotResult struct {
	ID          int64               `json:"id"`
	Type        string              `json:"type"`
	Coordinates []domain.Coordinate `json:"coordinates"`
	AreaM2      float64             `json:"area_m2"`
	EPSG        int                 `json:"epsg"`
	DistanceM   float64             `json:"distance_m"`
	Tags        map[string]string   `json:"tags,omitempty"`
}

// ParkingResponse is the parking-lot totals payload. The top-level
// field names mirror the public JSON contract.
type ParkingResponse struct {
	StationName string             `json:"station_name"`
	Station     domain.Station     `json:"station"`
	TotalAreaM2 float64            `json:"total_area_m2"`
	Lots        []ParkingLotResult `json:"lots"`
	Total       int                `json:"total"`
}

// ConvertParkingLot maps a domain lot into its response form.
func ConvertParkingLot(lot domain.ParkingLot) ParkingLotResult {
	return ParkingLotResult{
		ID:          lot.ID,
		Type:        lot.Type,
		Coordinates: lot.Ring,
		AreaM2:      lot.AreaM2,
		EPSG:        lot.EPSG,
		DistanceM:   lot.DistanceM,
		Tags:        lot.Tags,
	}
}
