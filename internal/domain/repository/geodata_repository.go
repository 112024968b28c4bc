package repository

import (
	"context"

	"github.com/metro-parking/internal/domain"
)

// RawElement is one element of a geodata query response before the
// geometry pipeline has touched it. Geometry carries the raw outline
// for ways and relations; nodes carry only Lat/Lon.
type RawElement struct {
	ID       int64
	Type     string
	Lat      float64
	Lon      float64
	Geometry []domain.Coordinate
	Tags     map[string]string
}

// GeodataRepository answers structured queries over map feature tags.
// Implemented by the Overpass client.
type GeodataRepository interface {
	// StationNames returns the unique, sorted subway station names
	// inside the named city.
	StationNames(ctx context.Context, city string) ([]string, error)

	// StationLocations returns stations matching name (native or
	// English), optionally narrowed to a city area. May be empty.
	StationLocations(ctx context.Context, name, city string) ([]domain.Station, error)

	// ParkingGeometries returns raw parking elements with geometry
	// within radius meters of the point. surfaceOnly restricts the
	// query to surface lots.
	ParkingGeometries(ctx context.Context, lat, lon float64, radius int, surfaceOnly bool) ([]RawElement, error)
}
