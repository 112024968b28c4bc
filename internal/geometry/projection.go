package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/wroge/wgs84"

	"github.com/metro-parking/internal/domain"
)

// UTMZone returns the UTM zone number (1-60) containing the longitude.
func UTMZone(lon float64) int {
	zone := int((lon+180)/6) + 1
	if zone < 1 {
		zone = 1
	}
	if zone > 60 {
		zone = 60
	}
	return zone
}

// EPSGCode returns the EPSG code of the WGS84 / UTM CRS local to the
// point: 32600+zone on and north of the equator, 32700+zone south.
func EPSGCode(lat, lon float64) int {
	zone := UTMZone(lon)
	if lat < 0 {
		return 32700 + zone
	}
	return 32600 + zone
}

// Centroid returns the planar centroid of the unclosed lon/lat ring.
func Centroid(ring []domain.Coordinate) domain.Coordinate {
	c, _ := planar.CentroidArea(toOrbRing(ring))
	return domain.Coordinate{Lon: c[0], Lat: c[1]}
}

// ProjectRing reprojects an unclosed geographic ring into the UTM zone
// local to its centroid and returns the projected ring together with
// the EPSG code of the chosen CRS.
func ProjectRing(ring []domain.Coordinate) (orb.Ring, int, error) {
	if len(ring) < 3 {
		return nil, 0, fmt.Errorf("ring must have at least 3 points, got %d", len(ring))
	}

	centroid := Centroid(ring)
	zone := UTMZone(centroid.Lon)
	epsg := EPSGCode(centroid.Lat, centroid.Lon)

	transform := wgs84.LonLat().To(wgs84.UTM(float64(zone), centroid.Lat >= 0))

	projected := make(orb.Ring, 0, len(ring)+1)
	for _, pt := range ring {
		east, north, _ := transform(pt.Lon, pt.Lat, 0)
		if math.IsNaN(east) || math.IsNaN(north) || math.IsInf(east, 0) || math.IsInf(north, 0) {
			return nil, 0, fmt.Errorf("projection to EPSG:%d failed for point (%f, %f)", epsg, pt.Lon, pt.Lat)
		}
		projected = append(projected, orb.Point{east, north})
	}
	// Close the ring for planar area computation.
	projected = append(projected, projected[0])

	return projected, epsg, nil
}

// RingArea returns the absolute planar area of a projected ring in the
// square of the projection's unit (m² for UTM).
func RingArea(ring orb.Ring) float64 {
	return math.Abs(planar.Area(ring))
}

// PlanarAreaM2 runs the projection step of the pipeline on a cleaned
// geographic ring: pick the local UTM zone from the ring centroid,
// reproject and compute the planar area. The returned area is rounded
// to two decimals, matching the response format.
func PlanarAreaM2(ring []domain.Coordinate) (float64, int, error) {
	projected, epsg, err := ProjectRing(ring)
	if err != nil {
		return 0, 0, err
	}
	return math.Round(RingArea(projected)*100) / 100, epsg, nil
}

// OrbRing converts an unclosed geographic ring into a closed orb.Ring
// suitable for GeoJSON encoding.
func OrbRing(ring []domain.Coordinate) orb.Ring {
	return toOrbRing(ring)
}

func toOrbRing(ring []domain.Coordinate) orb.Ring {
	r := make(orb.Ring, 0, len(ring)+1)
	for _, pt := range ring {
		r = append(r, orb.Point{pt.Lon, pt.Lat})
	}
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}
