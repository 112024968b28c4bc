package domain

// Source element types as returned by the geodata query API.
const (
	ElementNode     = "node"
	ElementWay      = "way"
	ElementRelation = "relation"
)

// ParkingLot is a single parking area near a station. The ring is the
// cleaned exterior outline (consecutive duplicates removed, unclosed,
// at least 3 points) in lon/lat order. AreaM2 is the planar area after
// reprojection to the local UTM zone identified by EPSG.
type ParkingLot struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Ring      []Coordinate      `json:"coordinates"`
	AreaM2    float64           `json:"area_m2"`
	EPSG      int               `json:"epsg"`
	DistanceM float64           `json:"distance_m"`
	Tags      map[string]string `json:"tags,omitempty"`
}

// Coordinate is a lon/lat pair on the WGS84 ellipsoid.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}
