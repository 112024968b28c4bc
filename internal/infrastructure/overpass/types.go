package overpass

// response is the JSON envelope of an Overpass interpreter reply.
type response struct {
	Elements []element `json:"elements"`
}

// element is a single OSM feature in a reply. Nodes carry Lat/Lon,
// ways and relations queried with "out geom" carry Geometry.
type element struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"`
	Lat      float64           `json:"lat,omitempty"`
	Lon      float64           `json:"lon,omitempty"`
	Geometry []geomPoint       `json:"geometry,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

type geomPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
