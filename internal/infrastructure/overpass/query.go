package overpass

import (
	"fmt"
	"strings"
)

// Query builders for the Overpass QL statements the service issues.
// Tag filters follow the OSM tagging conventions for subway stations
// (railway=station + station=subway) and parking (amenity=parking).

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

func (c *client) header() string {
	return fmt.Sprintf("[out:json][timeout:%d];", int(c.queryTimeout.Seconds()))
}

// stationNamesQuery lists all subway station nodes inside the
// administrative boundary named city (matched on name:en).
func (c *client) stationNamesQuery(city string) string {
	return fmt.Sprintf(`%s
area["name:en"=%q]["boundary"="administrative"]->.searchArea;
node["railway"="station"]["station"="subway"](area.searchArea);
out body;`, c.header(), escape(city))
}

// stationLocationsQuery finds subway station nodes by native or
// English name, optionally narrowed to a city area.
func (c *client) stationLocationsQuery(name, city string) string {
	n := escape(name)
	if city == "" {
		return fmt.Sprintf(`%s
(
  node["railway"="station"]["station"="subway"]["name"=%q];
  node["railway"="station"]["station"="subway"]["name:en"=%q];
);
out body;`, c.header(), n, n)
	}
	return fmt.Sprintf(`%s
area["name:en"=%q]["boundary"="administrative"]->.searchArea;
(
  node["railway"="station"]["station"="subway"]["name"=%q](area.searchArea);
  node["railway"="station"]["station"="subway"]["name:en"=%q](area.searchArea);
);
out body;`, c.header(), escape(city), n, n)
}

// parkingQuery fetches parking elements with geometry around a point.
// With surfaceOnly only explicit surface lots are returned; otherwise
// structured parking (multi-storey, lane, street-side, underground and
// covered ways) is excluded.
func (c *client) parkingQuery(lat, lon float64, radius int, surfaceOnly bool) string {
	if surfaceOnly {
		return fmt.Sprintf(`%s
(
  way["amenity"="parking"]["parking"="surface"](around:%d,%f,%f);
  relation["amenity"="parking"]["parking"="surface"](around:%d,%f,%f);
);
out tags geom;`, c.header(), radius, lat, lon, radius, lat, lon)
	}
	return fmt.Sprintf(`%s
(
  node["amenity"="parking"](around:%d,%f,%f);
  way["amenity"="parking"]["parking"!="multi-storey"]["parking"!="lane"]["parking"!="street_side"]["parking"!="underground"]["covered"!="yes"](around:%d,%f,%f);
  relation["amenity"="parking"]["parking"!="multi-storey"]["parking"!="lane"]["parking"!="street_side"]["parking"!="underground"](around:%d,%f,%f);
);
out tags geom;`, c.header(), radius, lat, lon, radius, lat, lon, radius, lat, lon)
}
