package geometry

import (
	"github.com/metro-parking/internal/domain"
)

// CleanRing normalizes a raw polygon outline as returned by the geodata
// source: consecutive duplicate points are collapsed and a redundant
// closing point (first == last) is dropped. Returns nil when fewer than
// 3 distinct points remain, which means the element is not a polygon.
func CleanRing(raw []domain.Coordinate) []domain.Coordinate {
	if len(raw) == 0 {
		return nil
	}

	coords := make([]domain.Coordinate, 0, len(raw))
	coords = append(coords, raw[0])
	for _, pt := range raw[1:] {
		if pt != coords[len(coords)-1] {
			coords = append(coords, pt)
		}
	}

	if len(coords) > 2 && coords[0] == coords[len(coords)-1] {
		coords = coords[:len(coords)-1]
	}

	if len(coords) < 3 {
		return nil
	}
	return coords
}

// ValidateRing reports whether the cleaned, unclosed ring describes a
// simple polygon, i.e. no two non-adjacent edges intersect. Rings that
// fail here are skipped by the pipeline the same way the data source's
// self-intersecting outlines are.
func ValidateRing(ring []domain.Coordinate) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	edge := func(i int) (domain.Coordinate, domain.Coordinate) {
		return ring[i], ring[(i+1)%n]
	}

	for i := 0; i < n; i++ {
		a1, a2 := edge(i)
		for j := i + 1; j < n; j++ {
			// Adjacent edges share an endpoint and always "intersect".
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1, b2 := edge(j)
			if segmentsIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// orientation of the ordered triplet (p, q, r):
// 0 collinear, 1 clockwise, 2 counterclockwise.
func orientation(p, q, r domain.Coordinate) int {
	val := (q.Lat-p.Lat)*(r.Lon-q.Lon) - (q.Lon-p.Lon)*(r.Lat-q.Lat)
	if val == 0 {
		return 0
	}
	if val > 0 {
		return 1
	}
	return 2
}

func onSegment(p, q, r domain.Coordinate) bool {
	return q.Lon <= max(p.Lon, r.Lon) && q.Lon >= min(p.Lon, r.Lon) &&
		q.Lat <= max(p.Lat, r.Lat) && q.Lat >= min(p.Lat, r.Lat)
}

func segmentsIntersect(p1, q1, p2, q2 domain.Coordinate) bool {
	o1 := orientation(p1, q1, p2)
	o2 := orientation(p1, q1, q2)
	o3 := orientation(p2, q2, p1)
	o4 := orientation(p2, q2, q1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear cases: an endpoint lies on the other segment.
	if o1 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if o2 == 0 && onSegment(p1, q2, q1) {
		return true
	}
	if o3 == 0 && onSegment(p2, p1, q2) {
		return true
	}
	if o4 == 0 && onSegment(p2, q1, q2) {
		return true
	}
	return false
}
