// Package geo computes great-circle distances between optional coordinates
// and filters or annotates located entities by them.
package geo

import (
	"math"
	"sort"
)

// EarthRadiusMiles is the sphere radius used by the Haversine formula.
const EarthRadiusMiles = 3959.0

// Point is a pair of decimal-degree coordinates. A nil component means the
// entity was never geocoded.
type Point struct {
	Latitude  *float64
	Longitude *float64
}

func NewPoint(lat, lon float64) Point {
	return Point{Latitude: &lat, Longitude: &lon}
}

// Valid reports whether both coordinates are present.
func (p Point) Valid() bool {
	return p.Latitude != nil && p.Longitude != nil
}

type Located interface {
	Identity() int
	Location() Point
}

// Distance returns the Haversine distance in miles. ok is false when either
// point lacks a coordinate; that is "unknown", not zero.
func Distance(a, b Point) (miles float64, ok bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}
	return haversine(*a.Latitude, *a.Longitude, *b.Latitude, *b.Longitude), true
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1 = toRadians(lat1), toRadians(lon1)
	lat2, lon2 = toRadians(lat2), toRadians(lon2)

	sinLat := math.Sin((lat2 - lat1) / 2)
	sinLon := math.Sin((lon2 - lon1) / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// rounding can push a marginally above 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(a))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// FilterWithinRadius keeps the items whose distance to origin is at most
// radius miles. Items without coordinates are dropped. When origin is invalid
// or radius is not positive the input is returned unchanged.
func FilterWithinRadius[T Located](items []T, origin Point, radius float64) []T {
	if !origin.Valid() || radius <= 0 {
		return items
	}

	within := make([]T, 0, len(items))
	for _, item := range items {
		if d, ok := Distance(origin, item.Location()); ok && d <= radius {
			within = append(within, item)
		}
	}
	return within
}

// AnnotateDistances maps item identity to its distance from origin. Items
// without coordinates get no entry.
func AnnotateDistances[T Located](items []T, origin Point) map[int]float64 {
	distances := make(map[int]float64, len(items))
	if !origin.Valid() {
		return distances
	}

	for _, item := range items {
		if d, ok := Distance(origin, item.Location()); ok {
			distances[item.Identity()] = d
		}
	}
	return distances
}

// SortByDistance orders items by ascending annotated distance in place.
// Items missing from distances go after every item present; the relative
// order of ties is preserved.
func SortByDistance[T Located](items []T, distances map[int]float64) {
	sort.SliceStable(items, func(i, j int) bool {
		di, iKnown := distances[items[i].Identity()]
		dj, jKnown := distances[items[j].Identity()]
		switch {
		case iKnown && jKnown:
			return di < dj
		case iKnown:
			return true
		default:
			return false
		}
	})
}

// RoundMiles rounds to one decimal place for display.
func RoundMiles(miles float64) float64 {
	return math.Round(miles*10) / 10
}
