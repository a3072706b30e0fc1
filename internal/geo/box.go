package geo

import "math"

// Box is a latitude/longitude rectangle that contains every point within a
// radius of its centre. It over-approximates the circle, so results filtered
// by it must still go through FilterWithinRadius.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
	// WrapsAntimeridian is set when the longitude span crosses ±180, in
	// which case MinLon > MaxLon and a point matches if lon >= MinLon OR
	// lon <= MaxLon.
	WrapsAntimeridian bool
}

// BoundingBoxAround returns false when origin is invalid, radius is not
// positive, or the circle covers a pole (no useful longitude bound exists).
func BoundingBoxAround(origin Point, radius float64) (Box, bool) {
	if !origin.Valid() || radius <= 0 {
		return Box{}, false
	}

	lat, lon := *origin.Latitude, *origin.Longitude
	angular := radius / EarthRadiusMiles
	dLat := angular * 180 / math.Pi

	minLat, maxLat := lat-dLat, lat+dLat
	if minLat <= -90 || maxLat >= 90 {
		return Box{}, false
	}

	sinRatio := math.Sin(angular) / math.Cos(toRadians(lat))
	if sinRatio >= 1 {
		return Box{}, false
	}
	dLon := math.Asin(sinRatio) * 180 / math.Pi
	if dLon >= 180 {
		return Box{}, false
	}

	box := Box{MinLat: minLat, MaxLat: maxLat, MinLon: lon - dLon, MaxLon: lon + dLon}
	if box.MinLon < -180 {
		box.MinLon += 360
		box.WrapsAntimeridian = true
	}
	if box.MaxLon > 180 {
		box.MaxLon -= 360
		box.WrapsAntimeridian = true
	}
	return box, true
}

func (b Box) Contains(p Point) bool {
	if !p.Valid() {
		return false
	}
	lat, lon := *p.Latitude, *p.Longitude
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.WrapsAntimeridian {
		return lon >= b.MinLon || lon <= b.MaxLon
	}
	return lon >= b.MinLon && lon <= b.MaxLon
}
