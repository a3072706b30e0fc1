package nominatim

import (
	"fmt"
	"strconv"

	"github.com/maxaizer/jobbridge/internal/geo"
)

// Place is a single search hit. Nominatim encodes coordinates as strings.
type Place struct {
	PlaceID     int64  `json:"place_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Class       string `json:"class"`
	Type        string `json:"type"`
}

func (p Place) Point() (geo.Point, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}
	return geo.NewPoint(lat, lon), nil
}
