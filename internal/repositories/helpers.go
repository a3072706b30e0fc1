package repositories

import (
	"errors"
	"strings"

	"github.com/maxaizer/jobbridge/internal/geo"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern for a case-insensitive substring
// match; use it with "LOWER(column) LIKE ? ESCAPE '\'".
func containsPattern(fragment string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(fragment)) + "%"
}

func whereContains(db *gorm.DB, column, fragment string) *gorm.DB {
	if fragment == "" {
		return db
	}
	return db.Where("LOWER("+column+`) LIKE ? ESCAPE '\'`, containsPattern(fragment))
}

func whereInBox(db *gorm.DB, box *geo.Box) *gorm.DB {
	if box == nil {
		return db
	}
	db = db.Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if box.WrapsAntimeridian {
		return db.Where("(longitude >= ? OR longitude <= ?)", box.MinLon, box.MaxLon)
	}
	return db.Where("longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon)
}

func whereUngeocoded(db *gorm.DB) *gorm.DB {
	return db.Where("latitude IS NULL OR longitude IS NULL").
		Where("NOT (location_city = '' AND location_state = '' AND location_country = '')")
}

func notFoundAsNil[T any](value *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}
