package models

import (
	"errors"
	"strings"
	"time"

	"github.com/maxaizer/jobbridge/internal/geo"
)

type WorkType string

const (
	WorkOnsite WorkType = "onsite"
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
)

func ToWorkType(s string) (WorkType, error) {
	switch s {
	case string(WorkOnsite):
		return WorkOnsite, nil
	case string(WorkRemote):
		return WorkRemote, nil
	case string(WorkHybrid):
		return WorkHybrid, nil
	default:
		return "", errors.New("invalid work type")
	}
}

type ModerationStatus string

const (
	ModerationActive  ModerationStatus = "active"
	ModerationPending ModerationStatus = "pending"
	ModerationFlagged ModerationStatus = "flagged"
	ModerationRemoved ModerationStatus = "removed"
)

type Job struct {
	ID          int `gorm:"primaryKey"`
	Title       string
	Company     string
	Description string
	Skills      []Skill `gorm:"many2many:job_skills"`

	LocationCity    string
	LocationState   string
	LocationCountry string
	Latitude        *float64
	Longitude       *float64

	MinSalary       *int
	MaxSalary       *int
	WorkType        WorkType `gorm:"default:onsite"`
	VisaSponsorship bool

	PostedByID       *int64
	ModerationStatus ModerationStatus `gorm:"default:active;index"`

	CreatedAt time.Time
}

func (j Job) Identity() int {
	return j.ID
}

func (j Job) Location() geo.Point {
	return geo.Point{Latitude: j.Latitude, Longitude: j.Longitude}
}

func (j Job) LocationQuery() string {
	return JoinLocation(j.LocationCity, j.LocationState, j.LocationCountry)
}

// JoinLocation renders non-empty location parts as a geocoder query.
func JoinLocation(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
