package models

import (
	"errors"
	"time"

	"github.com/maxaizer/jobbridge/internal/geo"
)

type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityRecruiters Visibility = "recruiters"
	VisibilityPrivate    Visibility = "private"
)

func ToVisibility(s string) (Visibility, error) {
	switch s {
	case string(VisibilityPublic):
		return VisibilityPublic, nil
	case string(VisibilityRecruiters):
		return VisibilityRecruiters, nil
	case string(VisibilityPrivate):
		return VisibilityPrivate, nil
	default:
		return "", errors.New("invalid visibility")
	}
}

type AccountType string

const (
	AccountJobSeeker AccountType = "job_seeker"
	AccountRecruiter AccountType = "recruiter"
)

func ToAccountType(s string) (AccountType, error) {
	switch s {
	case string(AccountJobSeeker):
		return AccountJobSeeker, nil
	case string(AccountRecruiter):
		return AccountRecruiter, nil
	default:
		return "", errors.New("invalid account type")
	}
}

type Profile struct {
	ID     int   `gorm:"primaryKey"`
	UserID int64 `gorm:"uniqueIndex"`
	User   User

	Headline   string
	Bio        string
	Education  string
	Experience string

	PortfolioURL string
	LinkedinURL  string
	GithubURL    string

	LocationCity    string
	LocationState   string
	LocationCountry string
	Latitude        *float64
	Longitude       *float64
	// CommuteRadius is in miles.
	CommuteRadius *int

	Skills []Skill `gorm:"many2many:profile_skills"`

	Visibility  Visibility  `gorm:"default:public"`
	AccountType AccountType `gorm:"default:job_seeker"`
	ShowEmail   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Profile) Identity() int {
	return p.ID
}

func (p Profile) Location() geo.Point {
	return geo.Point{Latitude: p.Latitude, Longitude: p.Longitude}
}

func (p Profile) Username() string {
	return p.User.Username
}

// CommuteRadiusMiles returns 0 when the seeker has no preference.
func (p Profile) CommuteRadiusMiles() float64 {
	if p.CommuteRadius == nil {
		return 0
	}
	return float64(*p.CommuteRadius)
}

func (p Profile) IsVisibleToRecruiters() bool {
	return p.Visibility == VisibilityPublic || p.Visibility == VisibilityRecruiters
}

func (p Profile) LocationQuery() string {
	return JoinLocation(p.LocationCity, p.LocationState, p.LocationCountry)
}
