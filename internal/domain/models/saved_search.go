package models

import "time"

// SavedSearch is a recruiter-owned set of criteria re-evaluated against the
// profile pool. Empty criteria fields are unconstrained.
type SavedSearch struct {
	ID      int   `gorm:"primaryKey"`
	OwnerID int64 `gorm:"index"`
	Name    string
	Query   string
	Skills  []Skill `gorm:"many2many:saved_search_skills"`

	LocationCity    string
	LocationState   string
	LocationCountry string

	IsActive      bool `gorm:"index"`
	LastCheckedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSavedSearch(ownerID int64, name, query string, skills []Skill, city, state, country string) *SavedSearch {
	return &SavedSearch{
		OwnerID:         ownerID,
		Name:            name,
		Query:           query,
		Skills:          skills,
		LocationCity:    city,
		LocationState:   state,
		LocationCountry: country,
		IsActive:        true,
	}
}
