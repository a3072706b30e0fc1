package services

import (
	"github.com/maxaizer/jobbridge/internal/domain/models"
)

var (
	skillGo     = models.Skill{ID: 1, Name: "Go", NormalizedName: "go"}
	skillPython = models.Skill{ID: 2, Name: "Python", NormalizedName: "python"}
	skillReact  = models.Skill{ID: 3, Name: "React", NormalizedName: "react"}
)

func seekerProfile(id int, username string, skills ...models.Skill) models.Profile {
	return models.Profile{
		ID:              id,
		UserID:          int64(100 + id),
		User:            models.User{ID: int64(100 + id), Username: username},
		Headline:        "Backend engineer",
		LocationCity:    "Atlanta",
		LocationState:   "GA",
		LocationCountry: "USA",
		Skills:          skills,
		Visibility:      models.VisibilityPublic,
		AccountType:     models.AccountJobSeeker,
	}
}

func savedSearch(id int, ownerID int64, name string, skills ...models.Skill) models.SavedSearch {
	search := models.NewSavedSearch(ownerID, name, "", skills, "", "", "")
	search.ID = id
	return *search
}
