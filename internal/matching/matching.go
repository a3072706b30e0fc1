package matching

import (
	"fmt"
	"strings"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/samber/lo"
)

// Matches reports whether profile satisfies every constrained predicate of
// search. Empty criteria fields are unconstrained.
func Matches(profile models.Profile, search models.SavedSearch) bool {
	return matchesQuery(profile, search.Query) &&
		matchesSkills(profile.Skills, search.Skills) &&
		containsFold(profile.LocationCity, search.LocationCity) &&
		containsFold(profile.LocationState, search.LocationState) &&
		containsFold(profile.LocationCountry, search.LocationCountry)
}

// IsEligible reports whether profile may produce notifications at all.
func IsEligible(profile models.Profile) bool {
	return profile.AccountType == models.AccountJobSeeker &&
		profile.IsVisibleToRecruiters() &&
		len(profile.Skills) > 0
}

func matchesQuery(profile models.Profile, query string) bool {
	if query == "" {
		return true
	}
	fields := []string{
		profile.Username(),
		profile.Headline,
		profile.Bio,
		profile.Education,
		profile.Experience,
		profile.PortfolioURL,
		profile.LinkedinURL,
		profile.GithubURL,
	}
	return lo.SomeBy(fields, func(field string) bool {
		return containsFold(field, query)
	})
}

func matchesSkills(profileSkills, required []models.Skill) bool {
	if len(required) == 0 {
		return true
	}
	return len(lo.Intersect(models.SkillIDs(profileSkills), models.SkillIDs(required))) > 0
}

// containsFold is a case-insensitive substring test; an empty fragment always
// matches.
func containsFold(field, fragment string) bool {
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(fragment))
}

type Trigger string

const (
	ProfileCreated Trigger = "profile_created"
	ProfileUpdated Trigger = "profile_updated"
	SkillsChanged  Trigger = "skills_changed"
)

func KindFor(trigger Trigger) models.NotificationKind {
	if trigger == ProfileCreated {
		return models.KindNewMatch
	}
	return models.KindProfileUpdate
}

func NotificationMessage(search models.SavedSearch, profile models.Profile, kind models.NotificationKind) string {
	var msg string
	if kind == models.KindNewMatch {
		msg = fmt.Sprintf("New candidate %s matches your saved search \"%s\"", profile.Username(), search.Name)
	} else {
		msg = fmt.Sprintf("Updated profile of %s matches your saved search \"%s\"", profile.Username(), search.Name)
	}
	if profile.Headline != "" {
		msg += ": " + profile.Headline
	}
	return msg
}
