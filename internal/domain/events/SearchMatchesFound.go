package events

import (
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
)

var SearchMatchesFoundTopic = "SearchMatchesFoundEvent"

// SearchMatchesFound carries the result of a scheduled check. The search is
// stamped with CheckedAt only by the subscriber that delivered the profiles.
type SearchMatchesFound struct {
	Search    models.SavedSearch
	Profiles  []models.Profile
	CheckedAt time.Time
}
