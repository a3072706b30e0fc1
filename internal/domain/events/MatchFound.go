package events

import (
	"github.com/maxaizer/jobbridge/internal/domain/models"
)

var MatchFoundTopic = "MatchFoundEvent"

type MatchFound struct {
	Notification models.MatchNotification
	Search       models.SavedSearch
	Profile      models.Profile
}
