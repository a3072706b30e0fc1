package models

import "time"

type NotificationKind string

const (
	KindNewMatch      NotificationKind = "NEW_MATCH"
	KindProfileUpdate NotificationKind = "PROFILE_UPDATE"
)

// MatchNotification is unique per (search, profile, kind); the composite
// index is what makes concurrent inserts safe.
type MatchNotification struct {
	ID        int              `gorm:"primaryKey"`
	SearchID  int              `gorm:"uniqueIndex:idx_search_profile_kind"`
	ProfileID int              `gorm:"uniqueIndex:idx_search_profile_kind"`
	Kind      NotificationKind `gorm:"uniqueIndex:idx_search_profile_kind"`
	Message   string
	IsRead    bool
	CreatedAt time.Time

	Search  SavedSearch `gorm:"foreignKey:SearchID;constraint:OnDelete:CASCADE"`
	Profile Profile     `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}
