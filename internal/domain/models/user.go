package models

import "time"

type User struct {
	ID             int64  `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex"`
	Email          string
	TelegramChatID *int64 `gorm:"uniqueIndex"`
	// LinkToken is the one-time code that binds a Telegram chat to the user.
	LinkToken *string `gorm:"uniqueIndex"`
	CreatedAt      time.Time
}
