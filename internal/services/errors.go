package services

import "errors"

var (
	ErrSearchNotFound       = errors.New("saved search not found")
	ErrNotSearchOwner       = errors.New("saved search belongs to another user")
	ErrUnknownSkill         = errors.New("unknown skill")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrChatAlreadyLinked    = errors.New("telegram chat is already linked")
	ErrInvalidLinkToken     = errors.New("link token is invalid or already used")
	ErrNotRecruiter         = errors.New("only recruiters can own saved searches")
)
