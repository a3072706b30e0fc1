package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	log "github.com/sirupsen/logrus"
)

type linkableUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error)
	SetLinkToken(ctx context.Context, userID int64, token string) (bool, error)
	LinkTelegramChat(ctx context.Context, token string, chatID int64) (*models.User, error)
}

// ChatLinks binds Telegram chats to accounts through one-time tokens. A
// token is handed to the account holder out of band and is cleared on use;
// an account that already has a chat cannot be relinked.
type ChatLinks struct {
	users    linkableUserRepository
	newToken func() string
}

func NewChatLinks(users linkableUserRepository) *ChatLinks {
	return &ChatLinks{users: users, newToken: uuid.NewString}
}

// IssueToken replaces any pending token of the user with a fresh one.
func (l *ChatLinks) IssueToken(ctx context.Context, username string) (string, error) {

	user, err := l.users.GetByUsername(ctx, username)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get user %v: %v", username, err)
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if user.TelegramChatID != nil {
		return "", ErrChatAlreadyLinked
	}

	token := l.newToken()
	stored, err := l.users.SetLinkToken(ctx, user.ID, token)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to store link token: %v", err)
		return "", err
	}
	if !stored {
		return "", ErrChatAlreadyLinked
	}
	return token, nil
}

func (l *ChatLinks) Link(ctx context.Context, token string, chatID int64) (*models.User, error) {

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidLinkToken
	}

	current, err := l.users.GetByTelegramChatID(ctx, chatID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get user of chat: %v", err)
		return nil, err
	}
	if current != nil {
		return nil, ErrChatAlreadyLinked
	}

	user, err := l.users.LinkTelegramChat(ctx, token, chatID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to link chat: %v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidLinkToken
	}
	log.Infof("linked telegram chat of %v", user.Username)
	return user, nil
}
