package repositories

import (
	"context"
	"errors"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) Add(ctx context.Context, user *models.User) error {
	return repo.db.WithContext(ctx).Create(user).Error
}

func (repo *Users) GetByID(ctx context.Context, ID int64) (*models.User, error) {
	var user models.User
	err := repo.db.WithContext(ctx).First(&user, "id = ?", ID).Error
	return notFoundAsNil(&user, err)
}

func (repo *Users) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := repo.db.WithContext(ctx).First(&user, "username = ?", username).Error
	return notFoundAsNil(&user, err)
}

func (repo *Users) GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	err := repo.db.WithContext(ctx).First(&user, "telegram_chat_id = ?", chatID).Error
	return notFoundAsNil(&user, err)
}

// SetLinkToken stores a one-time link token for a user whose chat is not
// linked yet. It reports false when there is no such user.
func (repo *Users) SetLinkToken(ctx context.Context, userID int64, token string) (bool, error) {
	result := repo.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND telegram_chat_id IS NULL", userID).
		Update("link_token", token)
	return result.RowsAffected == 1, result.Error
}

// LinkTelegramChat binds chatID to the user holding token and clears the
// token. It returns nil when the token is unknown or already used.
func (repo *Users) LinkTelegramChat(ctx context.Context, token string, chatID int64) (*models.User, error) {

	var linked *models.User

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.First(&user, "link_token = ? AND telegram_chat_id IS NULL", token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ? AND link_token = ? AND telegram_chat_id IS NULL", user.ID, token).
			Updates(map[string]any{"telegram_chat_id": chatID, "link_token": nil})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 1 {
			user.TelegramChatID = &chatID
			user.LinkToken = nil
			linked = &user
		}
		return nil
	})
	return linked, err
}
