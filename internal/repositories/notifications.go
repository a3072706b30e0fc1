package repositories

import (
	"context"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

// CreateIfAbsent inserts notification unless one already exists for its
// (search, profile, kind). The check is the unique index itself, so
// concurrent callers cannot both insert. created is false when the row
// already existed.
func (repo *Notifications) CreateIfAbsent(ctx context.Context, notification *models.MatchNotification) (created bool, err error) {
	res := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(notification)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (repo *Notifications) ownedBy(ctx context.Context, ownerID int64) *gorm.DB {
	return repo.db.WithContext(ctx).
		Where("search_id IN (?)", repo.db.Model(&models.SavedSearch{}).Select("id").Where("owner_id = ?", ownerID))
}

func (repo *Notifications) GetUnreadByOwner(ctx context.Context, ownerID int64) ([]models.MatchNotification, error) {
	var notifications []models.MatchNotification
	if err := repo.ownedBy(ctx, ownerID).
		Preload("Search").
		Preload("Profile.User").
		Where("is_read = ?", false).
		Order("created_at, id").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead returns false when no notification with that ID belongs to owner.
func (repo *Notifications) MarkRead(ctx context.Context, ownerID int64, ID int) (bool, error) {
	res := repo.ownedBy(ctx, ownerID).
		Model(&models.MatchNotification{}).
		Where("id = ?", ID).
		Update("is_read", true)
	return res.RowsAffected == 1, res.Error
}

func (repo *Notifications) CountByKind(ctx context.Context, kind models.NotificationKind) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.MatchNotification{}).
		Where("kind = ?", kind).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
