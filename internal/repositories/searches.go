package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"gorm.io/gorm"
)

type Searches struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) *Searches {
	return &Searches{db: db}
}

func (repo *Searches) Add(ctx context.Context, search *models.SavedSearch) error {
	return repo.db.WithContext(ctx).Create(search).Error
}

func (repo *Searches) GetByOwner(ctx context.Context, ownerID int64) ([]models.SavedSearch, error) {

	var searches []models.SavedSearch
	if err := repo.db.WithContext(ctx).Preload("Skills").Order("id").
		Find(&searches, "owner_id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	return searches, nil
}

func (repo *Searches) GetActiveByOwner(ctx context.Context, ownerID int64) ([]models.SavedSearch, error) {

	var searches []models.SavedSearch
	if err := repo.db.WithContext(ctx).Preload("Skills").Order("id").
		Find(&searches, "owner_id = ? AND is_active = ?", ownerID, true).Error; err != nil {
		return nil, err
	}
	return searches, nil
}

func (repo *Searches) GetByID(ctx context.Context, ID int) (*models.SavedSearch, error) {

	var search models.SavedSearch
	err := repo.db.WithContext(ctx).Preload("Skills").First(&search, "id = ?", ID).Error
	return notFoundAsNil(&search, err)
}

// GetActive pages through active searches of every owner by id, so toggling
// a search mid-iteration does not shift the remaining pages.
func (repo *Searches) GetActive(ctx context.Context, afterID, limit int) ([]models.SavedSearch, error) {

	var searches []models.SavedSearch
	if err := repo.db.WithContext(ctx).
		Preload("Skills").
		Where("is_active = ? AND id > ?", true, afterID).
		Order("id").
		Limit(limit).
		Find(&searches).Error; err != nil {
		return nil, err
	}
	return searches, nil
}

// Update saves the criteria; skills are changed through ReplaceSkills.
func (repo *Searches) Update(ctx context.Context, search *models.SavedSearch) error {
	return repo.db.WithContext(ctx).Omit("Skills").Save(search).Error
}

// UpdateWithSkills saves the criteria and the skill set in one transaction.
func (repo *Searches) UpdateWithSkills(ctx context.Context, search *models.SavedSearch, skills []models.Skill) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Skills").Save(search).Error; err != nil {
			return err
		}
		return tx.Model(&models.SavedSearch{ID: search.ID}).Association("Skills").Replace(skills)
	})
}

func (repo *Searches) ReplaceSkills(ctx context.Context, searchID int, skills []models.Skill) error {
	return repo.db.WithContext(ctx).Model(&models.SavedSearch{ID: searchID}).Association("Skills").Replace(skills)
}

func (repo *Searches) SetActive(ctx context.Context, ID int, active bool) error {
	return repo.db.WithContext(ctx).Model(&models.SavedSearch{}).Where("id = ?", ID).
		Update("is_active", active).Error
}

func (repo *Searches) UpdateLastChecked(ctx context.Context, ID int, checkedAt time.Time) error {
	return repo.db.WithContext(ctx).Model(&models.SavedSearch{}).Where("id = ?", ID).
		UpdateColumn("last_checked_at", checkedAt.UTC()).Error
}

// Remove deletes the search with its skill links; notifications go with it
// through the foreign key cascade.
func (repo *Searches) Remove(ctx context.Context, ID int) error {
	return repo.db.WithContext(ctx).Select("Skills").Delete(&models.SavedSearch{ID: ID}).Error
}
