package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) withRelations(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Skills").Preload("User")
}

func (repo *Profiles) Add(ctx context.Context, profile *models.Profile) error {
	return repo.db.WithContext(ctx).Omit("User").Create(profile).Error
}

// Update saves every scalar field; skills are changed through ReplaceSkills.
func (repo *Profiles) Update(ctx context.Context, profile *models.Profile) error {
	return repo.db.WithContext(ctx).Omit("Skills", "User").Save(profile).Error
}

// ReplaceSkills swaps the skill set and bumps updated_at, a skill change
// counts as a profile mutation.
func (repo *Profiles) ReplaceSkills(ctx context.Context, profileID int, skills []models.Skill) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile := &models.Profile{ID: profileID}
		if err := tx.Model(profile).Association("Skills").Replace(skills); err != nil {
			return err
		}
		return tx.Model(profile).UpdateColumn("updated_at", time.Now().UTC()).Error
	})
}

func (repo *Profiles) GetByID(ctx context.Context, ID int) (*models.Profile, error) {
	var profile models.Profile
	err := repo.withRelations(ctx).First(&profile, "id = ?", ID).Error
	return notFoundAsNil(&profile, err)
}

func (repo *Profiles) GetByUser(ctx context.Context, userID int64) (*models.Profile, error) {
	var profile models.Profile
	err := repo.withRelations(ctx).First(&profile, "user_id = ?", userID).Error
	return notFoundAsNil(&profile, err)
}

// GetUpdatedSince pages through job seeker profiles visible to recruiters
// that changed strictly after since; a nil since returns all of them.
func (repo *Profiles) GetUpdatedSince(ctx context.Context, since *time.Time, limit, offset int) ([]models.Profile, error) {
	query := repo.withRelations(ctx).
		Where("account_type = ?", models.AccountJobSeeker).
		Where("visibility IN ?", []models.Visibility{models.VisibilityPublic, models.VisibilityRecruiters})
	if since != nil {
		query = query.Where("updated_at > ?", since.UTC())
	}

	var profiles []models.Profile
	if err := query.Order("id").Limit(limit).Offset(offset).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetNear returns geocoded job seeker profiles visible to recruiters,
// optionally narrowed to a bounding box.
func (repo *Profiles) GetNear(ctx context.Context, box *geo.Box) ([]models.Profile, error) {
	query := repo.withRelations(ctx).
		Where("account_type = ?", models.AccountJobSeeker).
		Where("visibility IN ?", []models.Visibility{models.VisibilityPublic, models.VisibilityRecruiters}).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL")

	var profiles []models.Profile
	if err := whereInBox(query, box).Order("id").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *Profiles) GetUngeocoded(ctx context.Context, afterID, limit int) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := whereUngeocoded(repo.db.WithContext(ctx)).Where("id > ?", afterID).Order("id").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateCoordinates does not touch updated_at: geocoding is not an edit made
// by the seeker.
func (repo *Profiles) UpdateCoordinates(ctx context.Context, ID int, point geo.Point) error {
	return repo.db.WithContext(ctx).Model(&models.Profile{ID: ID}).
		UpdateColumns(map[string]any{
			"latitude":  point.Latitude,
			"longitude": point.Longitude,
		}).Error
}
