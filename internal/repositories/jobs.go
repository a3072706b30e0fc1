package repositories

import (
	"context"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"gorm.io/gorm"
)

type JobFilter struct {
	Title           string
	Company         string
	SkillIDs        []int
	City            string
	State           string
	Country         string
	MinSalary       *int
	MaxSalary       *int
	WorkType        models.WorkType
	VisaSponsorship *bool
	IncludeRemoved  bool
}

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

func (repo *Jobs) Add(ctx context.Context, job *models.Job) error {
	return repo.db.WithContext(ctx).Create(job).Error
}

func (repo *Jobs) GetByID(ctx context.Context, ID int) (*models.Job, error) {
	var job models.Job
	err := repo.db.WithContext(ctx).Preload("Skills").First(&job, "id = ?", ID).Error
	return notFoundAsNil(&job, err)
}

// Find returns jobs matching filter, newest first. A non-nil box restricts the
// result to geocoded jobs inside it.
func (repo *Jobs) Find(ctx context.Context, filter JobFilter, box *geo.Box) ([]models.Job, error) {
	query := repo.db.WithContext(ctx).Preload("Skills")

	if !filter.IncludeRemoved {
		query = query.Where("moderation_status <> ?", models.ModerationRemoved)
	}
	query = whereContains(query, "title", filter.Title)
	query = whereContains(query, "company", filter.Company)
	query = whereContains(query, "location_city", filter.City)
	query = whereContains(query, "location_state", filter.State)
	query = whereContains(query, "location_country", filter.Country)

	if len(filter.SkillIDs) > 0 {
		query = query.Where("id IN (?)",
			repo.db.Table("job_skills").Select("job_id").Where("skill_id IN ?", filter.SkillIDs))
	}
	if filter.MinSalary != nil {
		query = query.Where("min_salary >= ?", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		query = query.Where("max_salary <= ?", *filter.MaxSalary)
	}
	if filter.WorkType != "" {
		query = query.Where("work_type = ?", filter.WorkType)
	}
	if filter.VisaSponsorship != nil {
		query = query.Where("visa_sponsorship = ?", *filter.VisaSponsorship)
	}

	var jobs []models.Job
	if err := whereInBox(query, box).Order("created_at DESC, id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetUngeocoded(ctx context.Context, afterID, limit int) ([]models.Job, error) {
	var jobs []models.Job
	if err := whereUngeocoded(repo.db.WithContext(ctx)).Where("id > ?", afterID).Order("id").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) UpdateCoordinates(ctx context.Context, ID int, point geo.Point) error {
	return repo.db.WithContext(ctx).Model(&models.Job{ID: ID}).
		UpdateColumns(map[string]any{
			"latitude":  point.Latitude,
			"longitude": point.Longitude,
		}).Error
}
