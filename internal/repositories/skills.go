package repositories

import (
	"context"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"gorm.io/gorm"
)

type Skills struct {
	db *gorm.DB
}

func NewSkillsRepository(db *gorm.DB) *Skills {
	return &Skills{db: db}
}

// GetByName matches on the normalized name and returns nil when the skill is
// unknown.
func (repo *Skills) GetByName(ctx context.Context, name string) (*models.Skill, error) {

	var skill models.Skill
	err := repo.db.WithContext(ctx).First(&skill, "normalized_name = ?", models.NormalizeSkillName(name)).Error
	return notFoundAsNil(&skill, err)
}

func (repo *Skills) GetOrCreate(ctx context.Context, name string) (*models.Skill, error) {
	skill := models.NewSkill(name)
	err := repo.db.WithContext(ctx).
		Where(models.Skill{NormalizedName: skill.NormalizedName}).
		Attrs(models.Skill{Name: skill.Name}).
		FirstOrCreate(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}
