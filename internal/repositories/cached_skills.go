package repositories

import (
	"context"
	"time"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type skillRepository interface {
	GetByName(ctx context.Context, name string) (*models.Skill, error)
}

type CachedSkills struct {
	repo  skillRepository
	cache *gocache.Cache
}

func NewCachedSkills(repo skillRepository) *CachedSkills {
	return &CachedSkills{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c CachedSkills) GetByName(ctx context.Context, name string) (*models.Skill, error) {
	key := models.NormalizeSkillName(name)
	if value, found := c.cache.Get(key); found {
		skill := value.(models.Skill)
		return &skill, nil
	}

	skill, err := c.repo.GetByName(ctx, name)
	if skill != nil {
		if err = c.cache.Add(key, *skill, gocache.DefaultExpiration); err != nil {
			return skill, err
		}
	}

	return skill, err
}
