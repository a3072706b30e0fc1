package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(dialectorFor(connectionString), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Error),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func dialectorFor(connectionString string) gorm.Dialector {
	if strings.HasPrefix(connectionString, "postgres://") || strings.HasPrefix(connectionString, "postgresql://") {
		return postgres.Open(connectionString)
	}
	for _, pragma := range []string{"foreign_keys(1)", "busy_timeout(5000)"} {
		name := pragma[:strings.Index(pragma, "(")]
		if strings.Contains(connectionString, "_pragma="+name) {
			continue
		}
		sep := "?"
		if strings.Contains(connectionString, "?") {
			sep = "&"
		}
		connectionString += sep + "_pragma=" + pragma
	}
	return sqlite.Open(connectionString)
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		model any
	}{
		{"User", &models.User{}},
		{"Skill", &models.Skill{}},
		{"Profile", &models.Profile{}},
		{"Job", &models.Job{}},
		{"SavedSearch", &models.SavedSearch{}},
		{"MatchNotification", &models.MatchNotification{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.model); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	// AutoMigrate creates it from the struct tags; this keeps databases
	// created before the tag existed consistent.
	if err := c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_search_profile_kind " +
		"ON match_notifications (search_id, profile_id, kind)").Error; err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
