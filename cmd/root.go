package main

import (
	"context"
	"fmt"
	"os"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/jobbridge/internal/clients/nominatim"
	"github.com/maxaizer/jobbridge/internal/config"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/repositories"
	"github.com/maxaizer/jobbridge/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const app = "jobbridge"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "jobbridge matches job seeker profiles against recruiters' saved searches",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if cfgFile != "" {
				return os.Setenv("CONFIG_PATH", cfgFile)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
	rootCmd.AddCommand(serveCmd, geocodeCmd, seedCmd, jobsCmd, candidatesCmd, linkTokenCmd)
}

// application holds what every subcommand needs: configuration, logging,
// the database and its repositories.
type application struct {
	cfg           *config.Config
	db            *repositories.DbContext
	bus           EventBus.Bus
	users         *repositories.Users
	skills        *repositories.CachedSkills
	rawSkills     *repositories.Skills
	profiles      *repositories.Profiles
	jobs          *repositories.Jobs
	searches      *repositories.Searches
	notifications *repositories.Notifications
	evaluator     *services.MatchEvaluator
}

func newApplication() (*application, error) {

	cfg := config.Get()
	logger.Setup(cfg.Logger)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		logger.Cleanup()
		return nil, fmt.Errorf("can't create db context: %w", err)
	}

	if err = dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		logger.Cleanup()
		return nil, fmt.Errorf("can't migrate db context: %w", err)
	}

	a := &application{
		cfg:           cfg,
		db:            dbContext,
		bus:           EventBus.New(),
		users:         repositories.NewUsersRepository(dbContext.DB),
		rawSkills:     repositories.NewSkillsRepository(dbContext.DB),
		profiles:      repositories.NewProfilesRepository(dbContext.DB),
		jobs:          repositories.NewJobsRepository(dbContext.DB),
		searches:      repositories.NewSearchRepository(dbContext.DB),
		notifications: repositories.NewNotificationsRepository(dbContext.DB),
	}
	a.skills = repositories.NewCachedSkills(a.rawSkills)
	a.evaluator = services.NewMatchEvaluator(a.bus, a.searches, a.notifications, a.profiles, cfg.Matching.PageSize)
	return a, nil
}

func (a *application) Close() {
	if err := a.db.Close(); err != nil {
		log.Errorf("can't close db: %v", err)
	}
	logger.Cleanup()
}

// geocoder uses redis for the geocode cache when configured so that
// coordinates survive restarts and are shared between instances.
func (a *application) geocoder(ctx context.Context) (*services.Geocoder, func(), error) {

	var cache repositories.GeocodeCache
	closeCache := func() {}

	if a.cfg.Cache.RedisURL != "" {
		client, err := repositories.NewRedisClient(ctx, a.cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("can't connect to redis: %w", err)
		}
		cache = repositories.NewRedisGeocodeCache(client, a.cfg.Cache.TTL)
		closeCache = func() { _ = client.Close() }
	} else {
		cache = repositories.NewMemoryGeocodeCache(a.cfg.Cache.TTL)
	}

	client := nominatim.NewClient(a.cfg.Geocoder.URL, a.cfg.Geocoder.UserAgent)
	client.SetRateLimit(a.cfg.Geocoder.MaxRequestsPerSecond)

	return services.NewGeocoder(client, cache, a.jobs, a.profiles), closeCache, nil
}
