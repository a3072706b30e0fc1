package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/maxaizer/jobbridge/internal/bot"
	"github.com/maxaizer/jobbridge/internal/metrics"
	"github.com/maxaizer/jobbridge/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ops server, scheduled jobs and the Telegram bot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func serve(parent context.Context) error {

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApplication()
	if err != nil {
		return err
	}
	defer a.Close()

	opsServer := metrics.StartMetricsServer(a.cfg.Metrics.Address)

	geocoder, closeCache, err := a.geocoder(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	checker := services.NewSearchesChecker(a.bus, a.searches, a.profiles, a.cfg.Matching.PageSize)
	feed := services.NewProfileFeed(a.profiles, a.evaluator, a.cfg.Matching.PageSize)

	scheduler := services.NewScheduler()
	if err = addScheduledJobs(scheduler, a, geocoder, checker, feed); err != nil {
		return err
	}
	scheduler.Start()

	var tgbot *bot.Bot
	if a.cfg.Bot.Enabled() {
		tgbot, err = bot.NewBot(a.cfg.Bot.Token, a.bus, bot.Services{
			Searches:      services.NewSavedSearches(a.searches, a.skills, a.profiles),
			Checker:       checker,
			Notifications: services.NewNotifications(a.notifications),
			Users:         a.users,
			Links:         services.NewChatLinks(a.users),
			Skills:        a.skills,
		})
		if err != nil {
			return err
		}
		go tgbot.Run()
	} else {
		log.Warn("bot token is empty, Telegram notifications are disabled")
	}

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if tgbot != nil {
		tgbot.Stop()
	}
	if err = opsServer.Stop(shutdownCtx); err != nil {
		log.Errorf("can't stop ops server: %v", err)
	}
	log.Info("Services stopped.")
	return nil
}

func addScheduledJobs(scheduler *services.Scheduler, a *application, geocoder *services.Geocoder,
	checker *services.SearchesChecker, feed *services.ProfileFeed) error {

	err := scheduler.Add(a.cfg.Geocoder.Cron, "geocode backfill", func(ctx context.Context) {
		if _, err := geocoder.BackfillJobs(ctx); err != nil {
			log.Errorf("jobs backfill failed: %v", err)
		}
		if _, err := geocoder.BackfillProfiles(ctx); err != nil {
			log.Errorf("profiles backfill failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	err = scheduler.Add(a.cfg.Matching.CheckCron, "saved searches check", func(ctx context.Context) {
		if _, err := checker.CheckAll(ctx); err != nil {
			log.Errorf("saved searches check failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	return scheduler.Add(a.cfg.Matching.FeedCron, "profile feed", func(ctx context.Context) {
		if _, err := feed.Poll(ctx); err != nil {
			log.Errorf("profile feed poll failed: %v", err)
		}
	})
}
