package services

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler runs periodic jobs. A run still in progress when its next tick
// comes is not started twice.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler() *Scheduler {
	cronLogger := cron.PrintfLogger(log.StandardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job under a standard cron spec or a descriptor such as
// "@every 1h". The context passed to job is cancelled by Stop.
func (s *Scheduler) Add(spec string, name string, job func(ctx context.Context)) error {
	_, err := s.cron.AddFunc(spec, func() {
		log.Infof("running scheduled %v", name)
		job(s.ctx)
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn("scheduled jobs did not finish in time")
	}
}
