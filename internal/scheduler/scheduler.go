package scheduler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const pingTimeout = 10 * time.Second

// Scheduler runs the background jobs of the service
type Scheduler struct {
	cron   *cron.Cron
	client *http.Client
	log    *zap.Logger
	url    string
}

// New creates a scheduler. A keep-alive job pinging url is registered on
// schedule when url is set.
func New(url, schedule string, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		client: &http.Client{Timeout: pingTimeout},
		log:    log,
		url:    url,
	}

	if url == "" {
		log.Info("keep-alive job disabled")
		return s, nil
	}
	if _, err := s.cron.AddFunc(schedule, s.keepAlive); err != nil {
		return nil, fmt.Errorf("failed to register keep-alive job: %w", err)
	}
	log.Info("keep-alive job registered", zap.String("url", url), zap.String("schedule", schedule))
	return s, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// IsRunning returns true if any job is registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

func (s *Scheduler) keepAlive() {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := s.ping(ctx); err != nil {
		s.log.Warn("keep-alive ping failed", zap.String("url", s.url), zap.Error(err))
		return
	}
	s.log.Debug("keep-alive ping succeeded", zap.String("url", s.url))
}

func (s *Scheduler) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
