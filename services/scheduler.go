package services

import (
	"fmt"
	"time"

	"SocialScheduler/database"
	"SocialScheduler/metrics"
	"SocialScheduler/utils"

	"github.com/robfig/cron/v3"
)

// Scheduler owns the auto-publish sweep: on every tick, due scheduled posts
// are promoted to published with a single conditional update. The update is
// also the claim, so concurrent instances cannot double-publish and a failed
// tick is retried naturally on the next one.
type Scheduler struct {
	cron      *cron.Cron
	db        *database.Database
	collector *metrics.Collector
	interval  time.Duration
	now       func() time.Time
}

func NewScheduler(db *database.Database, collector *metrics.Collector, interval time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		db:        db,
		collector: collector,
		interval:  interval,
		now:       time.Now,
	}
}

// SetClock overrides the sweep's notion of "now". Tests use this to move a
// scheduled post into the past without sleeping.
func (s *Scheduler) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.RunOnce(); err != nil {
			utils.Errorf("sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	utils.Infof("scheduler started, sweeping every %s", s.interval)
	return nil
}

// RunOnce executes one sweep tick and returns how many posts were published.
func (s *Scheduler) RunOnce() (int, error) {
	start := time.Now()

	published, err := s.db.ClaimDuePosts(s.now())
	if err != nil {
		s.collector.RecordSweepError()
		return len(published), err
	}

	for _, p := range published {
		utils.Infof("published scheduled post post_id=%s user_id=%s", p.ID, p.UserID)
	}

	s.collector.RecordSweep(len(published), time.Since(start))
	return len(published), nil
}

// Stop cancels the cron and blocks until a running tick finishes.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	utils.Infof("scheduler stopped")
}
