package scheduler

import (
	"fmt"
	"log"
	"time"

	"credon/internal/service"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the automation jobs on the published timetable:
// daily ROI 00:00, referral bonuses 00:30, maturities 01:00, weekly
// withdrawal-eligibility reset Monday 01:30 (all in the configured timezone,
// UTC by default). The offsets keep the ordering contract: accrue, then
// distribute, then maturities, then the weekly reset last. Every scheduled
// entry checks the persisted automation toggle first; manual admin triggers
// go straight to the service and skip it.
type Scheduler struct {
	cron       *cron.Cron
	automation *service.AutomationService
}

func New(automation *service.AutomationService, tz string) (*Scheduler, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		automation: automation,
	}
	jobs := []struct {
		spec string
		name string
		run  func()
	}{
		{"0 0 * * *", "daily-roi", func() { s.automation.RunDailyROI(time.Now()) }},
		{"30 0 * * *", "referral-bonuses", func() { s.automation.RunReferralBonuses() }},
		{"0 1 * * *", "process-maturities", func() { s.automation.RunMaturities(time.Now()) }},
		{"30 1 * * MON", "reset-withdrawal-eligibility", func() { s.automation.RunEligibilityReset() }},
	}
	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.spec, s.gated(j.name, j.run)); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", j.name, err)
		}
	}
	return s, nil
}

func (s *Scheduler) gated(name string, run func()) func() {
	return func() {
		if !s.automation.Enabled() {
			log.Printf("[Scheduler] %s skipped: automation disabled", name)
			return
		}
		run()
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("[Scheduler] started with %d entries", len(s.cron.Entries()))
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
