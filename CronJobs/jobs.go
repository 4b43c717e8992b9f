package CronJobs

import (
	"fmt"
	"log"
	"time"

	"timecop/Report"

	"github.com/robfig/cron/v3"
)

// TimeChecker runs the compliance report on a daily schedule.
type TimeChecker struct {
	cronScheduler  *cron.Cron
	engine         *Report.Engine
	schedule       string
	runImmediately bool
	jobID          cron.EntryID
}

// NewTimeChecker creates a checker for the given engine and cron schedule
// (six-field spec, seconds included).
func NewTimeChecker(engine *Report.Engine, schedule string, runImmediately bool) *TimeChecker {
	return &TimeChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		engine:         engine,
		schedule:       schedule,
		runImmediately: runImmediately,
	}
}

// Start schedules the daily check and kicks off an immediate run if requested.
func (t *TimeChecker) Start() error {
	var err error
	t.jobID, err = t.cronScheduler.AddFunc(t.schedule, func() {
		log.Println("Running scheduled time check")
		t.runCheck()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	t.cronScheduler.Start()
	log.Printf("Time check scheduler started with schedule %q\n", t.schedule)

	if t.runImmediately {
		log.Println("Running initial time check")
		t.runCheck()
	}

	return nil
}

// Stop terminates the scheduler.
func (t *TimeChecker) Stop() {
	if t.cronScheduler != nil {
		t.cronScheduler.Stop()
		log.Println("Time check scheduler stopped")
	}
}

// UpdateSchedule replaces the job with a new cron schedule.
func (t *TimeChecker) UpdateSchedule(schedule string) error {
	t.cronScheduler.Remove(t.jobID)

	var err error
	t.jobID, err = t.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled time check")
		t.runCheck()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	t.schedule = schedule
	log.Printf("Time check schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes an immediate check outside the schedule.
func (t *TimeChecker) RunManualCheck() (Report.RunSummary, error) {
	log.Println("Running manual time check")
	return t.engine.Run(time.Now())
}

func (t *TimeChecker) runCheck() {
	summary, err := t.engine.Run(time.Now())
	if err != nil {
		log.Printf("Error in time check: %v\n", err)
		return
	}

	if summary.Skipped {
		log.Println("Time check skipped for this run")
	} else if summary.Reminded == 0 {
		log.Println("Everyone tracked their time, no reminders sent")
	} else {
		log.Printf("Reminders sent to %d users\n", summary.Reminded)
	}
}
