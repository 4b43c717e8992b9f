package Report

import (
	"fmt"
	"log"
	"sync"
	"time"

	"timecop/Dates"
	"timecop/Jira"
)

// TimeSource is the slice of the Jira client the engine needs.
type TimeSource interface {
	ListUsers(filter string) ([]Jira.User, error)
	FetchWorklogs(username, dateFrom, dateTo string) ([]Jira.Worklog, error)
}

// SheetSink receives the per-user result rows. Clear drops everything from
// the previous run; Save flushes the finished report.
type SheetSink interface {
	Clear() error
	AppendRow(displayName string, hours float64, status string) error
	Save() error
}

// MailSender delivers the under-reporting reminder.
type MailSender interface {
	SendReminder(emailAddress string) error
}

// SummaryPoster receives a one-line summary after a completed run.
// Implementations are best-effort; the engine only logs their errors.
type SummaryPoster interface {
	PostSummary(summary RunSummary) error
}

// Evaluation is one user's result for the current week.
type Evaluation struct {
	DisplayName string  `json:"display_name"`
	Hours       float64 `json:"hours"`
	Compliant   bool    `json:"compliant"`
}

// RunSummary records the outcome of one run for the status API.
type RunSummary struct {
	StartedAt time.Time `json:"started_at"`
	Skipped   bool      `json:"skipped"`
	Window    string    `json:"window,omitempty"`
	Evaluated int       `json:"evaluated"`
	Compliant int       `json:"compliant"`
	Reminded  int       `json:"reminded"`
	Error     string    `json:"error,omitempty"`
}

// Engine runs the weekly time-tracking compliance check.
type Engine struct {
	source     TimeSource
	sheet      SheetSink
	mail       MailSender
	poster     SummaryPoster
	userFilter string
	ignore     map[string]bool

	// runMu serializes whole runs: the cron schedule, the manual trigger
	// endpoint, and a run-immediately startup run all share one sheet writer.
	runMu sync.Mutex

	mu      sync.Mutex
	lastRun *RunSummary
}

// NewEngine wires the engine with its collaborators. poster may be nil.
func NewEngine(source TimeSource, sheet SheetSink, mail MailSender, poster SummaryPoster, userFilter string, ignore map[string]bool) *Engine {
	if ignore == nil {
		ignore = map[string]bool{}
	}
	return &Engine{
		source:     source,
		sheet:      sheet,
		mail:       mail,
		poster:     poster,
		userFilter: userFilter,
		ignore:     ignore,
	}
}

// Run executes one compliance check as of now. A weekend window skips the
// run with no side effects. Any Jira, sheet, or mail failure aborts the run;
// rows already appended before the failure stay in the sheet file only if a
// later save happens, matching the no-partial-recovery contract.
func (e *Engine) Run(now time.Time) (RunSummary, error) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	summary := RunSummary{StartedAt: now}

	window := Dates.ComputeWindow(now)
	if !window.Valid {
		log.Println("Weekend window, skipping time check")
		summary.Skipped = true
		e.record(summary)
		return summary, nil
	}
	summary.Window = fmt.Sprintf("%s to %s", window.FirstDayOfWeek, window.Yesterday)

	required := Dates.RequiredHours(now)
	log.Printf("Checking tracked time %s, %.0f hours required\n", summary.Window, required)

	if err := e.sheet.Clear(); err != nil {
		return e.fail(summary, fmt.Errorf("error clearing sheet: %w", err))
	}

	users, err := e.source.ListUsers(e.userFilter)
	if err != nil {
		return e.fail(summary, err)
	}

	for _, user := range users {
		if e.ignore[user.Name] {
			continue
		}

		eval, err := e.evaluate(user, window, required)
		if err != nil {
			return e.fail(summary, err)
		}

		summary.Evaluated++
		if eval.Compliant {
			summary.Compliant++
			if err := e.sheet.AppendRow(eval.DisplayName, eval.Hours, "Yes!"); err != nil {
				return e.fail(summary, fmt.Errorf("error writing sheet row: %w", err))
			}
			continue
		}

		if err := e.sheet.AppendRow(eval.DisplayName, eval.Hours, "No"); err != nil {
			return e.fail(summary, fmt.Errorf("error writing sheet row: %w", err))
		}
		if err := e.mail.SendReminder(user.EmailAddress); err != nil {
			return e.fail(summary, fmt.Errorf("error sending reminder to %s: %w", user.EmailAddress, err))
		}
		summary.Reminded++
	}

	if err := e.sheet.Save(); err != nil {
		return e.fail(summary, fmt.Errorf("error saving sheet: %w", err))
	}

	if e.poster != nil {
		if err := e.poster.PostSummary(summary); err != nil {
			log.Printf("Error posting run summary: %v\n", err)
		}
	}

	log.Printf("Time check done: %d evaluated, %d compliant, %d reminded\n",
		summary.Evaluated, summary.Compliant, summary.Reminded)
	e.record(summary)
	return summary, nil
}

// evaluate fetches and sums one user's worklogs and classifies the result.
func (e *Engine) evaluate(user Jira.User, window Dates.Window, required float64) (Evaluation, error) {
	worklogs, err := e.source.FetchWorklogs(user.Name, window.FirstDayOfWeek, window.Yesterday)
	if err != nil {
		return Evaluation{}, err
	}

	seconds := 0
	for _, worklog := range worklogs {
		seconds += worklog.TimeSpentSeconds
	}
	hours := float64(seconds) / 3600

	eval := Evaluation{DisplayName: user.DisplayName, Hours: hours}
	if hours >= required {
		eval.Compliant = true
	} else if hours < required {
		eval.Compliant = false
	} else {
		// Unreachable for real numbers; kept from the original report logic.
		log.Printf("Could not determine if %s tracked all of their time\n", user.DisplayName)
	}

	return eval, nil
}

// LastRun returns the most recent run summary, or false if none ran yet.
func (e *Engine) LastRun() (RunSummary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastRun == nil {
		return RunSummary{}, false
	}
	return *e.lastRun, true
}

func (e *Engine) record(summary RunSummary) {
	e.mu.Lock()
	e.lastRun = &summary
	e.mu.Unlock()
}

func (e *Engine) fail(summary RunSummary, err error) (RunSummary, error) {
	summary.Error = err.Error()
	e.record(summary)
	return summary, err
}
