package Config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the service needs for one process lifetime.
// Loaded once in main and passed into constructors.
type Config struct {
	JiraURL      string `validate:"required,url"`
	JiraUsername string `validate:"required"`
	JiraPassword string `validate:"required"`
	UserFilter   string `validate:"required"`
	IgnoreUsers  []string

	ReportPath string `validate:"required"`
	SheetName  string `validate:"required"`

	CronSchedule   string `validate:"required"`
	RunImmediately bool
	Port           string `validate:"required"`

	SMTPServer   string `validate:"required"`
	SMTPPort     int    `validate:"required"`
	SMTPUsername string
	SMTPPassword string
	FromEmail    string `validate:"required,email"`
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool

	// Link included in the reminder email body.
	TimesheetURL string `validate:"required,url"`

	SlackBotToken string
	SlackChannel  string
}

// Load reads the .env file (if present) and the environment and validates
// the result. Missing required values are a startup failure.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		JiraURL:        getenv("JIRA_URL", ""),
		JiraUsername:   getenv("JIRA_USERNAME", ""),
		JiraPassword:   getenv("JIRA_PASSWORD", ""),
		UserFilter:     getenv("JIRA_USER_FILTER", ""),
		IgnoreUsers:    splitList(getenv("IGNORE_USERS", "")),
		ReportPath:     getenv("REPORT_PATH", "timecop_report.xlsx"),
		SheetName:      getenv("REPORT_SHEET", "Tracked Time"),
		CronSchedule:   getenv("CRON_SCHEDULE", "0 0 7 * * *"),
		RunImmediately: getenvBool("RUN_IMMEDIATELY", false),
		Port:           getenv("PORT", "3000"),
		SMTPServer:     getenv("SMTP_SERVER", ""),
		SMTPPort:       getenvInt("SMTP_PORT", 587),
		SMTPUsername:   getenv("SMTP_USERNAME", ""),
		SMTPPassword:   getenv("SMTP_PASSWORD", ""),
		FromEmail:      getenv("FROM_EMAIL", ""),
		FromName:       getenv("FROM_NAME", "Timecop"),
		TLSEnabled:     getenvBool("SMTP_TLS", true),
		SkipTLSCheck:   getenvBool("SMTP_SKIP_TLS_CHECK", false),
		TimesheetURL:   getenv("TIMESHEET_URL", ""),
		SlackBotToken:  getenv("SLACK_BOT_TOKEN", ""),
		SlackChannel:   getenv("SLACK_CHANNEL", ""),
	}

	if !strings.HasSuffix(cfg.JiraURL, "/") && cfg.JiraURL != "" {
		cfg.JiraURL += "/"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// IgnoreSet returns the ignore-list as a set for exact username lookups.
func (c Config) IgnoreSet() map[string]bool {
	set := make(map[string]bool, len(c.IgnoreUsers))
	for _, name := range c.IgnoreUsers {
		set[name] = true
	}
	return set
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
