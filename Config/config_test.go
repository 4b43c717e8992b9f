package Config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JIRA_URL", "https://jira.example.com")
	t.Setenv("JIRA_USERNAME", "reporter")
	t.Setenv("JIRA_PASSWORD", "hunter2")
	t.Setenv("JIRA_USER_FILTER", "team")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("FROM_EMAIL", "timecop@example.com")
	t.Setenv("TIMESHEET_URL", "https://jira.example.com/secure/TempoUserBoard!timesheet.jspa")
}

func TestLoad(t *testing.T) {
	setRequired(t)
	t.Setenv("IGNORE_USERS", "archive, sysadmin,testguest")
	t.Setenv("SMTP_PORT", "465")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// Base URL gets a trailing slash so endpoint paths can be appended.
	if cfg.JiraURL != "https://jira.example.com/" {
		t.Errorf("JiraURL = %q", cfg.JiraURL)
	}

	if len(cfg.IgnoreUsers) != 3 {
		t.Fatalf("IgnoreUsers = %v, want 3 entries", cfg.IgnoreUsers)
	}
	set := cfg.IgnoreSet()
	for _, name := range []string{"archive", "sysadmin", "testguest"} {
		if !set[name] {
			t.Errorf("IgnoreSet missing %q", name)
		}
	}
	if set["jdoe"] {
		t.Error("IgnoreSet should not contain unlisted users")
	}

	if cfg.SMTPPort != 465 {
		t.Errorf("SMTPPort = %d, want 465", cfg.SMTPPort)
	}

	// Defaults.
	if cfg.ReportPath != "timecop_report.xlsx" {
		t.Errorf("ReportPath = %q", cfg.ReportPath)
	}
	if cfg.SheetName != "Tracked Time" {
		t.Errorf("SheetName = %q", cfg.SheetName)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q", cfg.Port)
	}
}

func TestLoad_MissingCredentialsFails(t *testing.T) {
	setRequired(t)
	t.Setenv("JIRA_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when JIRA_PASSWORD is missing")
	}
}

func TestLoad_EmptyIgnoreList(t *testing.T) {
	setRequired(t)
	t.Setenv("IGNORE_USERS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.IgnoreUsers) != 0 {
		t.Errorf("IgnoreUsers = %v, want empty", cfg.IgnoreUsers)
	}
}
