package main

import (
	"log"

	"timecop/Config"
	"timecop/CronJobs"
	"timecop/FiberConfig"
	"timecop/Jira"
	"timecop/Report"
	"timecop/Sheet"
	"timecop/Slack"
	"timecop/email"
)

func main() {
	cfg, err := Config.Load()
	if err != nil {
		log.Fatal(err)
	}

	jiraClient := Jira.NewClient(cfg)
	sheetWriter := Sheet.NewWriter(cfg.ReportPath, cfg.SheetName)
	mailSender := email.NewSender(cfg)

	var poster Report.SummaryPoster
	if cfg.SlackBotToken != "" && cfg.SlackChannel != "" {
		poster = Slack.NewClient(cfg.SlackBotToken, cfg.SlackChannel)
	} else {
		log.Println("Slack summary disabled (no token/channel configured)")
	}

	engine := Report.NewEngine(jiraClient, sheetWriter, mailSender, poster, cfg.UserFilter, cfg.IgnoreSet())

	checker := CronJobs.NewTimeChecker(engine, cfg.CronSchedule, cfg.RunImmediately)
	if err := checker.Start(); err != nil {
		log.Fatal("Failed to start time checker:", err)
	}
	defer checker.Stop()

	app := FiberConfig.SetupRoutes(engine, checker, cfg.ReportPath)
	FiberConfig.Serve(app, cfg.Port)
}
