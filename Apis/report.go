package Apis

import (
	"log"
	"os"

	"timecop/CronJobs"
	"timecop/Report"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler exposes the compliance report over HTTP.
type ReportHandler struct {
	engine     *Report.Engine
	checker    *CronJobs.TimeChecker
	reportPath string
}

func NewReportHandler(engine *Report.Engine, checker *CronJobs.TimeChecker, reportPath string) *ReportHandler {
	return &ReportHandler{
		engine:     engine,
		checker:    checker,
		reportPath: reportPath,
	}
}

// Health is a liveness check.
func (h *ReportHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Status returns the outcome of the most recent run.
func (h *ReportHandler) Status(c *fiber.Ctx) error {
	summary, ok := h.engine.LastRun()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No run has completed yet",
		})
	}

	return c.JSON(summary)
}

// Run triggers a manual compliance check and returns its summary.
func (h *ReportHandler) Run(c *fiber.Ctx) error {
	summary, err := h.checker.RunManualCheck()
	if err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Time check failed",
			"error":   err.Error(),
			"summary": summary,
		})
	}

	return c.JSON(summary)
}

// UpdateSchedule replaces the cron schedule for the daily check.
func (h *ReportHandler) UpdateSchedule(c *fiber.Ctx) error {
	var input struct {
		Schedule string `json:"schedule"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.checker.UpdateSchedule(input.Schedule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cron schedule",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Schedule updated",
		"schedule": input.Schedule,
	})
}

// Download serves the current report workbook.
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	if _, err := os.Stat(h.reportPath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No report file has been generated yet",
		})
	}

	return c.Download(h.reportPath, "timecop_report.xlsx")
}
