package FiberConfig

import (
	"log"

	"timecop/Apis"
	"timecop/CronJobs"
	"timecop/Report"
	"timecop/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetupRoutes registers the report API on a new Fiber app.
func SetupRoutes(engine *Report.Engine, checker *CronJobs.TimeChecker, reportPath string) *fiber.App {
	app := fiber.New()

	app.Use(cors.New())
	app.Use(middleware.Logger())

	reportHandler := Apis.NewReportHandler(engine, checker, reportPath)

	api := app.Group("/api")
	api.Get("/health", reportHandler.Health)

	report := api.Group("/report")
	report.Get("/status", reportHandler.Status)
	report.Post("/run", reportHandler.Run)
	report.Put("/schedule", reportHandler.UpdateSchedule)
	report.Get("/download", reportHandler.Download)

	return app
}

// Serve starts the HTTP listener, blocking until it exits.
func Serve(app *fiber.App, port string) {
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
