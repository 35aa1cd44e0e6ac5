package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toolomni/engine/pkg/logx"
	"github.com/toolomni/engine/tools/conversion/convertapi"
)

func main() {
	// 1. Initialize Logger
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting ToolOmni Engine...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	if container.Redis != nil {
		defer container.Redis.Close()
	}

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "ToolOmni Engine API",
		DisableStartupMessage: true,
		BodyLimit:             100 * 1024 * 1024, // multi-file PDF merges
		ErrorHandler:          convertapi.ErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status": "ok",
		}
		if container.Redis != nil {
			health["redis"] = container.Redis.Ping(c.Context()).Err() == nil
		}
		return c.JSON(health)
	})

	// 6. Register Routes

	// Conversion tools: /api/convert/*, /api/download, /api/tools
	container.ConvertHandlers.RegisterRoutes(app)

	// 7. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Run server in a goroutine
	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}
