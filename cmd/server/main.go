package main

import (
	"os"
	"os/signal"
	"syscall"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize app", err)
		os.Exit(1)
	}
	defer application.Close()

	fiberApp := fiber.New(fiber.Config{
		AppName:   "atelier-hiring",
		BodyLimit: 64 << 20,
	})
	fiberApp.Use(recover.New())

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := fiberApp.Shutdown(); err != nil {
			log.Er("failed to shut down server", err)
		}
	}()

	log.Info("Starting server", "port", application.Config.ServerPort)
	if err := fiberApp.Listen(":" + application.Config.ServerPort); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
