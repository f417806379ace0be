package main

import (
	"context"
	"log"
	"time"

	"topicreview/internal"
	"topicreview/internal/config"
	"topicreview/internal/review"
	"topicreview/internal/theme"
	"topicreview/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	store := review.NewStore(appConfig.Session.TTL)

	server, err := ui.NewServer(ui.Options{
		Store:          store,
		Palette:        theme.ForName(appConfig.Display.Theme),
		MaxUploadBytes: appConfig.Upload.MaxBytes,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	server.StartSweeper(ctx, 10*time.Minute)

	logger.Info("Display theme %s, upload limit %d MB, session TTL %s",
		appConfig.Display.Theme, appConfig.Upload.MaxBytes/(1024*1024), appConfig.Session.TTL)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
