// @title StudyQuiz Backend API
// @version 1.0
// @description Backend for the PDF study quiz tool: summaries, quiz generation, grading and attempt history.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"studyquiz_backend/internal/app"
	"studyquiz_backend/internal/config"
	"studyquiz_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
