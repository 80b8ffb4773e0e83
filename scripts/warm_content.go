// Manually pre-generate lesson content for the whole catalog.
//
// Content is normally generated on demand, the first time a student opens a
// lesson. After seeding a fresh database (or wiping lesson_contents) this
// script warms every lesson in one pass so nobody waits on the AI upstream.
//
// Usage: go run scripts/warm_content.go
package main

import (
	"context"
	"log"

	"finverse_backend/internal/config"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/service"
	"finverse_backend/pkg/database"
	"finverse_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Setup(db); err != nil {
		log.Fatalf("database setup failed: %v", err)
	}

	lessonRepo := repository.NewLessonRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	progression := service.NewProgressionService(progressRepo, lessonRepo)

	// batch run, don't trip the per-user limiter
	aiCfg := cfg.AI
	aiCfg.UserMaxCalls = 1 << 20
	gateway := service.NewAIGatewayService(
		service.NewOpenAIClient(aiCfg),
		repository.NewAIRepository(db),
		lessonRepo,
		progression,
		nil,
		aiCfg,
	)

	lessons, err := lessonRepo.ListAll()
	if err != nil {
		log.Fatalf("failed to list lessons: %v", err)
	}
	existing, err := lessonRepo.LessonIDsWithContent()
	if err != nil {
		log.Fatalf("failed to list generated content: %v", err)
	}

	ctx := context.Background()
	generated, failed := 0, 0
	for i := range lessons {
		lesson := &lessons[i]
		if existing[lesson.ID] {
			continue
		}
		if _, err := gateway.GenerateLessonContent(ctx, 0, lesson); err != nil {
			log.Printf("lesson %d (%s): %v", lesson.ID, lesson.Title, err)
			failed++
			continue
		}
		log.Printf("generated content for lesson %d (%s)", lesson.ID, lesson.Title)
		generated++
	}
	log.Printf("done: %d generated, %d skipped, %d failed", generated, len(existing), failed)
}
