package database

import (
	"finverse_backend/internal/config"
	"finverse_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Setup migrates the schema and seeds the lesson catalog.
func Setup(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	log.Println("Database migration completed")
	return SeedLessons(db)
}

// Migrate runs schema migration for every model. Shared with test setups.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.LessonContent{},
		&model.UserProgress{},
		&model.UserStats{},
		&model.Duel{},
		&model.BossBattle{},
		&model.TrapScenario{},
		&model.HabitTracker{},
		&model.BudgetScenario{},
		&model.ChatMessage{},
		&model.RegeneratedContent{},
		&model.DictionaryEntry{},
	)
}
