package service

import (
	"fmt"
	"testing"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/pkg/database"
	"finverse_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newProgression(db *gorm.DB) *ProgressionService {
	return NewProgressionService(repository.NewProgressRepository(db), repository.NewLessonRepository(db))
}

// seedLesson inserts a catalog row and returns it.
func seedLesson(t *testing.T, db *gorm.DB, level, module, number int) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		Level:        level,
		Module:       module,
		LessonNumber: number,
		Title:        fmt.Sprintf("Lesson %d-%d-%d", level, module, number),
		TopicKey:     fmt.Sprintf("topic_%d_%d_%d", level, module, number),
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}
