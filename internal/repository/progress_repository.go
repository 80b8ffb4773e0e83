package repository

import (
	"errors"
	"finverse_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndLesson(userID, lessonID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) Save(progress *model.UserProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) Create(progress *model.UserProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedByUserAndLevel(userID uint, level int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ? AND lessons.level = ?", userID, true, level).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedByUserLevelModule(userID uint, level, module int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserProgress{}).
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ? AND lessons.level = ? AND lessons.module = ?",
			userID, true, level, module).
		Count(&count).Error
	return count, err
}

// CompletionRow is a recent-activity projection joining progress to lessons.
type CompletionRow struct {
	LessonID    uint       `json:"lessonId"`
	LessonTitle string     `json:"lessonTitle"`
	CompletedAt *time.Time `json:"completedAt"`
	XPEarned    int        `json:"xpEarned"`
}

func (r *ProgressRepository) RecentCompletions(userID uint, limit int) ([]CompletionRow, error) {
	var rows []CompletionRow
	err := r.DB.Model(&model.UserProgress{}).
		Select("user_progress.lesson_id, lessons.title AS lesson_title, user_progress.completed_at, user_progress.xp_earned").
		Joins("JOIN lessons ON lessons.id = user_progress.lesson_id").
		Where("user_progress.user_id = ? AND user_progress.completed = ?", userID, true).
		Order("user_progress.completed_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// CompletedLessonIDs returns the set of lessons the user has completed.
func (r *ProgressRepository) CompletedLessonIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// FindStats loads the user's ledger row, creating it on first touch.
func (r *ProgressRepository) FindStats(userID uint) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = model.UserStats{UserID: userID, CurrentTitle: model.TitleForXP(0)}
		if err := r.DB.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ProgressRepository) SaveStats(stats *model.UserStats) error {
	return r.DB.Save(stats).Error
}
