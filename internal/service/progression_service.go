package service

import (
	"errors"
	"time"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressionService owns the XP ledger: totals, titles, streaks and the
// level unlock gate. Every mini-game reward path goes through GrantXP so the
// streak and title invariants hold no matter where XP comes from.
type ProgressionService struct {
	progressRepo *repository.ProgressRepository
	lessonRepo   *repository.LessonRepository
}

func NewProgressionService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository) *ProgressionService {
	return &ProgressionService{progressRepo: progressRepo, lessonRepo: lessonRepo}
}

// GrantXP adds XP to the user's ledger, recomputes the title and advances
// the daily streak. Same-day repeat activity leaves the streak untouched;
// activity on the next calendar day extends it; a gap resets it to 1.
func (s *ProgressionService) GrantXP(userID uint, amount int) (*model.UserStats, error) {
	stats, err := s.progressRepo.FindStats(userID)
	if err != nil {
		return nil, err
	}

	if amount > 0 {
		stats.TotalXP += amount
	}
	stats.CurrentTitle = model.TitleForXP(stats.TotalXP)

	now := time.Now()
	advanceStreak(stats, now)
	stats.LastActivityAt = &now

	if err := s.progressRepo.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// advanceStreak applies the daily streak rule by calendar date in now's
// location, the same way habit check-ins count days.
func advanceStreak(stats *model.UserStats, now time.Time) {
	if stats.LastActivityAt == nil {
		stats.StreakDays = 1
		return
	}
	switch stats.LastActivityAt.In(now.Location()).Format(habitDateLayout) {
	case now.Format(habitDateLayout):
		// already counted today
	case now.AddDate(0, 0, -1).Format(habitDateLayout):
		stats.StreakDays++
	default:
		stats.StreakDays = 1
	}
}

// CompletionResult is what a lesson completion reports back.
type CompletionResult struct {
	LessonID         uint   `json:"lessonId"`
	XPEarned         int    `json:"xpEarned"`
	TotalXP          int    `json:"totalXp"`
	CurrentTitle     string `json:"currentTitle"`
	StreakDays       int    `json:"streakDays"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
}

// CompleteLesson records completion exactly once per (user, lesson). A
// repeat call returns the original record without granting XP again.
func (s *ProgressionService) CompleteLesson(userID, lessonID uint) (*CompletionResult, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "lesson %d", lessonID)
	}
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.FindByUserAndLesson(userID, lessonID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && progress.Completed {
		stats, err := s.progressRepo.FindStats(userID)
		if err != nil {
			return nil, err
		}
		return &CompletionResult{
			LessonID:         lessonID,
			XPEarned:         progress.XPEarned,
			TotalXP:          stats.TotalXP,
			CurrentTitle:     stats.CurrentTitle,
			StreakDays:       stats.StreakDays,
			AlreadyCompleted: true,
		}, nil
	}

	xp := model.XPForLevel(lesson.Level)
	now := time.Now()
	record := &model.UserProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		CompletedAt: &now,
		XPEarned:    xp,
	}
	if err := s.progressRepo.Create(record); err != nil {
		return nil, err
	}

	stats, err := s.GrantXP(userID, xp)
	if err != nil {
		return nil, err
	}
	return &CompletionResult{
		LessonID:     lessonID,
		XPEarned:     xp,
		TotalXP:      stats.TotalXP,
		CurrentTitle: stats.CurrentTitle,
		StreakDays:   stats.StreakDays,
	}, nil
}

// LevelUnlocked reports whether the user may enter a level. Level 1 is always
// open; level N opens once every lesson of level N-1 is completed. A level
// with no lessons never blocks the one above it.
func (s *ProgressionService) LevelUnlocked(userID uint, level int) (bool, error) {
	if level <= 1 {
		return true, nil
	}
	total, err := s.lessonRepo.CountByLevel(level - 1)
	if err != nil {
		return false, err
	}
	completed, err := s.progressRepo.CountCompletedByUserAndLevel(userID, level-1)
	if err != nil {
		return false, err
	}
	return completed >= total, nil
}

// LevelProgress is one row of the dashboard's per-level breakdown.
type LevelProgress struct {
	Level            int     `json:"level"`
	Title            string  `json:"title"`
	TotalLessons     int64   `json:"totalLessons"`
	CompletedLessons int64   `json:"completedLessons"`
	Percent          float64 `json:"percent"`
	Unlocked         bool    `json:"unlocked"`
}

// DashboardSummary aggregates everything the progress screen needs.
type DashboardSummary struct {
	TotalXP          int                        `json:"totalXp"`
	CurrentTitle     string                     `json:"currentTitle"`
	NextTitle        *string                    `json:"nextTitle"`
	XPToNextTitle    *int                       `json:"xpToNextTitle"`
	StreakDays       int                        `json:"streakDays"`
	CompletedLessons int64                      `json:"completedLessons"`
	CompletedModules int                        `json:"completedModules"`
	CompletedLevels  int                        `json:"completedLevels"`
	Levels           []LevelProgress            `json:"levels"`
	Recent           []repository.CompletionRow `json:"recentCompletions"`
}

func (s *ProgressionService) Summary(userID uint) (*DashboardSummary, error) {
	stats, err := s.progressRepo.FindStats(userID)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalXP:      stats.TotalXP,
		CurrentTitle: stats.CurrentTitle,
		StreakDays:   stats.StreakDays,
	}
	if next := model.NextTitle(stats.TotalXP); next != nil {
		gap := next.XP - stats.TotalXP
		summary.NextTitle = &next.Title
		summary.XPToNextTitle = &gap
	}

	summary.CompletedLessons, err = s.progressRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	for level := 1; level <= 5; level++ {
		total, err := s.lessonRepo.CountByLevel(level)
		if err != nil {
			return nil, err
		}
		completed, err := s.progressRepo.CountCompletedByUserAndLevel(userID, level)
		if err != nil {
			return nil, err
		}
		unlocked, err := s.LevelUnlocked(userID, level)
		if err != nil {
			return nil, err
		}
		row := LevelProgress{
			Level:            level,
			Title:            model.LevelTitles[level],
			TotalLessons:     total,
			CompletedLessons: completed,
			Unlocked:         unlocked,
		}
		if total > 0 {
			row.Percent = float64(completed) / float64(total) * 100
			if completed >= total {
				summary.CompletedLevels++
			}
		}
		summary.Levels = append(summary.Levels, row)

		for module := 1; module <= 3; module++ {
			mTotal, err := s.lessonRepo.CountByLevelAndModule(level, module)
			if err != nil {
				return nil, err
			}
			if mTotal == 0 {
				continue
			}
			mDone, err := s.progressRepo.CountCompletedByUserLevelModule(userID, level, module)
			if err != nil {
				return nil, err
			}
			if mDone >= mTotal {
				summary.CompletedModules++
			}
		}
	}

	summary.Recent, err = s.progressRepo.RecentCompletions(userID, 5)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Stats exposes the raw ledger row, creating it on first touch.
func (s *ProgressionService) Stats(userID uint) (*model.UserStats, error) {
	return s.progressRepo.FindStats(userID)
}
