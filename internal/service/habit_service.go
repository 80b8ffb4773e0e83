package service

import (
	"errors"
	"time"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

const habitDateLayout = "2006-01-02"

// HabitService manages daily habit check-ins and their streaks.
type HabitService struct {
	habitRepo *repository.HabitRepository
}

func NewHabitService(habitRepo *repository.HabitRepository) *HabitService {
	return &HabitService{habitRepo: habitRepo}
}

func (s *HabitService) Create(userID uint, name, emoji string, targetDays int) (*model.HabitTracker, error) {
	if name == "" {
		return nil, util.Wrap(util.ErrInvalidInput, "habit name must not be empty")
	}
	active, err := s.habitRepo.CountActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if active >= model.MaxActiveHabits {
		return nil, util.Wrap(util.ErrLimitExceeded, "at most %d active habits", model.MaxActiveHabits)
	}
	if targetDays <= 0 {
		targetDays = model.DefaultHabitTargetDays
	}

	habit := &model.HabitTracker{
		UserID:      userID,
		HabitName:   name,
		HabitEmoji:  emoji,
		TargetDays:  targetDays,
		Completions: []string{},
		IsActive:    true,
	}
	if err := s.habitRepo.Create(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// CheckIn records today's completion. A second check-in on the same calendar
// day is rejected. The current streak is the maximal run of consecutive days
// ending today.
func (s *HabitService) CheckIn(userID, habitID uint) (*model.HabitTracker, error) {
	habit, err := s.habitRepo.FindByIDAndUser(habitID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "habit %d", habitID)
	}
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(habitDateLayout)
	for _, day := range habit.Completions {
		if day == today {
			return nil, util.Wrap(util.ErrAlreadyDone, "already checked in today")
		}
	}

	habit.Completions = append(habit.Completions, today)
	habit.StreakCurrent = streakEndingToday(habit.Completions)
	if habit.StreakCurrent > habit.StreakBest {
		habit.StreakBest = habit.StreakCurrent
	}

	if err := s.habitRepo.Save(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// streakEndingToday counts consecutive calendar days present in completions,
// walking back from today.
func streakEndingToday(completions []string) int {
	seen := make(map[string]bool, len(completions))
	for _, day := range completions {
		seen[day] = true
	}

	streak := 0
	day := time.Now()
	for seen[day.Format(habitDateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func (s *HabitService) Delete(userID, habitID uint) error {
	habit, err := s.habitRepo.FindByIDAndUser(habitID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.Wrap(util.ErrNotFound, "habit %d", habitID)
	}
	if err != nil {
		return err
	}
	return s.habitRepo.Delete(habit)
}

// HabitView decorates a habit with its completion progress.
type HabitView struct {
	model.HabitTracker
	ProgressPercent float64 `json:"progressPercent"`
	CheckedToday    bool    `json:"checkedToday"`
}

type HabitList struct {
	Habits  []HabitView         `json:"habits"`
	Presets []model.HabitPreset `json:"presets"`
}

func (s *HabitService) List(userID uint) (*HabitList, error) {
	habits, err := s.habitRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	today := time.Now().Format(habitDateLayout)
	views := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		view := HabitView{HabitTracker: habit}
		if habit.TargetDays > 0 {
			view.ProgressPercent = float64(len(habit.Completions)) / float64(habit.TargetDays) * 100
			if view.ProgressPercent > 100 {
				view.ProgressPercent = 100
			}
		}
		for _, day := range habit.Completions {
			if day == today {
				view.CheckedToday = true
				break
			}
		}
		views = append(views, view)
	}

	return &HabitList{Habits: views, Presets: model.HabitPresets}, nil
}
