package service

import (
	"context"
	"errors"

	"finverse_backend/internal/model"
	"finverse_backend/internal/repository"
	"finverse_backend/internal/util"

	"gorm.io/gorm"
)

// LessonService serves the course catalog and its generated content. Level
// gating is delegated to the progression ledger.
type LessonService struct {
	lessonRepo   *repository.LessonRepository
	progressRepo *repository.ProgressRepository
	progression  *ProgressionService
	gateway      *AIGatewayService
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	progression *ProgressionService,
	gateway *AIGatewayService,
) *LessonService {
	return &LessonService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		progression:  progression,
		gateway:      gateway,
	}
}

// LessonView is one catalog row annotated with per-user state.
type LessonView struct {
	model.Lesson
	Completed  bool `json:"completed"`
	HasContent bool `json:"hasContent"`
}

type ModuleGroup struct {
	Module  int          `json:"module"`
	Title   string       `json:"title"`
	Lessons []LessonView `json:"lessons"`
}

type LevelGroup struct {
	Level    int           `json:"level"`
	Title    string        `json:"title"`
	Unlocked bool          `json:"unlocked"`
	Modules  []ModuleGroup `json:"modules"`
}

// List returns the catalog grouped level → module with completion and lock
// state for the user.
func (s *LessonService) List(userID uint) ([]LevelGroup, error) {
	lessons, err := s.lessonRepo.ListAll()
	if err != nil {
		return nil, err
	}
	withContent, err := s.lessonRepo.LessonIDsWithContent()
	if err != nil {
		return nil, err
	}

	completed, err := s.progressRepo.CompletedLessonIDs(userID)
	if err != nil {
		return nil, err
	}

	var groups []LevelGroup
	for _, lesson := range lessons {
		if len(groups) == 0 || groups[len(groups)-1].Level != lesson.Level {
			unlocked, err := s.progression.LevelUnlocked(userID, lesson.Level)
			if err != nil {
				return nil, err
			}
			groups = append(groups, LevelGroup{
				Level:    lesson.Level,
				Title:    model.LevelTitles[lesson.Level],
				Unlocked: unlocked,
			})
		}
		group := &groups[len(groups)-1]

		if len(group.Modules) == 0 || group.Modules[len(group.Modules)-1].Module != lesson.Module {
			group.Modules = append(group.Modules, ModuleGroup{
				Module: lesson.Module,
				Title:  model.ModuleTitles[lesson.Level][lesson.Module],
			})
		}
		mod := &group.Modules[len(group.Modules)-1]
		mod.Lessons = append(mod.Lessons, LessonView{
			Lesson:     lesson,
			Completed:  completed[lesson.ID],
			HasContent: withContent[lesson.ID],
		})
	}
	return groups, nil
}

// Get returns one lesson with its content if generated. Locked levels are
// forbidden.
func (s *LessonService) Get(userID, lessonID uint) (*model.Lesson, *model.LessonContent, error) {
	lesson, err := s.findUnlocked(userID, lessonID)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.lessonRepo.FindContent(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lesson, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return lesson, content, nil
}

// GenerateContent produces lesson content via the AI gateway. Already
// generated content is returned as is.
func (s *LessonService) GenerateContent(ctx context.Context, userID, lessonID uint) (*model.LessonContent, error) {
	lesson, err := s.findUnlocked(userID, lessonID)
	if err != nil {
		return nil, err
	}

	content, err := s.lessonRepo.FindContent(lessonID)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.gateway.GenerateLessonContent(ctx, userID, lesson)
}

func (s *LessonService) GetContent(userID, lessonID uint) (*model.LessonContent, error) {
	if _, err := s.findUnlocked(userID, lessonID); err != nil {
		return nil, err
	}
	content, err := s.lessonRepo.FindContent(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "no content generated for lesson %d", lessonID)
	}
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *LessonService) DeleteContent(lessonID uint) error {
	if _, err := s.lessonRepo.FindByID(lessonID); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.Wrap(util.ErrNotFound, "lesson %d", lessonID)
	} else if err != nil {
		return err
	}
	return s.lessonRepo.DeleteContent(lessonID)
}

// Regenerate drops any existing content and generates a fresh rendition.
func (s *LessonService) Regenerate(ctx context.Context, userID, lessonID uint) (*model.LessonContent, error) {
	lesson, err := s.findUnlocked(userID, lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.lessonRepo.DeleteContent(lessonID); err != nil {
		return nil, err
	}
	return s.gateway.GenerateLessonContent(ctx, userID, lesson)
}

func (s *LessonService) findUnlocked(userID, lessonID uint) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.Wrap(util.ErrNotFound, "lesson %d", lessonID)
	}
	if err != nil {
		return nil, err
	}
	unlocked, err := s.progression.LevelUnlocked(userID, lesson.Level)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, util.Wrap(util.ErrForbidden, "level %d is locked", lesson.Level)
	}
	return lesson, nil
}
